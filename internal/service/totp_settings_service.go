package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/verluxstands/verlux-api/internal/models"
	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
)

// TOTPSettingsStore reads and overwrites the per-account settings leaf.
type TOTPSettingsStore interface {
	Get(ctx context.Context, email string) (*models.UserTOTPSettings, error)
	Put(ctx context.Context, email string, settings models.UserTOTPSettings) error
}

// CodeVerifier checks a one-time code against a secret.
type CodeVerifier interface {
	Verify(ctx context.Context, secret, code, email string) bool
}

// TOTPSettingsService enables and disables the second factor for an account.
// Changes apply to the next login; live sessions are left alone.
type TOTPSettingsService struct {
	store    TOTPSettingsStore
	verifier CodeVerifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewTOTPSettingsService constructs the settings manager.
func NewTOTPSettingsService(store TOTPSettingsStore, verifier CodeVerifier, logger *zap.Logger) *TOTPSettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TOTPSettingsService{store: store, verifier: verifier, logger: logger, now: time.Now}
}

// Enable re-verifies code against secret and, only on success, overwrites
// the account's settings with {enabled, secret, enabledAt}.
func (s *TOTPSettingsService) Enable(ctx context.Context, email, secret, code string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return appErrors.ErrMissingEmail
	}
	secret = NormalizeSecret(secret)
	if secret == "" || strings.TrimSpace(code) == "" {
		return appErrors.ErrMissingFields
	}
	if !s.verifier.Verify(ctx, secret, code, email) {
		return appErrors.ErrInvalidCode
	}

	enabledAt := s.now().UTC()
	if err := s.store.Put(ctx, email, models.UserTOTPSettings{Enabled: true, Secret: secret, EnabledAt: &enabledAt}); err != nil {
		s.logger.Error("enable totp failed", zap.String("email", email), zap.Error(err))
		return err
	}
	s.logger.Info("totp enabled", zap.String("email", email))
	return nil
}

// Disable overwrites the account's settings with {enabled:false}, dropping
// any secret. Disabling twice is a no-op success.
func (s *TOTPSettingsService) Disable(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return appErrors.ErrMissingEmail
	}
	if err := s.store.Put(ctx, email, models.UserTOTPSettings{Enabled: false}); err != nil {
		s.logger.Error("disable totp failed", zap.String("email", email), zap.Error(err))
		return err
	}
	s.logger.Info("totp disabled", zap.String("email", email))
	return nil
}

// Status returns whether the second factor is enabled, without the secret.
func (s *TOTPSettingsService) Status(ctx context.Context, email string) (*models.TOTPStatus, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, appErrors.ErrMissingEmail
	}
	settings, err := s.store.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &models.TOTPStatus{}, nil
	}
	status := &models.TOTPStatus{Enabled: settings.Enabled && settings.Secret != ""}
	if status.Enabled {
		status.EnabledAt = settings.EnabledAt
	}
	return status, nil
}

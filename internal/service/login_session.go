package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/verluxstands/verlux-api/internal/models"
	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
)

// CredentialProvider is the primary (password) authentication backend.
type CredentialProvider interface {
	SignIn(ctx context.Context, req models.LoginRequest) (*models.ProviderSession, error)
	SignOut(ctx context.Context, sessionID, userID string, meta models.RequestMeta) error
	SessionActive(ctx context.Context, sessionID string) (bool, error)
}

// MaxTOTPAttempts is how many wrong or malformed codes one challenge
// accepts before it is discarded.
const MaxTOTPAttempts = 5

// loginChallenge bridges the password check and the second factor. The
// password is kept only until the final provider sign-in.
type loginChallenge struct {
	email    string
	password []byte
	meta     models.RequestMeta
	failures int
}

func (c *loginChallenge) wipe() {
	for i := range c.password {
		c.password[i] = 0
	}
	c.password = nil
}

// LoginSession drives the two-step login for one browser session.
//
//	ANONYMOUS -> PRIMARY_PENDING -> AUTHENTICATED
//	                             -> TOTP_REQUIRED -> TOTP_PENDING -> AUTHENTICATED
//	AUTHENTICATED -> ANONYMOUS (sign-out)
//
// While a second factor is outstanding no provider session is live: the
// provisional session opened by the password check is revoked before
// SignIn returns.
type LoginSession struct {
	mu sync.Mutex

	provider CredentialProvider
	settings TOTPSettingsStore
	verifier CodeVerifier
	metrics  *MetricsService
	logger   *zap.Logger

	state     models.LoginState
	challenge *loginChallenge
	session   *models.ProviderSession
	lastErr   string
}

// NewLoginSession returns an anonymous login session.
func NewLoginSession(provider CredentialProvider, settings TOTPSettingsStore, verifier CodeVerifier, metrics *MetricsService, logger *zap.Logger) *LoginSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginSession{
		provider: provider,
		settings: settings,
		verifier: verifier,
		metrics:  metrics,
		logger:   logger,
		state:    models.LoginAnonymous,
	}
}

// SignIn checks the primary credentials and decides whether a second factor
// is needed. Any previous session state is discarded first.
func (s *LoginSession) SignIn(ctx context.Context, email, password string, meta models.RequestMeta) (models.LoginStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dropLocked(ctx, meta)
	s.transition(models.LoginPrimaryPending)

	email = strings.TrimSpace(email)
	session, err := s.provider.SignIn(ctx, models.LoginRequest{Email: email, Password: password, IP: meta.IP, UserAgent: meta.UserAgent})
	if err != nil {
		return s.failLocked(err), err
	}

	settings, err := s.settings.Get(ctx, email)
	if err != nil {
		// Without the settings we cannot tell whether a second factor is owed.
		s.revoke(ctx, session, meta)
		return s.failLocked(err), err
	}

	if settings == nil || !settings.Enabled {
		s.session = session
		s.transition(models.LoginAuthenticated)
		s.logger.Info("login completed", zap.String("email", email), zap.Bool("totp", false))
		return s.statusLocked(), nil
	}

	if err := s.provider.SignOut(ctx, session.SessionID, session.User.ID, meta); err != nil {
		s.logger.Error("failed to revoke provisional session", zap.String("email", email), zap.Error(err))
		err = appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to revoke provisional session")
		return s.failLocked(err), err
	}

	s.challenge = &loginChallenge{email: email, password: []byte(password), meta: meta}
	s.transition(models.LoginTOTPRequired)
	s.logger.Info("totp challenge issued", zap.String("email", email))
	return s.statusLocked(), nil
}

// BeginTOTP moves an issued challenge to the prompt stage.
func (s *LoginSession) BeginTOTP() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.LoginTOTPRequired {
		return appErrors.ErrInvalidState
	}
	s.transition(models.LoginTOTPPending)
	return nil
}

// SubmitTOTP checks the second factor and, on success, completes the
// provider sign-in with the retained password. A wrong or malformed code
// leaves the session in TOTP_PENDING until MaxTOTPAttempts misses, after
// which the challenge is dropped and the session returns to ANONYMOUS. A
// challenge still in TOTP_REQUIRED is moved to TOTP_PENDING first.
func (s *LoginSession) SubmitTOTP(ctx context.Context, code string) (models.LoginStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == models.LoginTOTPRequired {
		s.transition(models.LoginTOTPPending)
	}
	if s.state != models.LoginTOTPPending || s.challenge == nil {
		return s.statusLocked(), appErrors.ErrInvalidState
	}

	if code == "" || !IsTOTPCode(code) {
		return s.missLocked()
	}

	settings, err := s.settings.Get(ctx, s.challenge.email)
	if err != nil {
		s.lastErr = appErrors.FromError(err).Message
		return s.statusLocked(), err
	}
	if settings == nil || !settings.Enabled || settings.Secret == "" {
		err := appErrors.ErrTOTPNotConfigured
		return s.failLocked(err), err
	}

	if !s.verifier.Verify(ctx, settings.Secret, code, s.challenge.email) {
		s.logger.Info("totp code rejected", zap.String("email", s.challenge.email), zap.Int("failures", s.challenge.failures+1))
		return s.missLocked()
	}

	session, err := s.provider.SignIn(ctx, models.LoginRequest{
		Email:     s.challenge.email,
		Password:  string(s.challenge.password),
		IP:        s.challenge.meta.IP,
		UserAgent: s.challenge.meta.UserAgent,
	})
	if err != nil {
		return s.failLocked(err), err
	}

	email := s.challenge.email
	s.clearChallenge()
	s.session = session
	s.transition(models.LoginAuthenticated)
	s.logger.Info("login completed", zap.String("email", email), zap.Bool("totp", true))
	return s.statusLocked(), nil
}

// Abandon discards an outstanding challenge, returning to ANONYMOUS.
// Authenticated sessions are left alone.
func (s *LoginSession) Abandon() models.LoginStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.LoginAuthenticated {
		s.clearChallenge()
		s.lastErr = ""
		s.transition(models.LoginAnonymous)
	}
	return s.statusLocked()
}

// SignOut ends the provider session and clears all transient state, even
// when the provider call fails.
func (s *LoginSession) SignOut(ctx context.Context, meta models.RequestMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.session != nil {
		err = s.provider.SignOut(ctx, s.session.SessionID, s.session.User.ID, meta)
		if err != nil {
			s.logger.Warn("provider sign-out failed", zap.Error(err))
		}
	}
	s.session = nil
	s.clearChallenge()
	s.lastErr = ""
	s.transition(models.LoginAnonymous)
	return err
}

// Close signs out and wipes the session. Used when the session is evicted.
func (s *LoginSession) Close(ctx context.Context) {
	_ = s.SignOut(ctx, models.RequestMeta{})
}

// CurrentUser returns the signed-in user when the provider session is live.
func (s *LoginSession) CurrentUser(ctx context.Context) *models.UserInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != models.LoginAuthenticated || s.session == nil {
		return nil
	}
	active, err := s.provider.SessionActive(ctx, s.session.SessionID)
	if err != nil || !active {
		return nil
	}
	user := s.session.User
	return &user
}

// State reports the current login state.
func (s *LoginSession) State() models.LoginState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ProviderSession returns the live provider session, if authenticated.
func (s *LoginSession) ProviderSession() *models.ProviderSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != models.LoginAuthenticated {
		return nil
	}
	return s.session
}

// LastError returns the message of the most recent failed step.
func (s *LoginSession) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Status snapshots the session for responses.
func (s *LoginSession) Status() models.LoginStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *LoginSession) statusLocked() models.LoginStatus {
	status := models.LoginStatus{
		State:        s.state,
		TOTPRequired: s.state == models.LoginTOTPRequired || s.state == models.LoginTOTPPending,
		Error:        s.lastErr,
	}
	if s.state == models.LoginAuthenticated && s.session != nil {
		user := s.session.User
		status.User = &user
		status.Session = s.session
	}
	return status
}

// missLocked records a rejected code against the challenge.
func (s *LoginSession) missLocked() (models.LoginStatus, error) {
	s.challenge.failures++
	if s.challenge.failures >= MaxTOTPAttempts {
		s.logger.Warn("totp challenge discarded after repeated misses", zap.String("email", s.challenge.email))
		err := appErrors.ErrTooManyAttempts
		return s.failLocked(err), err
	}
	s.lastErr = appErrors.ErrInvalidCode.Message
	return s.statusLocked(), appErrors.ErrInvalidCode
}

// failLocked resets every transient field and returns to ANONYMOUS.
func (s *LoginSession) failLocked(err error) models.LoginStatus {
	s.clearChallenge()
	s.session = nil
	s.lastErr = appErrors.FromError(err).Message
	s.transition(models.LoginAnonymous)
	return s.statusLocked()
}

func (s *LoginSession) dropLocked(ctx context.Context, meta models.RequestMeta) {
	if s.session != nil {
		s.revoke(ctx, s.session, meta)
		s.session = nil
	}
	s.clearChallenge()
	s.lastErr = ""
}

func (s *LoginSession) revoke(ctx context.Context, session *models.ProviderSession, meta models.RequestMeta) {
	if err := s.provider.SignOut(ctx, session.SessionID, session.User.ID, meta); err != nil {
		s.logger.Warn("failed to revoke provider session", zap.Error(err))
	}
}

func (s *LoginSession) clearChallenge() {
	if s.challenge != nil {
		s.challenge.wipe()
		s.challenge = nil
	}
}

func (s *LoginSession) transition(next models.LoginState) {
	if s.state == next {
		return
	}
	s.state = next
	s.metrics.RecordLoginTransition(next)
}

package repository

import (
	"context"
	"errors"

	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/pkg/treestore"
)

// TOTPSettingsRepository reads and overwrites user_totp_settings leaves.
type TOTPSettingsRepository struct {
	store treestore.Store
}

// NewTOTPSettingsRepository constructs the repository.
func NewTOTPSettingsRepository(store treestore.Store) *TOTPSettingsRepository {
	return &TOTPSettingsRepository{store: store}
}

// Get returns the settings for email, or nil when the account never enrolled.
func (r *TOTPSettingsRepository) Get(ctx context.Context, email string) (*models.UserTOTPSettings, error) {
	var settings models.UserTOTPSettings
	if err := r.store.Get(ctx, totpSettingsPath(email), &settings); err != nil {
		if errors.Is(err, treestore.ErrNotFound) {
			return nil, nil
		}
		return nil, storeError(err, "totp settings")
	}
	return &settings, nil
}

// Put overwrites the whole leaf.
func (r *TOTPSettingsRepository) Put(ctx context.Context, email string, settings models.UserTOTPSettings) error {
	return storeError(r.store.Set(ctx, totpSettingsPath(email), settings), "totp settings")
}

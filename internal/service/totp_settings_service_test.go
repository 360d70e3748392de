package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/internal/repository"
	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
	"github.com/verluxstands/verlux-api/pkg/treestore"
)

type stubVerifier struct {
	valid bool
	calls int
}

func (s *stubVerifier) Verify(context.Context, string, string, string) bool {
	s.calls++
	return s.valid
}

type failingSettingsStore struct{ err error }

func (f failingSettingsStore) Get(context.Context, string) (*models.UserTOTPSettings, error) {
	return nil, f.err
}

func (f failingSettingsStore) Put(context.Context, string, models.UserTOTPSettings) error {
	return f.err
}

func newSettingsFixture(valid bool) (*TOTPSettingsService, *repository.TOTPSettingsRepository, *treestore.Memory, *stubVerifier) {
	mem := treestore.NewMemory()
	repo := repository.NewTOTPSettingsRepository(mem)
	verifier := &stubVerifier{valid: valid}
	return NewTOTPSettingsService(repo, verifier, nil), repo, mem, verifier
}

func TestEnableWritesSettingsOnValidCode(t *testing.T) {
	svc, repo, _, _ := newSettingsFixture(true)
	fixed := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	require.NoError(t, svc.Enable(context.Background(), "a@b.com", "jbsw y3dp ehpk 3pxp", "123456"))

	got, err := repo.Get(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Enabled)
	assert.Equal(t, testSecret, got.Secret)
	assert.True(t, fixed.Equal(*got.EnabledAt))
}

func TestEnableWithWrongCodeDoesNotWrite(t *testing.T) {
	svc, repo, _, verifier := newSettingsFixture(false)

	err := svc.Enable(context.Background(), "a@b.com", testSecret, "000000")
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCode))
	assert.Equal(t, 1, verifier.calls)

	got, err := repo.Get(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEnableWithWrongCodeLeavesDisabledAccountDisabled(t *testing.T) {
	svc, repo, _, _ := newSettingsFixture(false)
	require.NoError(t, repo.Put(context.Background(), "a@b.com", models.UserTOTPSettings{Enabled: false}))

	err := svc.Enable(context.Background(), "a@b.com", testSecret, "000000")
	require.Error(t, err)

	got, err := repo.Get(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.False(t, got.Enabled)
	assert.Empty(t, got.Secret)
}

func TestEnableRequiresFields(t *testing.T) {
	svc, _, _, verifier := newSettingsFixture(true)
	ctx := context.Background()

	assert.True(t, appErrors.Is(svc.Enable(ctx, "", testSecret, "123456"), appErrors.ErrMissingEmail))
	assert.True(t, appErrors.Is(svc.Enable(ctx, "a@b.com", "", "123456"), appErrors.ErrMissingFields))
	assert.True(t, appErrors.Is(svc.Enable(ctx, "a@b.com", testSecret, ""), appErrors.ErrMissingFields))
	assert.Zero(t, verifier.calls)
}

func TestDisableIsIdempotentAndDropsSecret(t *testing.T) {
	svc, repo, mem, _ := newSettingsFixture(true)
	ctx := context.Background()
	require.NoError(t, svc.Enable(ctx, "a@b.com", testSecret, "123456"))

	for i := 0; i < 2; i++ {
		require.NoError(t, svc.Disable(ctx, "a@b.com"))

		var raw map[string]interface{}
		require.NoError(t, mem.Get(ctx, "user_totp_settings/a@b_com", &raw))
		assert.Equal(t, map[string]interface{}{"enabled": false}, raw)
	}

	got, err := repo.Get(ctx, "a@b.com")
	require.NoError(t, err)
	assert.False(t, got.Enabled)

	assert.True(t, appErrors.Is(svc.Disable(ctx, " "), appErrors.ErrMissingEmail))
}

func TestStatusHidesSecret(t *testing.T) {
	svc, _, _, _ := newSettingsFixture(true)
	ctx := context.Background()

	status, err := svc.Status(ctx, "a@b.com")
	require.NoError(t, err)
	assert.False(t, status.Enabled)

	require.NoError(t, svc.Enable(ctx, "a@b.com", testSecret, "123456"))
	status, err = svc.Status(ctx, "a@b.com")
	require.NoError(t, err)
	assert.True(t, status.Enabled)
	assert.NotNil(t, status.EnabledAt)
}

func TestSettingsStoreFailurePropagates(t *testing.T) {
	storeErr := appErrors.Wrap(errors.New("refused"), appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "down")
	svc := NewTOTPSettingsService(failingSettingsStore{err: storeErr}, &stubVerifier{valid: true}, nil)

	assert.True(t, appErrors.Is(svc.Enable(context.Background(), "a@b.com", testSecret, "123456"), appErrors.ErrStoreUnavailable))
	_, err := svc.Status(context.Background(), "a@b.com")
	assert.True(t, appErrors.Is(err, appErrors.ErrStoreUnavailable))
}

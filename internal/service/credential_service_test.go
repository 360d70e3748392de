package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/verluxstands/verlux-api/internal/models"
	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
)

type mockCredentialRepo struct {
	userByEmail         *models.User
	userByID            *models.User
	findByEmailErr      error
	findByIDErr         error
	refreshTokens       map[string]*models.RefreshToken
	refreshTokenErr     error
	createRefreshErr    error
	revokeRefreshErr    error
	revokeUserTokensErr error
	updatePasswordErr   error
	auditLogs           []*models.AuditLog
	lastLoginUpdated    bool
	revokedAll          bool
}

func (m *mockCredentialRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	if m.userByEmail == nil {
		return nil, sql.ErrNoRows
	}
	return m.userByEmail, nil
}

func (m *mockCredentialRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.findByIDErr != nil {
		return nil, m.findByIDErr
	}
	if m.userByID != nil {
		return m.userByID, nil
	}
	if m.userByEmail != nil {
		return m.userByEmail, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCredentialRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginUpdated = true
	return nil
}

func (m *mockCredentialRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	if m.updatePasswordErr != nil {
		return m.updatePasswordErr
	}
	if m.userByEmail != nil && m.userByEmail.ID == id {
		m.userByEmail.PasswordHash = passwordHash
	}
	return nil
}

func (m *mockCredentialRepo) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	m.revokedAll = true
	return m.revokeUserTokensErr
}

func (m *mockCredentialRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if m.createRefreshErr != nil {
		return m.createRefreshErr
	}
	if m.refreshTokens == nil {
		m.refreshTokens = make(map[string]*models.RefreshToken)
	}
	m.refreshTokens[token.TokenHash] = token
	return nil
}

func (m *mockCredentialRepo) FindRefreshToken(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	if m.refreshTokenErr != nil {
		return nil, m.refreshTokenErr
	}
	rt, ok := m.refreshTokens[tokenHash]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return rt, nil
}

func (m *mockCredentialRepo) FindRefreshTokenByID(ctx context.Context, id string) (*models.RefreshToken, error) {
	if m.refreshTokenErr != nil {
		return nil, m.refreshTokenErr
	}
	for _, token := range m.refreshTokens {
		if token.ID == id {
			return token, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockCredentialRepo) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	if m.revokeRefreshErr != nil {
		return m.revokeRefreshErr
	}
	for _, token := range m.refreshTokens {
		if token.ID == id {
			token.Revoked = true
			token.RevokedAt = &revokedAt
		}
	}
	return nil
}

func (m *mockCredentialRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.auditLogs = append(m.auditLogs, log)
	return nil
}

func testAuthConfig() AuthConfig {
	return AuthConfig{AccessTokenSecret: "secret", AccessTokenExpiry: time.Hour, RefreshTokenExpiry: 24 * time.Hour}
}

func newActiveUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{ID: "u1", Email: "admin@verluxstands.com", PasswordHash: string(hash), Active: true, Role: models.RoleAdmin}
}

func TestCredentialServiceSignInSuccess(t *testing.T) {
	repo := &mockCredentialRepo{userByEmail: newActiveUser(t, "password")}
	svc := NewCredentialService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	session, err := svc.SignIn(context.Background(), models.LoginRequest{Email: "admin@verluxstands.com", Password: "password", IP: "10.0.0.1"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.NotEmpty(t, session.SessionID)
	assert.True(t, repo.lastLoginUpdated)

	stored, ok := repo.refreshTokens[hashToken(session.RefreshToken)]
	require.True(t, ok, "refresh token must be stored hashed")
	assert.Equal(t, session.SessionID, stored.ID)
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionLogin, repo.auditLogs[0].Action)
	assert.Equal(t, "10.0.0.1", repo.auditLogs[0].IPAddress)
}

func TestCredentialServiceSignInWrongPassword(t *testing.T) {
	repo := &mockCredentialRepo{userByEmail: newActiveUser(t, "password")}
	svc := NewCredentialService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.SignIn(context.Background(), models.LoginRequest{Email: "admin@verluxstands.com", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.refreshTokens)
}

func TestCredentialServiceSignInUnknownUser(t *testing.T) {
	svc := NewCredentialService(&mockCredentialRepo{}, validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.SignIn(context.Background(), models.LoginRequest{Email: "ghost@verluxstands.com", Password: "password"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestCredentialServiceSignInInactive(t *testing.T) {
	user := newActiveUser(t, "password")
	user.Active = false
	svc := NewCredentialService(&mockCredentialRepo{userByEmail: user}, validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.SignIn(context.Background(), models.LoginRequest{Email: "admin@verluxstands.com", Password: "password"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestCredentialServiceSignInValidation(t *testing.T) {
	svc := NewCredentialService(&mockCredentialRepo{}, nil, nil, testAuthConfig())

	_, err := svc.SignIn(context.Background(), models.LoginRequest{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCredentialServiceSignOutRevokesToken(t *testing.T) {
	repo := &mockCredentialRepo{userByEmail: newActiveUser(t, "password")}
	svc := NewCredentialService(repo, validator.New(), zap.NewNop(), testAuthConfig())
	ctx := context.Background()

	session, err := svc.SignIn(ctx, models.LoginRequest{Email: "admin@verluxstands.com", Password: "password"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.SessionID, claims.SessionID)

	require.NoError(t, svc.SignOut(ctx, session.SessionID, "u1", models.RequestMeta{}))

	active, err := svc.SessionActive(ctx, session.SessionID)
	require.NoError(t, err)
	assert.False(t, active)

	_, err = svc.ValidateToken(ctx, session.AccessToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
	assert.Equal(t, models.AuditActionLogout, repo.auditLogs[len(repo.auditLogs)-1].Action)
}

func TestCredentialServiceSignOutEmptySession(t *testing.T) {
	repo := &mockCredentialRepo{}
	svc := NewCredentialService(repo, nil, nil, testAuthConfig())

	require.NoError(t, svc.SignOut(context.Background(), "", "", models.RequestMeta{}))
	assert.Empty(t, repo.auditLogs)
}

func TestCredentialServiceSessionActiveUnknown(t *testing.T) {
	svc := NewCredentialService(&mockCredentialRepo{}, nil, nil, testAuthConfig())

	active, err := svc.SessionActive(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestCredentialServiceRefresh(t *testing.T) {
	user := newActiveUser(t, "password")
	repo := &mockCredentialRepo{userByEmail: user, refreshTokens: map[string]*models.RefreshToken{}}
	old := &models.RefreshToken{ID: "rt1", UserID: user.ID, TokenHash: hashToken("token"), ExpiresAt: time.Now().Add(time.Hour)}
	repo.refreshTokens[old.TokenHash] = old

	svc := NewCredentialService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	session, err := svc.Refresh(context.Background(), models.RefreshTokenRequest{RefreshToken: "token"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEqual(t, "token", session.RefreshToken)
	assert.NotEqual(t, "rt1", session.SessionID)
	assert.True(t, old.Revoked)
}

func TestCredentialServiceRefreshRevoked(t *testing.T) {
	user := newActiveUser(t, "password")
	repo := &mockCredentialRepo{userByEmail: user, refreshTokens: map[string]*models.RefreshToken{}}
	repo.refreshTokens[hashToken("token")] = &models.RefreshToken{ID: "rt1", UserID: user.ID, TokenHash: hashToken("token"), ExpiresAt: time.Now().Add(time.Hour), Revoked: true}

	svc := NewCredentialService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.Refresh(context.Background(), models.RefreshTokenRequest{RefreshToken: "token"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestCredentialServiceChangePassword(t *testing.T) {
	user := newActiveUser(t, "oldpassword")
	oldHash := user.PasswordHash
	repo := &mockCredentialRepo{userByEmail: user}
	svc := NewCredentialService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	err := svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{OldPassword: "oldpassword", NewPassword: "newpassword"})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, user.PasswordHash)
	assert.True(t, repo.revokedAll)
}

func TestCredentialServiceChangePasswordWrongOld(t *testing.T) {
	repo := &mockCredentialRepo{userByEmail: newActiveUser(t, "oldpassword")}
	svc := NewCredentialService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	err := svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "newpassword"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.False(t, repo.revokedAll)
}

func TestCredentialServiceValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewCredentialService(&mockCredentialRepo{}, nil, nil, testAuthConfig())

	_, err := svc.ValidateToken(context.Background(), "not.a.token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

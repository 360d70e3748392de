package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/internal/repository"
	"github.com/verluxstands/verlux-api/internal/service"
	"github.com/verluxstands/verlux-api/internal/session"
	"github.com/verluxstands/verlux-api/pkg/config"
	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
	"github.com/verluxstands/verlux-api/pkg/treestore"
)

type fakeProvider struct {
	mu       sync.Mutex
	password string
	issued   int
	revoked  map[string]bool
	signOuts []string
	changed  string
}

func (p *fakeProvider) SignIn(_ context.Context, req models.LoginRequest) (*models.ProviderSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if req.Password != p.password {
		return nil, appErrors.ErrInvalidCredentials
	}
	p.issued++
	sid := fmt.Sprintf("sid-%d", p.issued)
	return &models.ProviderSession{
		SessionID:   sid,
		AccessToken: "access-" + sid,
		User:        models.UserInfo{ID: "u1", Email: req.Email, Role: models.RoleAdmin},
	}, nil
}

func (p *fakeProvider) SignOut(_ context.Context, sessionID, _ string, _ models.RequestMeta) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.revoked[sessionID] = true
	p.signOuts = append(p.signOuts, sessionID)
	return nil
}

func (p *fakeProvider) SessionActive(_ context.Context, sessionID string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.revoked[sessionID], nil
}

func (p *fakeProvider) Refresh(_ context.Context, req models.RefreshTokenRequest) (*models.ProviderSession, error) {
	if req.RefreshToken != "refresh-1" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid refresh token")
	}
	return &models.ProviderSession{AccessToken: "rotated"}, nil
}

func (p *fakeProvider) ChangePassword(_ context.Context, userID string, _ models.ChangePasswordRequest) error {
	p.changed = userID
	return nil
}

type fixedCode string

func (f fixedCode) Verify(_ context.Context, _, code, _ string) bool {
	return code == string(f)
}

type authFixture struct {
	router   *gin.Engine
	provider *fakeProvider
	settings *repository.TOTPSettingsRepository
	registry *session.Registry
	claims   *models.JWTClaims
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		provider: &fakeProvider{password: "correctpw", revoked: map[string]bool{}},
		settings: repository.NewTOTPSettingsRepository(treestore.NewMemory()),
	}
	f.registry = session.NewRegistry(config.SessionConfig{
		CookieName: "verlux_login",
		HashKey:    "0123456789abcdef0123456789abcdef",
		IdleTTL:    time.Minute,
	}, func() *service.LoginSession {
		return service.NewLoginSession(f.provider, f.settings, fixedCode("123456"), nil, nil)
	}, nil)

	h := NewAuthHandler(f.provider, f.registry)
	f.router = newTestRouter()
	f.router.POST("/login", h.Login)
	f.router.POST("/totp", h.SubmitTOTP)
	f.router.POST("/login/cancel", h.CancelLogin)
	f.router.GET("/session", h.Session)
	f.router.POST("/refresh", h.Refresh)
	authed := f.router.Group("", func(c *gin.Context) { withClaims(f.claims)(c) })
	authed.POST("/logout", h.Logout)
	authed.GET("/me", h.Me)
	authed.POST("/change-password", h.ChangePassword)
	return f
}

func (f *authFixture) enableTOTP(t *testing.T) {
	t.Helper()
	require.NoError(t, f.settings.Put(context.Background(), "a@b.com", models.UserTOTPSettings{Enabled: true, Secret: "JBSWY3DPEHPK3PXP"}))
}

func loginCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "verlux_login" {
			return c
		}
	}
	return nil
}

type statusBody struct {
	State        string `json:"state"`
	TOTPRequired bool   `json:"totpRequired"`
	Error        string `json:"error"`
	Session      *struct {
		AccessToken string `json:"access_token"`
	} `json:"session"`
}

func TestLoginWithoutTOTPAuthenticates(t *testing.T) {
	f := newAuthFixture(t)

	rec := send(f.router, http.MethodPost, "/login", `{"email":"a@b.com","password":"correctpw"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var status statusBody
	decodeData(t, rec, &status)
	assert.Equal(t, "AUTHENTICATED", status.State)
	require.NotNil(t, status.Session)
	assert.Equal(t, "access-sid-1", status.Session.AccessToken)

	cookie := loginCookie(rec)
	require.NotNil(t, cookie)
	decodeData(t, send(f.router, http.MethodGet, "/session", "", cookie), &status)
	assert.Equal(t, "AUTHENTICATED", status.State)
}

func TestLoginWithTOTPRequiresSecondStep(t *testing.T) {
	f := newAuthFixture(t)
	f.enableTOTP(t)

	rec := send(f.router, http.MethodPost, "/login", `{"email":"a@b.com","password":"correctpw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var status statusBody
	decodeData(t, rec, &status)
	assert.Equal(t, "TOTP_REQUIRED", status.State)
	assert.True(t, status.TOTPRequired)
	assert.Nil(t, status.Session)
	assert.True(t, f.provider.revoked["sid-1"], "provisional session must be revoked")
	cookie := loginCookie(rec)
	require.NotNil(t, cookie)

	rec = send(f.router, http.MethodPost, "/totp", `{"code":"000000"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, appErrors.ErrInvalidCode.Code, decodeEnvelope(t, rec).Error.Code)
	decodeData(t, send(f.router, http.MethodGet, "/session", "", cookie), &status)
	assert.Equal(t, "TOTP_PENDING", status.State)
	assert.Equal(t, "Invalid TOTP code", status.Error)

	rec = send(f.router, http.MethodPost, "/totp", `{"code":"123456"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &status)
	assert.Equal(t, "AUTHENTICATED", status.State)
	require.NotNil(t, status.Session)
	assert.Equal(t, "access-sid-2", status.Session.AccessToken)
}

func TestSubmitTOTPRepeatedMissesEndChallenge(t *testing.T) {
	f := newAuthFixture(t)
	f.enableTOTP(t)

	rec := send(f.router, http.MethodPost, "/login", `{"email":"a@b.com","password":"correctpw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := loginCookie(rec)
	require.NotNil(t, cookie)

	for i := 1; i < service.MaxTOTPAttempts; i++ {
		rec = send(f.router, http.MethodPost, "/totp", `{"code":"000000"}`, cookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
	rec = send(f.router, http.MethodPost, "/totp", `{"code":"000000"}`, cookie)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, appErrors.ErrTooManyAttempts.Code, decodeEnvelope(t, rec).Error.Code)

	rec = send(f.router, http.MethodPost, "/totp", `{"code":"123456"}`, cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, f.provider.issued)
}

func TestSubmitTOTPWithoutLoginIsInvalidState(t *testing.T) {
	f := newAuthFixture(t)
	rec := send(f.router, http.MethodPost, "/totp", `{"code":"123456"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	rec := send(f.router, http.MethodPost, "/login", `{"email":"a@b.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, decodeEnvelope(t, rec).Error.Code)
}

func TestCancelLoginReturnsAnonymous(t *testing.T) {
	f := newAuthFixture(t)
	f.enableTOTP(t)
	cookie := loginCookie(send(f.router, http.MethodPost, "/login", `{"email":"a@b.com","password":"correctpw"}`))

	var status statusBody
	decodeData(t, send(f.router, http.MethodPost, "/login/cancel", "", cookie), &status)
	assert.Equal(t, "ANONYMOUS", status.State)

	assert.Equal(t, http.StatusConflict, send(f.router, http.MethodPost, "/totp", `{"code":"123456"}`, cookie).Code)
}

func TestSessionDropsRevokedLogin(t *testing.T) {
	f := newAuthFixture(t)
	cookie := loginCookie(send(f.router, http.MethodPost, "/login", `{"email":"a@b.com","password":"correctpw"}`))
	f.provider.revoked["sid-1"] = true

	rec := send(f.router, http.MethodGet, "/session", "", cookie)
	var status statusBody
	decodeData(t, rec, &status)
	assert.Equal(t, "ANONYMOUS", status.State)
	cleared := loginCookie(rec)
	require.NotNil(t, cleared)
	assert.True(t, cleared.MaxAge < 0)
	assert.Equal(t, 0, f.registry.Len())
}

func TestLogoutSignsOutOnce(t *testing.T) {
	f := newAuthFixture(t)
	cookie := loginCookie(send(f.router, http.MethodPost, "/login", `{"email":"a@b.com","password":"correctpw"}`))
	f.claims = &models.JWTClaims{UserID: "u1", Email: "a@b.com", SessionID: "sid-1"}

	rec := send(f.router, http.MethodPost, "/logout", "", cookie)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"sid-1"}, f.provider.signOuts)
	assert.Equal(t, 0, f.registry.Len())
}

func TestLogoutWithBearerOnly(t *testing.T) {
	f := newAuthFixture(t)
	f.claims = &models.JWTClaims{UserID: "u1", SessionID: "sid-9"}

	assert.Equal(t, http.StatusNoContent, send(f.router, http.MethodPost, "/logout", "").Code)
	assert.Equal(t, []string{"sid-9"}, f.provider.signOuts)
}

func TestMeAndChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	assert.Equal(t, http.StatusUnauthorized, send(f.router, http.MethodGet, "/me", "").Code)

	f.claims = &models.JWTClaims{UserID: "u1", Email: "a@b.com", Role: models.RoleEditor}
	var user models.UserInfo
	decodeData(t, send(f.router, http.MethodGet, "/me", ""), &user)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, models.RoleEditor, user.Role)

	rec := send(f.router, http.MethodPost, "/change-password", `{"old_password":"a","new_password":"longenough"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "u1", f.provider.changed)
}

func TestRefresh(t *testing.T) {
	f := newAuthFixture(t)
	assert.Equal(t, http.StatusBadRequest, send(f.router, http.MethodPost, "/refresh", `{`).Code)
	assert.Equal(t, http.StatusUnauthorized, send(f.router, http.MethodPost, "/refresh", `{"refresh_token":"x"}`).Code)
	assert.Equal(t, http.StatusOK, send(f.router, http.MethodPost, "/refresh", `{"refresh_token":"refresh-1"}`).Code)
}

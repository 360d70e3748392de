package handler

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/internal/repository"
	"github.com/verluxstands/verlux-api/internal/service"
	"github.com/verluxstands/verlux-api/pkg/config"
	"github.com/verluxstands/verlux-api/pkg/treestore"
)

const testTOTPSecret = "JBSWY3DPEHPK3PXP"

type totpFixture struct {
	router *gin.Engine
	codec  *service.TOTPService
	claims *models.JWTClaims
}

func newTOTPFixture(t *testing.T) *totpFixture {
	t.Helper()
	codec := service.NewTOTPService(config.TOTPConfig{Issuer: "Verlux Stands Admin", Period: 30, Skew: 2, QRSize: 64}, nil, nil)
	settings := service.NewTOTPSettingsService(repository.NewTOTPSettingsRepository(treestore.NewMemory()), codec, nil)
	h := NewTOTPHandler(codec, settings)

	f := &totpFixture{codec: codec}
	f.router = newTestRouter()
	f.router.Use(func(c *gin.Context) { withClaims(f.claims)(c) })
	f.router.POST("/totp/setup", h.Setup)
	f.router.GET("/totp/settings", h.Settings)
	f.router.POST("/totp/settings", h.UpdateSettings)
	f.router.POST("/totp/verify", h.Verify)
	return f
}

func (f *totpFixture) code(t *testing.T) string {
	t.Helper()
	code, err := f.codec.CodeAt(testTOTPSecret, time.Now())
	require.NoError(t, err)
	return code
}

func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}

func TestVerifyRequiresAllFields(t *testing.T) {
	f := newTOTPFixture(t)
	for _, body := range []string{`{`, `{}`, `{"secret":"S","code":"123456"}`, `{"secret":"S","email":"a@b.com"}`} {
		rec := send(f.router, http.MethodPost, "/totp/verify", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "Secret, code, and email are required", decodePlain(t, rec)["error"])
	}
}

func TestVerifyEndpoint(t *testing.T) {
	f := newTOTPFixture(t)
	code := f.code(t)
	body := func(c string) string {
		return fmt.Sprintf(`{"secret":%q,"code":%q,"email":"a@b.com"}`, testTOTPSecret, c)
	}

	assert.Equal(t, true, decodePlain(t, send(f.router, http.MethodPost, "/totp/verify", body(code)))["valid"])
	assert.Equal(t, false, decodePlain(t, send(f.router, http.MethodPost, "/totp/verify", body(wrongCode(code))))["valid"])
	assert.Equal(t, false, decodePlain(t, send(f.router, http.MethodPost, "/totp/verify", body("12ab56")))["valid"])
}

func TestSetupForCaller(t *testing.T) {
	f := newTOTPFixture(t)
	f.claims = &models.JWTClaims{UserID: "u1", Email: "ops@verluxstands.com", Role: models.RoleAdmin}

	rec := send(f.router, http.MethodPost, "/totp/setup", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodePlain(t, rec)
	assert.NotEmpty(t, body["secret"])
	assert.True(t, strings.HasPrefix(body["qrCode"].(string), "data:image/png;base64,"))
	assert.Contains(t, body["otpauthUrl"], "otpauth://totp/")
}

func TestSetupForAnotherAccountNeedsSuperAdmin(t *testing.T) {
	f := newTOTPFixture(t)
	f.claims = &models.JWTClaims{UserID: "u1", Email: "ops@verluxstands.com", Role: models.RoleAdmin}
	assert.Equal(t, http.StatusForbidden, send(f.router, http.MethodPost, "/totp/setup", `{"email":"other@verluxstands.com"}`).Code)

	f.claims.Role = models.RoleSuperAdmin
	assert.Equal(t, http.StatusOK, send(f.router, http.MethodPost, "/totp/setup", `{"email":"other@verluxstands.com"}`).Code)
}

func TestSettingsEnableDisableCycle(t *testing.T) {
	f := newTOTPFixture(t)
	f.claims = &models.JWTClaims{UserID: "u1", Email: "a@b.com", Role: models.RoleAdmin}

	rec := send(f.router, http.MethodPost, "/totp/settings",
		fmt.Sprintf(`{"action":"enable","secret":%q,"code":%q}`, testTOTPSecret, wrongCode(f.code(t))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid TOTP code", decodePlain(t, rec)["error"])
	assert.Equal(t, false, decodePlain(t, send(f.router, http.MethodGet, "/totp/settings", ""))["enabled"])

	rec = send(f.router, http.MethodPost, "/totp/settings",
		fmt.Sprintf(`{"action":"enable","secret":%q,"code":%q}`, testTOTPSecret, f.code(t)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, decodePlain(t, rec)["success"])

	status := decodePlain(t, send(f.router, http.MethodGet, "/totp/settings", ""))
	assert.Equal(t, true, status["enabled"])
	assert.NotContains(t, status, "secret")

	rec = send(f.router, http.MethodPost, "/totp/settings", `{"action":"disable"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodePlain(t, send(f.router, http.MethodGet, "/totp/settings", ""))["enabled"])
}

func TestSettingsRejectsUnknownAction(t *testing.T) {
	f := newTOTPFixture(t)
	f.claims = &models.JWTClaims{UserID: "u1", Email: "a@b.com"}
	rec := send(f.router, http.MethodPost, "/totp/settings", `{"action":"toggle"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid action", decodePlain(t, rec)["error"])
}

func TestSettingsWithoutCallerNeedsEmail(t *testing.T) {
	f := newTOTPFixture(t)
	rec := send(f.router, http.MethodGet, "/totp/settings", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing email", decodePlain(t, rec)["error"])

	assert.Equal(t, http.StatusOK, send(f.router, http.MethodGet, "/totp/settings?email=a@b.com", "").Code)
}

func TestSettingsMissingFields(t *testing.T) {
	f := newTOTPFixture(t)
	f.claims = &models.JWTClaims{UserID: "u1", Email: "a@b.com"}
	rec := send(f.router, http.MethodPost, "/totp/settings", `{"action":"enable"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing secret or code", decodePlain(t, rec)["error"])
}

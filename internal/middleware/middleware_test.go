package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verluxstands/verlux-api/internal/models"
	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
)

type stubValidator struct {
	claims *models.JWTClaims
}

func (s stubValidator) ValidateToken(_ context.Context, token string) (*models.JWTClaims, error) {
	if token != "good" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session revoked")
	}
	return s.claims, nil
}

type recordingAudit struct {
	logs []*models.AuditLog
	err  error
}

func (r *recordingAudit) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	r.logs = append(r.logs, log)
	return r.err
}

func serve(router *gin.Engine, method, path, auth string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestJWTMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	claims := &models.JWTClaims{UserID: "u1", Role: models.RoleEditor}
	router := gin.New()
	router.GET("/private", JWT(stubValidator{claims: claims}), func(c *gin.Context) {
		got, ok := Claims(c)
		require.True(t, ok)
		c.String(http.StatusOK, got.UserID)
	})

	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/private", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/private", "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/private", "Bearer bad").Code)

	ok := serve(router, http.MethodGet, "/private", "bearer good")
	assert.Equal(t, http.StatusOK, ok.Code)
	assert.Equal(t, "u1", ok.Body.String())
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	withRole := func(role models.UserRole) gin.HandlerFunc {
		return func(c *gin.Context) {
			if role != "" {
				c.Set(ContextUserKey, &models.JWTClaims{UserID: "u1", Role: role})
			}
		}
	}
	cases := []struct {
		role models.UserRole
		want int
	}{
		{"", http.StatusUnauthorized},
		{models.RoleEditor, http.StatusForbidden},
		{models.RoleAdmin, http.StatusNoContent},
		{models.RoleSuperAdmin, http.StatusNoContent},
	}
	for _, tc := range cases {
		router := gin.New()
		router.DELETE("/x", withRole(tc.role), RequireRoles(models.RoleAdmin), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		assert.Equal(t, tc.want, serve(router, http.MethodDelete, "/x", "").Code, string(tc.role))
	}
}

func TestAuditMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	writer := &recordingAudit{}
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserKey, &models.JWTClaims{UserID: "u1"})
	})
	router.PUT("/pages/:slug", Audit(writer, nil, models.AuditActionUpdate, "page"), func(c *gin.Context) {
		if c.Param("slug") == "bad" {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	serve(router, http.MethodPut, "/pages/home", "")
	serve(router, http.MethodPut, "/pages/bad", "")

	require.Len(t, writer.logs, 1)
	entry := writer.logs[0]
	assert.Equal(t, models.AuditActionUpdate, entry.Action)
	assert.Equal(t, "page", entry.Resource)
	require.NotNil(t, entry.ResourceID)
	assert.Equal(t, "home", *entry.ResourceID)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "u1", *entry.UserID)

	writer.err = errors.New("db down")
	assert.Equal(t, http.StatusOK, serve(router, http.MethodPut, "/pages/about", "").Code)
}

func TestResponseMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(WithResponseMeta())
	var meta map[string]interface{}
	router.GET("/", func(c *gin.Context) {
		SetCacheHit(c, true)
		meta = ExtractMeta(c)
		c.Status(http.StatusOK)
	})

	recorder := serve(router, http.MethodGet, "/", "")
	assert.Equal(t, "HIT", recorder.Header().Get("X-Cache"))
	assert.Equal(t, true, meta[cacheHitKey])
	assert.Nil(t, ExtractMeta(nil))
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", RateLimit(2), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/login", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/login", "").Code)

	limited := serve(router, http.MethodPost, "/login", "")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Contains(t, limited.Body.String(), "RATE_LIMITED")
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	other := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "198.51.100.7:4000"
	router.ServeHTTP(other, req)
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestRateLimitDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/open", RateLimit(0), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/open", "").Code)
	}
}

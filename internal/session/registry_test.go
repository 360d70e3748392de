package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verluxstands/verlux-api/internal/service"
	"github.com/verluxstands/verlux-api/pkg/config"
)

func newTestRegistry() *Registry {
	cfg := config.SessionConfig{CookieName: "verlux_login", HashKey: "0123456789abcdef0123456789abcdef", IdleTTL: time.Minute}
	return NewRegistry(cfg, func() *service.LoginSession {
		return service.NewLoginSession(nil, nil, nil, nil, nil)
	}, nil)
}

func requestWithCookies(cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func TestAcquireSetsCookieAndReuses(t *testing.T) {
	reg := newTestRegistry()

	rec := httptest.NewRecorder()
	first, err := reg.Acquire(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	second, err := reg.Acquire(httptest.NewRecorder(), requestWithCookies(cookies))
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, reg.Len())
}

func TestLookupRejectsTamperedCookie(t *testing.T) {
	reg := newTestRegistry()

	_, ok := reg.Lookup(requestWithCookies([]*http.Cookie{{Name: "verlux_login", Value: "forged"}}))
	assert.False(t, ok)
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	reg := newTestRegistry()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	rec := httptest.NewRecorder()
	_, err := reg.Acquire(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	cookies := rec.Result().Cookies()

	now = now.Add(30 * time.Second)
	assert.Zero(t, reg.Sweep(context.Background()))

	now = now.Add(2 * time.Minute)
	_, ok := reg.Lookup(requestWithCookies(cookies))
	assert.False(t, ok)
	assert.Equal(t, 1, reg.Sweep(context.Background()))
	assert.Zero(t, reg.Len())
}

func TestReleaseExpiresCookie(t *testing.T) {
	reg := newTestRegistry()

	rec := httptest.NewRecorder()
	_, err := reg.Acquire(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	out := httptest.NewRecorder()
	reg.Release(context.Background(), out, requestWithCookies(rec.Result().Cookies()))
	assert.Zero(t, reg.Len())
	cleared := out.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

// Package session keeps one LoginSession per browser, addressed by a signed
// cookie.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"

	"github.com/verluxstands/verlux-api/internal/service"
	"github.com/verluxstands/verlux-api/pkg/config"
)

// Factory builds a fresh login session.
type Factory func() *service.LoginSession

type entry struct {
	login    *service.LoginSession
	lastSeen time.Time
}

// Registry maps browser session ids to login sessions and evicts idle ones.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry

	codec   *securecookie.SecureCookie
	factory Factory
	cfg     config.SessionConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewRegistry builds a registry signing cookies with cfg.HashKey and, when
// set, encrypting them with cfg.BlockKey.
func NewRegistry(cfg config.SessionConfig, factory Factory, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "verlux_login"
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	var blockKey []byte
	if cfg.BlockKey != "" {
		blockKey = []byte(cfg.BlockKey)
	}
	codec := securecookie.New([]byte(cfg.HashKey), blockKey)
	codec.MaxAge(int(cfg.IdleTTL.Seconds()))

	return &Registry{
		entries: make(map[string]*entry),
		codec:   codec,
		factory: factory,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// Lookup returns the login session named by the request cookie, if any.
func (r *Registry) Lookup(req *http.Request) (*service.LoginSession, bool) {
	id, ok := r.decode(req)
	if !ok {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || r.expired(e) {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.login, true
}

// Acquire returns the request's login session, creating one and setting the
// cookie when none is live.
func (r *Registry) Acquire(w http.ResponseWriter, req *http.Request) (*service.LoginSession, error) {
	if login, ok := r.Lookup(req); ok {
		return login, nil
	}

	id := uuid.NewString()
	encoded, err := r.codec.Encode(r.cfg.CookieName, id)
	if err != nil {
		return nil, err
	}

	login := r.factory()
	r.mu.Lock()
	r.entries[id] = &entry{login: login, lastSeen: r.now()}
	r.mu.Unlock()

	http.SetCookie(w, r.cookie(encoded, int(r.cfg.IdleTTL.Seconds())))
	return login, nil
}

// Release drops the request's session and expires its cookie.
func (r *Registry) Release(ctx context.Context, w http.ResponseWriter, req *http.Request) {
	if id, ok := r.decode(req); ok {
		r.mu.Lock()
		e, found := r.entries[id]
		delete(r.entries, id)
		r.mu.Unlock()
		if found {
			e.login.Close(ctx)
		}
	}
	http.SetCookie(w, r.cookie("", -1))
}

// Len reports the number of tracked sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep evicts idle sessions, signing each out, and returns how many went.
func (r *Registry) Sweep(ctx context.Context) int {
	r.mu.Lock()
	var stale []*service.LoginSession
	for id, e := range r.entries {
		if r.expired(e) {
			stale = append(stale, e.login)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, login := range stale {
		login.Close(ctx)
	}
	if len(stale) > 0 {
		r.logger.Debug("evicted idle login sessions", zap.Int("count", len(stale)))
	}
	return len(stale)
}

// Run sweeps every half idle period until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.IdleTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

func (r *Registry) decode(req *http.Request) (string, bool) {
	c, err := req.Cookie(r.cfg.CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	var id string
	if err := r.codec.Decode(r.cfg.CookieName, c.Value, &id); err != nil {
		r.logger.Debug("rejected login cookie", zap.Error(err))
		return "", false
	}
	return id, true
}

func (r *Registry) expired(e *entry) bool {
	return r.now().Sub(e.lastSeen) > r.cfg.IdleTTL
}

func (r *Registry) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     r.cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   r.cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}

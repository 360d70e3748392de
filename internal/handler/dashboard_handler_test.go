package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verluxstands/verlux-api/internal/models"
)

type stubDashboardService struct {
	overview *models.DashboardOverview
	hit      bool
	err      error
	email    string
}

func (s *stubDashboardService) Overview(_ context.Context, email string) (*models.DashboardOverview, bool, error) {
	s.email = email
	return s.overview, s.hit, s.err
}

func TestDashboardOverview(t *testing.T) {
	svc := &stubDashboardService{
		overview: &models.DashboardOverview{
			SEOPages:       12,
			BuilderPages:   3,
			PublishedPages: 2,
			DraftPages:     1,
			EventsByStatus: map[models.EventStatus]int{models.EventUpcoming: 4},
			TotalPageViews: 480,
			TOTPEnabled:    true,
		},
		hit: true,
	}
	r := newTestRouter()
	r.GET("/admin/dashboard", withClaims(&models.JWTClaims{Email: "owner@verluxstands.com", Role: models.RoleAdmin}), NewDashboardHandler(svc).Overview)

	rec := send(r, http.MethodGet, "/admin/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, "owner@verluxstands.com", svc.email)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, true, env.Meta["cache_hit"])
	assert.Contains(t, env.Meta, "processing_time_ms")

	var got models.DashboardOverview
	decodeData(t, rec, &got)
	assert.Equal(t, 12, got.SEOPages)
	assert.Equal(t, 4, got.EventsByStatus[models.EventUpcoming])
	assert.True(t, got.TOTPEnabled)
}

func TestDashboardOverviewRequiresClaims(t *testing.T) {
	r := newTestRouter()
	r.GET("/admin/dashboard", NewDashboardHandler(&stubDashboardService{}).Overview)
	assert.Equal(t, http.StatusUnauthorized, send(r, http.MethodGet, "/admin/dashboard", "").Code)
}

func TestDashboardOverviewError(t *testing.T) {
	r := newTestRouter()
	svc := &stubDashboardService{err: errors.New("store offline")}
	r.GET("/admin/dashboard", withClaims(&models.JWTClaims{Email: "a@b.co"}), NewDashboardHandler(svc).Overview)
	assert.Equal(t, http.StatusInternalServerError, send(r, http.MethodGet, "/admin/dashboard", "").Code)
}

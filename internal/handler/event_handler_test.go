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
	"github.com/verluxstands/verlux-api/pkg/treestore"
)

func newEventRouter(t *testing.T) *gin.Engine {
	t.Helper()
	svc := service.NewEventService(repository.NewEventRepository(treestore.NewMemory()), nil, nil)
	h := NewEventHandler(svc)

	r := newTestRouter()
	r.GET("/events", h.List)
	r.GET("/events/:id", h.Get)
	admin := r.Group("/admin/events")
	admin.GET("", h.List)
	admin.GET("/export", h.Export)
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.POST("/:id/cancel", h.Cancel)
	admin.DELETE("/:id", h.Delete)
	return r
}

func eventBody(title, category string, start, end time.Time) string {
	return fmt.Sprintf(`{"title":%q,"category":%q,"location":"Messe Berlin","startDate":%q,"endDate":%q}`,
		title, category, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func createEvent(t *testing.T, r *gin.Engine, body string) models.EventView {
	t.Helper()
	rec := send(r, http.MethodPost, "/admin/events", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var view models.EventView
	decodeData(t, rec, &view)
	return view
}

func TestEventCalendarOrder(t *testing.T) {
	r := newEventRouter(t)
	day := 24 * time.Hour
	now := time.Now().UTC()

	past := createEvent(t, r, eventBody("EuroShop", "Retail", now.Add(-60*day), now.Add(-55*day)))
	later := createEvent(t, r, eventBody("ISE", "AV", now.Add(90*day), now.Add(93*day)))
	soon := createEvent(t, r, eventBody("Interzum", "Furniture", now.Add(10*day), now.Add(13*day)))
	live := createEvent(t, r, eventBody("Bauma", "Construction", now.Add(-day), now.Add(2*day)))

	assert.Equal(t, models.EventCompleted, past.Status)
	assert.Equal(t, models.EventUpcoming, soon.Status)
	assert.Equal(t, models.EventOngoing, live.Status)

	var events []models.EventView
	decodeData(t, send(r, http.MethodGet, "/events", ""), &events)
	require.Len(t, events, 4)
	got := make([]string, 0, len(events))
	for _, e := range events {
		got = append(got, e.ID)
	}
	assert.Equal(t, []string{soon.ID, later.ID, live.ID, past.ID}, got)

	decodeData(t, send(r, http.MethodGet, "/events?status=Upcoming", ""), &events)
	assert.Len(t, events, 2)
	decodeData(t, send(r, http.MethodGet, "/events?category=av", ""), &events)
	require.Len(t, events, 1)
	assert.Equal(t, "ISE", events[0].Title)
}

func TestEventLifecycle(t *testing.T) {
	r := newEventRouter(t)
	now := time.Now().UTC()
	created := createEvent(t, r, eventBody("Salone del Mobile", "Furniture", now.Add(30*24*time.Hour), now.Add(35*24*time.Hour)))
	path := "/admin/events/" + created.ID

	rec := send(r, http.MethodPut, path, `{"location":"Fiera Milano Rho"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated models.EventView
	decodeData(t, rec, &updated)
	assert.Equal(t, "Fiera Milano Rho", updated.Location)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	require.NotNil(t, updated.UpdatedAt)

	rec = send(r, http.MethodPut, path, fmt.Sprintf(`{"endDate":%q}`, now.Add(-24*time.Hour).Format("2006-01-02")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = send(r, http.MethodPost, path+"/cancel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &updated)
	assert.Equal(t, models.EventCancelled, updated.Status)
	assert.True(t, updated.IsCancelled)

	assert.Equal(t, http.StatusOK, send(r, http.MethodGet, "/events/"+created.ID, "").Code)
	assert.Equal(t, http.StatusNoContent, send(r, http.MethodDelete, path, "").Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodGet, "/events/"+created.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodDelete, path, "").Code)
}

func TestEventCreateValidation(t *testing.T) {
	r := newEventRouter(t)

	cases := map[string]string{
		"missing title": `{"category":"AV","location":"RAI","startDate":"2026-01-01","endDate":"2026-01-02"}`,
		"bad date":      `{"title":"ISE","category":"AV","location":"RAI","startDate":"01/02/2026","endDate":"2026-01-02"}`,
		"end first":     `{"title":"ISE","category":"AV","location":"RAI","startDate":"2026-01-05","endDate":"2026-01-02"}`,
		"malformed":     `{"title":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, send(r, http.MethodPost, "/admin/events", body).Code)
		})
	}
}

func TestEventExport(t *testing.T) {
	r := newEventRouter(t)
	now := time.Now().UTC()
	createEvent(t, r, eventBody("ISE", "AV", now.Add(24*time.Hour), now.Add(72*time.Hour)))

	rec := send(r, http.MethodGet, "/admin/events/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="events-`)
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Title,Category,Start"))
	assert.Contains(t, lines[1], "ISE")

	rec = send(r, http.MethodGet, "/admin/events/export?format=pdf", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodGet, "/admin/events/export?format=xlsx", "").Code)
}

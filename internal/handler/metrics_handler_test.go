package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/internal/service"
	"github.com/verluxstands/verlux-api/pkg/treestore"
)

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealthAndReady(t *testing.T) {
	r := newTestRouter()
	up := NewMetricsHandler(nil, treestore.NewMemory())
	down := NewMetricsHandler(nil, downStore{})
	r.GET("/health", up.Health)
	r.GET("/ready", up.Ready)
	r.GET("/ready-down", down.Ready)

	assert.Equal(t, http.StatusOK, send(r, http.MethodGet, "/health", "").Code)
	assert.JSONEq(t, `{"status":"ok"}`, send(r, http.MethodGet, "/ready", "").Body.String())

	rec := send(r, http.MethodGet, "/ready-down", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unavailable","error":"connection refused"}`, rec.Body.String())
}

func TestPrometheusAndSnapshot(t *testing.T) {
	metrics := service.NewMetricsService()
	metrics.RecordPageView(true)
	metrics.RecordPageView(false)
	metrics.ObserveStoreOp("get", 3*time.Millisecond, nil)

	h := NewMetricsHandler(metrics, nil)
	r := newTestRouter()
	r.GET("/metrics", h.Prometheus)
	r.GET("/admin/metrics", h.Snapshot)

	rec := send(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `page_views_total{counted="true"} 1`)

	var snap models.SystemMetrics
	rec = send(r, http.MethodGet, "/admin/metrics", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, uint64(1), snap.PageViewsCounted)
	assert.Equal(t, uint64(1), snap.StoreOpCount)

	disabled := newTestRouter()
	disabled.GET("/metrics", NewMetricsHandler(nil, nil).Prometheus)
	assert.Equal(t, http.StatusServiceUnavailable, send(disabled, http.MethodGet, "/metrics", "").Code)
}

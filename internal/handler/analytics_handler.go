package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/verluxstands/verlux-api/internal/dto"
	"github.com/verluxstands/verlux-api/internal/middleware"
	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/internal/service"
	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
	"github.com/verluxstands/verlux-api/pkg/response"
)

type analyticsService interface {
	Track(ctx context.Context, view models.PageView) (bool, error)
	Tree(ctx context.Context) (*models.AnalyticsTree, error)
	Summary(ctx context.Context, rng models.AnalyticsRange) (*models.AnalyticsSummary, error)
}

// AnalyticsHandlerConfig controls tracking.
type AnalyticsHandlerConfig struct {
	Enabled        bool
	CountryHeaders []string
}

// AnalyticsHandler serves the page view beacon and the admin summary.
type AnalyticsHandler struct {
	analytics analyticsService
	cfg       AnalyticsHandlerConfig
	logger    *zap.Logger
}

// NewAnalyticsHandler constructs the analytics handler.
func NewAnalyticsHandler(analytics analyticsService, cfg AnalyticsHandlerConfig, logger *zap.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsHandler{analytics: analytics, cfg: cfg, logger: logger}
}

// Track godoc
// @Summary Record a page view
// @Description Counts one view per visitor, page and UTC day. Slugs containing "admin" are refused.
// @Tags Analytics
// @Accept json
// @Produce json
// @Param payload body dto.TrackRequest true "Page view"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /track [post]
func (h *AnalyticsHandler) Track(c *gin.Context) {
	var req dto.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Plain(c, http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid request body"})
		return
	}
	if !h.cfg.Enabled {
		response.Plain(c, http.StatusOK, gin.H{"ok": true, "counted": false})
		return
	}

	view := models.PageView{
		Slug:      req.Slug,
		Device:    req.Device,
		Referrer:  req.Referrer,
		IP:        service.ClientIP(c.GetHeader("X-Forwarded-For"), c.GetHeader("X-Real-IP"), c.RemoteIP()),
		Country:   h.country(c),
		Timestamp: time.Now(),
	}
	counted, err := h.analytics.Track(c.Request.Context(), view)
	switch {
	case err == nil:
		response.Plain(c, http.StatusOK, gin.H{"ok": true, "counted": counted})
	case appErrors.Is(err, appErrors.ErrAdminPath), appErrors.Is(err, appErrors.ErrValidation):
		appErr := appErrors.FromError(err)
		response.Plain(c, appErr.Status, gin.H{"ok": false, "error": appErr.Message})
	default:
		h.logger.Warn("page view dropped", zap.String("slug", req.Slug), zap.Error(err))
		response.Plain(c, http.StatusOK, gin.H{"ok": false, "counted": false})
	}
}

// Tree godoc
// @Summary Raw analytics tree
// @Tags Analytics
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /track [get]
func (h *AnalyticsHandler) Tree(c *gin.Context) {
	tree, err := h.analytics.Tree(c.Request.Context())
	if err != nil {
		h.logger.Warn("analytics read failed", zap.Error(err))
		response.Plain(c, http.StatusOK, gin.H{"ok": false})
		return
	}
	if tree.Empty() {
		response.Plain(c, http.StatusOK, gin.H{"ok": false})
		return
	}
	response.Plain(c, http.StatusOK, gin.H{"ok": true, "data": tree})
}

// Summary godoc
// @Summary Flattened analytics for the admin dashboard
// @Tags Analytics
// @Produce json
// @Param range query string false "today, 7d, 30d or all" default(7d)
// @Success 200 {object} response.Envelope
// @Router /admin/analytics [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	start := time.Now()
	summary, err := h.analytics.Summary(c.Request.Context(), models.AnalyticsRange(c.Query("range")))
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, summary, nil, meta)
}

func (h *AnalyticsHandler) country(c *gin.Context) string {
	for _, header := range h.cfg.CountryHeaders {
		if v := c.GetHeader(header); v != "" {
			return v
		}
	}
	return ""
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/verluxstands/verlux-api/internal/dto"
	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/internal/service"
	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
	"github.com/verluxstands/verlux-api/pkg/response"
)

type seoService interface {
	Get(ctx context.Context, slug string) (models.SEOPage, error)
	List(ctx context.Context) ([]models.SEOPage, error)
	Create(ctx context.Context, req dto.CreateSEOPageRequest) (*models.SEOPage, error)
	Update(ctx context.Context, slug string, input dto.SEOPageInput) (*models.SEOPage, error)
	Delete(ctx context.Context, slug string) error
	SeedDefaults(ctx context.Context) (int, error)
	Metadata(page models.SEOPage) models.PageMetadata
	Schema(page models.SEOPage) map[string]interface{}
	Sitemap(ctx context.Context) []models.SitemapEntry
}

// SEOHandler exposes per-page metadata, the sitemap and admin editing.
type SEOHandler struct {
	service seoService
	logger  *zap.Logger
}

// NewSEOHandler constructs the handler.
func NewSEOHandler(service seoService, logger *zap.Logger) *SEOHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SEOHandler{service: service, logger: logger}
}

// Get godoc
// @Summary Page metadata, head tags and JSON-LD
// @Tags SEO
// @Produce json
// @Param slug path string true "Page slug, nested segments joined with ~"
// @Success 200 {object} response.Envelope
// @Router /seo/{slug} [get]
func (h *SEOHandler) Get(c *gin.Context) {
	page, err := h.service.Get(c.Request.Context(), slugParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"page":     page,
		"metadata": h.service.Metadata(page),
		"schema":   h.service.Schema(page),
	}, nil)
}

// List godoc
// @Summary List SEO records with their scores
// @Tags SEO
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/seo [get]
func (h *SEOHandler) List(c *gin.Context) {
	pages, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	type row struct {
		models.SEOPage
		Validation models.SEOValidation `json:"validation"`
	}
	rows := make([]row, 0, len(pages))
	for _, p := range pages {
		rows = append(rows, row{SEOPage: p, Validation: service.ValidateSEO(p)})
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Create godoc
// @Summary Create an SEO record
// @Tags SEO
// @Accept json
// @Produce json
// @Param payload body dto.CreateSEOPageRequest true "Record"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/seo [post]
func (h *SEOHandler) Create(c *gin.Context) {
	var req dto.CreateSEOPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	page, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, page)
}

// Update godoc
// @Summary Update an SEO record
// @Tags SEO
// @Accept json
// @Produce json
// @Param slug path string true "Page slug"
// @Param payload body dto.SEOPageInput true "Changed fields"
// @Success 200 {object} response.Envelope
// @Router /admin/seo/{slug} [put]
func (h *SEOHandler) Update(c *gin.Context) {
	var req dto.SEOPageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	page, err := h.service.Update(c.Request.Context(), slugParam(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, nil)
}

// Delete godoc
// @Summary Delete an SEO record
// @Tags SEO
// @Param slug path string true "Page slug"
// @Success 204
// @Router /admin/seo/{slug} [delete]
func (h *SEOHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), slugParam(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Validate godoc
// @Summary Score a record without saving it
// @Tags SEO
// @Accept json
// @Produce json
// @Param payload body models.SEOPage true "Record"
// @Success 200 {object} response.Envelope
// @Router /admin/seo/validate [post]
func (h *SEOHandler) Validate(c *gin.Context) {
	var page models.SEOPage
	if err := c.ShouldBindJSON(&page); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	response.JSON(c, http.StatusOK, service.ValidateSEO(page), nil)
}

// Seed godoc
// @Summary Write the built-in records whose slugs are free
// @Tags SEO
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/seo/seed [post]
func (h *SEOHandler) Seed(c *gin.Context) {
	written, err := h.service.SeedDefaults(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"written": written}, nil)
}

// Sitemap godoc
// @Summary sitemap.xml
// @Tags SEO
// @Produce xml
// @Success 200 {string} string "sitemap"
// @Router /sitemap.xml [get]
func (h *SEOHandler) Sitemap(c *gin.Context) {
	body, err := service.SitemapXML(h.service.Sitemap(c.Request.Context()))
	if err != nil {
		h.logger.Error("sitemap encode failed", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

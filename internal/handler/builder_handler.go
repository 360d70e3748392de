package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verluxstands/verlux-api/internal/dto"
	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/internal/sections"
	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
	"github.com/verluxstands/verlux-api/pkg/response"
)

type pageBuilderService interface {
	List(ctx context.Context) ([]models.PageConfig, error)
	Get(ctx context.Context, slug string) (*models.PageConfig, error)
	Create(ctx context.Context, req dto.CreatePageRequest) (*models.PageConfig, error)
	Save(ctx context.Context, slug string, req dto.SavePageRequest) (*models.PageConfig, error)
	Reorder(ctx context.Context, slug string, req dto.ReorderRequest) (*models.PageConfig, error)
	AddSection(ctx context.Context, slug string, req dto.AddSectionRequest) (*models.PageConfig, error)
	RemoveSection(ctx context.Context, slug, id string) (*models.PageConfig, error)
	Delete(ctx context.Context, slug string) error
}

// BuilderHandler exposes the page builder to admins.
type BuilderHandler struct {
	service pageBuilderService
}

// NewBuilderHandler constructs the handler.
func NewBuilderHandler(service pageBuilderService) *BuilderHandler {
	return &BuilderHandler{service: service}
}

// Catalog godoc
// @Summary List section types
// @Tags Page Builder
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/sections [get]
func (h *BuilderHandler) Catalog(c *gin.Context) {
	response.JSON(c, http.StatusOK, sections.Catalog(), nil)
}

// List godoc
// @Summary List builder pages
// @Tags Page Builder
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/pages [get]
func (h *BuilderHandler) List(c *gin.Context) {
	pages, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pages, nil)
}

// Get godoc
// @Summary Get a builder page, drafts included
// @Tags Page Builder
// @Produce json
// @Param slug path string true "Page slug"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/pages/{slug} [get]
func (h *BuilderHandler) Get(c *gin.Context) {
	page, err := h.service.Get(c.Request.Context(), slugParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, nil)
}

// Create godoc
// @Summary Create a builder page
// @Tags Page Builder
// @Accept json
// @Produce json
// @Param payload body dto.CreatePageRequest true "Page"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/pages [post]
func (h *BuilderHandler) Create(c *gin.Context) {
	var req dto.CreatePageRequest
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

// Save godoc
// @Summary Save a builder page
// @Tags Page Builder
// @Accept json
// @Produce json
// @Param slug path string true "Page slug"
// @Param payload body dto.SavePageRequest true "Changes"
// @Success 200 {object} response.Envelope
// @Router /admin/pages/{slug} [put]
func (h *BuilderHandler) Save(c *gin.Context) {
	var req dto.SavePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	page, err := h.service.Save(c.Request.Context(), slugParam(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, nil)
}

// Reorder godoc
// @Summary Move a section
// @Tags Page Builder
// @Accept json
// @Produce json
// @Param slug path string true "Page slug"
// @Param payload body dto.ReorderRequest true "Source and target section ids"
// @Success 200 {object} response.Envelope
// @Router /admin/pages/{slug}/reorder [post]
func (h *BuilderHandler) Reorder(c *gin.Context) {
	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	page, err := h.service.Reorder(c.Request.Context(), slugParam(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, nil)
}

// AddSection godoc
// @Summary Append a section
// @Tags Page Builder
// @Accept json
// @Produce json
// @Param slug path string true "Page slug"
// @Param payload body dto.AddSectionRequest true "Section"
// @Success 200 {object} response.Envelope
// @Router /admin/pages/{slug}/sections [post]
func (h *BuilderHandler) AddSection(c *gin.Context) {
	var req dto.AddSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	page, err := h.service.AddSection(c.Request.Context(), slugParam(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, nil)
}

// RemoveSection godoc
// @Summary Remove a section
// @Tags Page Builder
// @Produce json
// @Param slug path string true "Page slug"
// @Param sectionId path string true "Section id"
// @Success 200 {object} response.Envelope
// @Router /admin/pages/{slug}/sections/{sectionId} [delete]
func (h *BuilderHandler) RemoveSection(c *gin.Context) {
	page, err := h.service.RemoveSection(c.Request.Context(), slugParam(c), c.Param("sectionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, nil)
}

// Delete godoc
// @Summary Delete a builder page
// @Tags Page Builder
// @Param slug path string true "Page slug"
// @Success 204
// @Router /admin/pages/{slug} [delete]
func (h *BuilderHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), slugParam(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

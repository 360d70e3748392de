package handler

import (
	"context"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/pkg/response"
)

type pageResolver interface {
	Resolve(ctx context.Context, slug string) (*models.PageConfig, error)
	Render(page *models.PageConfig) (*models.RenderedPage, error)
}

type seoReader interface {
	Get(ctx context.Context, slug string) (models.SEOPage, error)
	Metadata(page models.SEOPage) models.PageMetadata
	Schema(page models.SEOPage) map[string]interface{}
}

// PageHandler serves published builder pages.
type PageHandler struct {
	pages pageResolver
	seo   seoReader
}

// NewPageHandler constructs the handler.
func NewPageHandler(pages pageResolver, seo seoReader) *PageHandler {
	return &PageHandler{pages: pages, seo: seo}
}

var pageShell = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Meta.Title}}</title>
{{if .Meta.Canonical}}<link rel="canonical" href="{{.Meta.Canonical}}">
{{end}}{{range .Meta.Tags}}{{if .Name}}<meta name="{{.Name}}" content="{{.Content}}">
{{else}}<meta property="{{.Property}}" content="{{.Content}}">
{{end}}{{end}}<script type="application/ld+json">{{.Schema}}</script>
</head>
<body class="layout-{{.Page.Layout}}">
<main>
{{range .Page.Sections}}{{.HTML}}
{{end}}</main>
</body>
</html>
`))

type pageShellData struct {
	Meta   models.PageMetadata
	Schema map[string]interface{}
	Page   struct {
		Layout   models.PageLayout
		Sections []struct{ HTML template.HTML }
	}
}

// HTML godoc
// @Summary Render a published page
// @Tags Pages
// @Produce html
// @Param slug path string true "Page slug"
// @Success 200 {string} string "HTML document"
// @Failure 404 {object} response.Envelope
// @Router /p/{slug} [get]
func (h *PageHandler) HTML(c *gin.Context) {
	page, err := h.pages.Resolve(c.Request.Context(), pathSlugParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	rendered, err := h.pages.Render(page)
	if err != nil {
		response.Error(c, err)
		return
	}
	seoPage, err := h.seo.Get(c.Request.Context(), page.Slug)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := pageShellData{Meta: h.seo.Metadata(seoPage), Schema: h.seo.Schema(seoPage)}
	data.Page.Layout = rendered.Layout
	for _, section := range rendered.Sections {
		// Section HTML comes out of the section templates already escaped.
		data.Page.Sections = append(data.Page.Sections, struct{ HTML template.HTML }{template.HTML(section.HTML)})
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := pageShell.Execute(c.Writer, data); err != nil {
		_ = c.Error(err)
	}
}

// JSON godoc
// @Summary Resolve a published page configuration
// @Tags Pages
// @Produce json
// @Param slug path string true "Page slug"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /pages/{slug} [get]
func (h *PageHandler) JSON(c *gin.Context) {
	page, err := h.pages.Resolve(c.Request.Context(), slugParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	rendered, err := h.pages.Render(page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"page": page, "rendered": rendered}, nil)
}

package service

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/internal/sections"
	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
)

var reservedSegments = map[string]struct{}{
	"admin":       {},
	"api":         {},
	"_next":       {},
	".well-known": {},
	"docs":        {},
	"metrics":     {},
}

var whitespace = regexp.MustCompile(`\s+`)

// slugKeySeparator stands in for "/" in stored slug keys, so it cannot
// appear in a slug itself.
const slugKeySeparator = "~"

// NormalizeSlug lowercases, trims slashes and turns whitespace into dashes.
func NormalizeSlug(slug string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	slug = whitespace.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "/")
}

// IsReservedSlug reports whether the first segment belongs to an
// administrative or internal route.
func IsReservedSlug(slug string) bool {
	first := NormalizeSlug(slug)
	if i := strings.IndexByte(first, '/'); i >= 0 {
		first = first[:i]
	}
	_, ok := reservedSegments[first]
	return ok
}

type pageReader interface {
	Get(ctx context.Context, slug string) (*models.PageConfig, error)
}

// PageService resolves public builder pages and renders their sections.
type PageService struct {
	pages    pageReader
	registry *sections.Registry
	logger   *zap.Logger
}

// NewPageService constructs the page composition service.
func NewPageService(pages pageReader, registry *sections.Registry, logger *zap.Logger) *PageService {
	if registry == nil {
		registry = sections.NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageService{pages: pages, registry: registry, logger: logger}
}

// Resolve returns the published page for slug. Reserved, absent, malformed
// and unpublished pages all yield the same NotFound.
func (s *PageService) Resolve(ctx context.Context, slug string) (*models.PageConfig, error) {
	notFound := appErrors.Clone(appErrors.ErrNotFound, "page not found")
	slug = NormalizeSlug(slug)
	if slug == "" {
		slug = "home"
	}
	if IsReservedSlug(slug) || strings.Contains(slug, slugKeySeparator) {
		return nil, notFound
	}
	page, err := s.pages.Get(ctx, slug)
	if err != nil {
		if appErrors.Is(err, appErrors.ErrNotFound) || appErrors.Is(err, appErrors.ErrValidation) {
			return nil, notFound
		}
		return nil, err
	}
	if !page.IsPublished {
		return nil, notFound
	}
	return page, nil
}

// Render renders the page's sections sorted by order. Ties keep their list
// position; unknown section types produce nothing.
func (s *PageService) Render(page *models.PageConfig) (*models.RenderedPage, error) {
	ordered := cloneComponents(page.Components)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	out := &models.RenderedPage{Slug: page.Slug, Layout: page.Layout, Sections: make([]models.RenderedSection, 0, len(ordered))}
	for _, c := range ordered {
		html, err := s.registry.Render(c.Type, sections.Props(c.Props))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render page")
		}
		if html == "" {
			s.logger.Debug("skipping unknown section", zap.String("slug", page.Slug), zap.String("type", c.Type))
			continue
		}
		out.Sections = append(out.Sections, models.RenderedSection{ID: c.ID, Type: c.Type, HTML: string(html)})
	}
	return out, nil
}

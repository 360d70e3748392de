package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verluxstands/verlux-api/internal/dto"
	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/internal/sections"
	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
)

// ReorderComponents moves the component sourceID to the position held by
// targetID, shifting the components in between, and renumbers the result.
// It is a no-op when the ids are equal or either is missing.
func ReorderComponents(components []models.PageComponent, sourceID, targetID string) []models.PageComponent {
	out := cloneComponents(components)
	if sourceID == targetID {
		return out
	}
	from, to := indexOfComponent(out, sourceID), indexOfComponent(out, targetID)
	if from < 0 || to < 0 {
		return out
	}
	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return RenumberComponents(out)
}

// AddComponent appends a new component of the given kind with a fresh id.
func AddComponent(components []models.PageComponent, kind string, props map[string]interface{}) []models.PageComponent {
	out := cloneComponents(components)
	out = append(out, models.PageComponent{
		ID:    newComponentID(kind),
		Type:  kind,
		Order: len(out),
		Props: props,
	})
	return RenumberComponents(out)
}

// RemoveComponent deletes the component with id and renumbers the rest.
func RemoveComponent(components []models.PageComponent, id string) []models.PageComponent {
	out := make([]models.PageComponent, 0, len(components))
	for _, c := range components {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return RenumberComponents(out)
}

// RenumberComponents sets every order to its list position.
func RenumberComponents(components []models.PageComponent) []models.PageComponent {
	for i := range components {
		components[i].Order = i
	}
	return components
}

// NormalizeComponents repairs records written by older editors: missing ids
// are generated, the list is stably sorted by order and renumbered.
func NormalizeComponents(components []models.PageComponent) []models.PageComponent {
	out := cloneComponents(components)
	seen := make(map[string]struct{}, len(out))
	for i := range out {
		if _, dup := seen[out[i].ID]; out[i].ID == "" || dup {
			out[i].ID = newComponentID(out[i].Type)
		}
		seen[out[i].ID] = struct{}{}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return RenumberComponents(out)
}

func cloneComponents(components []models.PageComponent) []models.PageComponent {
	out := make([]models.PageComponent, len(components))
	copy(out, components)
	return out
}

func indexOfComponent(components []models.PageComponent, id string) int {
	for i, c := range components {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func newComponentID(kind string) string {
	if kind == "" {
		kind = "section"
	}
	return fmt.Sprintf("%s-%s", kind, uuid.NewString())
}

type pageBuilderRepository interface {
	Get(ctx context.Context, slug string) (*models.PageConfig, error)
	Exists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context) ([]models.PageConfig, error)
	Put(ctx context.Context, page models.PageConfig) error
	Update(ctx context.Context, slug string, fields map[string]interface{}) error
	Delete(ctx context.Context, slug string) error
}

type seoSeeder interface {
	PutIfAbsent(ctx context.Context, page models.SEOPage) (bool, error)
}

// PageBuilderService edits the ordered section list of builder pages.
type PageBuilderService struct {
	pages     pageBuilderRepository
	seo       seoSeeder
	baseURL   string
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewPageBuilderService constructs the builder service.
func NewPageBuilderService(pages pageBuilderRepository, seo seoSeeder, baseURL string, validate *validator.Validate, logger *zap.Logger) *PageBuilderService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &PageBuilderService{pages: pages, seo: seo, baseURL: strings.TrimRight(baseURL, "/"), validator: validate, logger: logger, now: time.Now}
	mustRegisterValidation(svc.validator, "pagelayout", func(fl validator.FieldLevel) bool {
		return models.PageLayout(fl.Field().String()).Valid()
	})
	mustRegisterValidation(svc.validator, "sectionkind", func(fl validator.FieldLevel) bool {
		return sections.Valid(fl.Field().String())
	})
	mustRegisterValidation(svc.validator, "schematype", func(fl validator.FieldLevel) bool {
		return models.SchemaType(fl.Field().String()).Valid()
	})
	return svc
}

// List returns every builder page, drafts included.
func (s *PageBuilderService) List(ctx context.Context) ([]models.PageConfig, error) {
	return s.pages.List(ctx)
}

// Get returns the page with its components normalized.
func (s *PageBuilderService) Get(ctx context.Context, slug string) (*models.PageConfig, error) {
	slug = NormalizeSlug(slug)
	if slug == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "slug is required")
	}
	page, err := s.pages.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	page.Components = NormalizeComponents(page.Components)
	return page, nil
}

// Create stores a new page and seeds its SEO record when none exists.
func (s *PageBuilderService) Create(ctx context.Context, req dto.CreatePageRequest) (*models.PageConfig, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid page payload")
	}
	slug := NormalizeSlug(req.Slug)
	if slug == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "slug is required")
	}
	if strings.Contains(slug, slugKeySeparator) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "slug may not contain '~'")
	}
	if IsReservedSlug(slug) {
		return nil, appErrors.ErrReservedSlug
	}

	exists, err := s.pages.Exists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "page already exists")
	}

	layout := req.Layout
	if layout == "" {
		layout = models.LayoutLanding
	}
	kinds := req.Sections
	if kinds == nil {
		kinds = []string{"hero", "services", "cta"}
	}
	var components []models.PageComponent
	for _, kind := range kinds {
		components = AddComponent(components, kind, nil)
	}
	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	now := s.now().UTC()
	page := models.PageConfig{
		Slug:        slug,
		Layout:      layout,
		Components:  components,
		IsPublished: published,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
	if page.Components == nil {
		page.Components = []models.PageComponent{}
	}

	if s.seo != nil {
		seoPage := DefaultSEOPage(slug, s.baseURL)
		seoPage.SchemaType = models.SchemaOrganization
		if req.SEO != nil {
			ApplySEOInput(&seoPage, *req.SEO)
		}
		seoPage.CreatedAt, seoPage.LastUpdated = &now, &now
		if _, err := s.seo.PutIfAbsent(ctx, seoPage); err != nil {
			return nil, err
		}
	}

	if err := s.pages.Put(ctx, page); err != nil {
		return nil, err
	}
	s.logger.Info("page created", zap.String("slug", slug), zap.Int("sections", len(components)))
	return &page, nil
}

// Save applies a partial update. Components are renumbered by list position
// and must all be of a known kind.
func (s *PageBuilderService) Save(ctx context.Context, slug string, req dto.SavePageRequest) (*models.PageConfig, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid page payload")
	}
	slug = NormalizeSlug(slug)

	fields := map[string]interface{}{}
	if req.Components != nil {
		components := cloneComponents(*req.Components)
		for i, c := range components {
			if !sections.Valid(c.Type) {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown section type %q", c.Type))
			}
			if c.ID == "" {
				components[i].ID = newComponentID(c.Type)
			}
		}
		fields["components"] = RenumberComponents(components)
	}
	if req.Layout != nil {
		fields["layout"] = *req.Layout
	}
	if req.IsPublished != nil {
		fields["isPublished"] = *req.IsPublished
	}
	return s.update(ctx, slug, fields)
}

// Reorder moves a section within the page.
func (s *PageBuilderService) Reorder(ctx context.Context, slug string, req dto.ReorderRequest) (*models.PageConfig, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reorder payload")
	}
	page, err := s.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, page.Slug, map[string]interface{}{
		"components": ReorderComponents(page.Components, req.SourceID, req.TargetID),
	})
}

// AddSection appends a section to the page.
func (s *PageBuilderService) AddSection(ctx context.Context, slug string, req dto.AddSectionRequest) (*models.PageConfig, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid section payload")
	}
	page, err := s.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, page.Slug, map[string]interface{}{
		"components": AddComponent(page.Components, req.Type, req.Props),
	})
}

// RemoveSection deletes a section from the page.
func (s *PageBuilderService) RemoveSection(ctx context.Context, slug, id string) (*models.PageConfig, error) {
	page, err := s.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	if indexOfComponent(page.Components, id) < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
	}
	return s.update(ctx, page.Slug, map[string]interface{}{
		"components": RemoveComponent(page.Components, id),
	})
}

// Delete removes the page. The SEO record is kept.
func (s *PageBuilderService) Delete(ctx context.Context, slug string) error {
	slug = NormalizeSlug(slug)
	exists, err := s.pages.Exists(ctx, slug)
	if err != nil {
		return err
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "page not found")
	}
	if err := s.pages.Delete(ctx, slug); err != nil {
		return err
	}
	s.logger.Info("page deleted", zap.String("slug", slug))
	return nil
}

func (s *PageBuilderService) update(ctx context.Context, slug string, fields map[string]interface{}) (*models.PageConfig, error) {
	exists, err := s.pages.Exists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "page not found")
	}
	fields["updatedAt"] = s.now().UTC()
	if err := s.pages.Update(ctx, slug, fields); err != nil {
		return nil, err
	}
	return s.Get(ctx, slug)
}

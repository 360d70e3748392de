package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/pkg/treestore"
)

// PageRepository persists builder pages under page_builder/.
type PageRepository struct {
	store treestore.Store
}

// NewPageRepository constructs the repository.
func NewPageRepository(store treestore.Store) *PageRepository {
	return &PageRepository{store: store}
}

// Get returns the page stored for slug.
func (r *PageRepository) Get(ctx context.Context, slug string) (*models.PageConfig, error) {
	var page models.PageConfig
	if err := r.store.Get(ctx, pageBuilderPath(slug), &page); err != nil {
		return nil, storeError(err, "page")
	}
	if page.Slug == "" {
		page.Slug = slug
	}
	return &page, nil
}

// Exists reports whether a page is stored for slug.
func (r *PageRepository) Exists(ctx context.Context, slug string) (bool, error) {
	ok, err := r.store.Exists(ctx, pageBuilderPath(slug))
	return ok, storeError(err, "page")
}

// List returns every page sorted by slug.
func (r *PageRepository) List(ctx context.Context) ([]models.PageConfig, error) {
	var all map[string]models.PageConfig
	if err := r.store.Get(ctx, PageBuilderRoot, &all); err != nil {
		if errors.Is(err, treestore.ErrNotFound) {
			return []models.PageConfig{}, nil
		}
		return nil, storeError(err, "pages")
	}
	pages := make([]models.PageConfig, 0, len(all))
	for key, page := range all {
		if page.Slug == "" {
			page.Slug = SlugFromKey(key)
		}
		pages = append(pages, page)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Slug < pages[j].Slug })
	return pages, nil
}

// Put overwrites the page record.
func (r *PageRepository) Put(ctx context.Context, page models.PageConfig) error {
	return storeError(r.store.Set(ctx, pageBuilderPath(page.Slug), page), "page")
}

// Update merges top-level fields into the page record.
func (r *PageRepository) Update(ctx context.Context, slug string, fields map[string]interface{}) error {
	return storeError(r.store.Update(ctx, pageBuilderPath(slug), fields), "page")
}

// Delete removes the page record.
func (r *PageRepository) Delete(ctx context.Context, slug string) error {
	return storeError(r.store.Remove(ctx, pageBuilderPath(slug)), "page")
}

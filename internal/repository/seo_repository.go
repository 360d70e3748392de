package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/pkg/treestore"
)

// SEORepository persists per-page metadata under seo_pages/.
type SEORepository struct {
	store treestore.Store
}

// NewSEORepository constructs the repository.
func NewSEORepository(store treestore.Store) *SEORepository {
	return &SEORepository{store: store}
}

// Get returns the record for slug.
func (r *SEORepository) Get(ctx context.Context, slug string) (*models.SEOPage, error) {
	var page models.SEOPage
	if err := r.store.Get(ctx, seoPagePath(slug), &page); err != nil {
		return nil, storeError(err, "seo page")
	}
	if page.Slug == "" {
		page.Slug = slug
	}
	return &page, nil
}

// List returns every record sorted by slug.
func (r *SEORepository) List(ctx context.Context) ([]models.SEOPage, error) {
	var all map[string]models.SEOPage
	if err := r.store.Get(ctx, SEOPagesRoot, &all); err != nil {
		if errors.Is(err, treestore.ErrNotFound) {
			return []models.SEOPage{}, nil
		}
		return nil, storeError(err, "seo pages")
	}
	pages := make([]models.SEOPage, 0, len(all))
	for key, page := range all {
		if page.Slug == "" {
			page.Slug = SlugFromKey(key)
		}
		pages = append(pages, page)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Slug < pages[j].Slug })
	return pages, nil
}

// Exists reports whether a record is stored for slug.
func (r *SEORepository) Exists(ctx context.Context, slug string) (bool, error) {
	ok, err := r.store.Exists(ctx, seoPagePath(slug))
	return ok, storeError(err, "seo page")
}

// Put overwrites the record.
func (r *SEORepository) Put(ctx context.Context, page models.SEOPage) error {
	return storeError(r.store.Set(ctx, seoPagePath(page.Slug), page), "seo page")
}

// PutIfAbsent writes the record only when the slug is free.
func (r *SEORepository) PutIfAbsent(ctx context.Context, page models.SEOPage) (bool, error) {
	ok, err := r.store.SetIfAbsent(ctx, seoPagePath(page.Slug), page)
	return ok, storeError(err, "seo page")
}

// Update merges top-level fields into the record.
func (r *SEORepository) Update(ctx context.Context, slug string, fields map[string]interface{}) error {
	return storeError(r.store.Update(ctx, seoPagePath(slug), fields), "seo page")
}

// Delete removes the record.
func (r *SEORepository) Delete(ctx context.Context, slug string) error {
	return storeError(r.store.Remove(ctx, seoPagePath(slug)), "seo page")
}

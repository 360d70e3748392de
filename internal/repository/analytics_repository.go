package repository

import (
	"context"
	"errors"

	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/pkg/treestore"
)

// AnalyticsRepository owns the analytics/ subtree: one visitor marker per
// (date, page, ip hash) and increment-only counters.
type AnalyticsRepository struct {
	store treestore.Store
}

// NewAnalyticsRepository constructs the repository.
func NewAnalyticsRepository(store treestore.Store) *AnalyticsRepository {
	return &AnalyticsRepository{store: store}
}

// MarkVisitor records the first hit of ipHash on slug for date. It returns
// false when the visitor was already recorded.
func (r *AnalyticsRepository) MarkVisitor(ctx context.Context, date, slug, ipHash string, record models.VisitorRecord) (bool, error) {
	created, err := r.store.SetIfAbsent(ctx, visitorPath(date, slug, ipHash), record)
	return created, storeError(err, "visitor")
}

func (r *AnalyticsRepository) IncrementPage(ctx context.Context, slug string) error {
	return r.incr(ctx, pageCounterPath(slug))
}

func (r *AnalyticsRepository) IncrementDaily(ctx context.Context, date, slug string) error {
	return r.incr(ctx, dailyCounterPath(date, slug))
}

func (r *AnalyticsRepository) IncrementDevice(ctx context.Context, device string) error {
	return r.incr(ctx, deviceCounterPath(device))
}

func (r *AnalyticsRepository) IncrementReferrer(ctx context.Context, referrer string) error {
	return r.incr(ctx, referrerCounterPath(referrer))
}

func (r *AnalyticsRepository) IncrementCountry(ctx context.Context, country string) error {
	return r.incr(ctx, countryCounterPath(country))
}

func (r *AnalyticsRepository) incr(ctx context.Context, path string) error {
	_, err := r.store.Increment(ctx, path, 1)
	return storeError(err, "counter")
}

// Tree reads the whole analytics subtree. An untouched tree is returned empty.
func (r *AnalyticsRepository) Tree(ctx context.Context) (*models.AnalyticsTree, error) {
	var tree models.AnalyticsTree
	if err := r.store.Get(ctx, AnalyticsRoot, &tree); err != nil {
		if errors.Is(err, treestore.ErrNotFound) {
			return &tree, nil
		}
		return nil, storeError(err, "analytics")
	}
	return &tree, nil
}

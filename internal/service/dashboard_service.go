package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/verluxstands/verlux-api/internal/models"
	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
)

type seoLister interface {
	List(ctx context.Context) ([]models.SEOPage, error)
}

type builderLister interface {
	List(ctx context.Context) ([]models.PageConfig, error)
}

type eventLister interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.EventView, error)
}

type analyticsTreeReader interface {
	Tree(ctx context.Context) (*models.AnalyticsTree, error)
}

type totpStatusReader interface {
	Status(ctx context.Context, email string) (*models.TOTPStatus, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardService composes the admin landing overview.
type DashboardService struct {
	seo       seoLister
	pages     builderLister
	events    eventLister
	analytics analyticsTreeReader
	totp      totpStatusReader
	cache     *CacheService
	logger    *zap.Logger
	now       func() time.Time
	cfg       DashboardServiceConfig
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	SEO       seoLister
	Pages     builderLister
	Events    eventLister
	Analytics analyticsTreeReader
	TOTP      totpStatusReader
	Cache     *CacheService
	Logger    *zap.Logger
	Config    DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		seo:       params.SEO,
		pages:     params.Pages,
		events:    params.Events,
		analytics: params.Analytics,
		totp:      params.TOTP,
		cache:     params.Cache,
		logger:    logger,
		now:       time.Now,
		cfg:       cfg,
	}
}

// Overview returns the dashboard counts for the signed-in admin and reports
// whether they came from cache.
func (s *DashboardService) Overview(ctx context.Context, email string) (*models.DashboardOverview, bool, error) {
	if email == "" {
		return nil, false, appErrors.ErrMissingEmail
	}
	cacheKey := "dash:overview:" + email
	if s.cache != nil {
		var cached models.DashboardOverview
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			return nil, false, err
		}
		if hit {
			return &cached, true, nil
		}
	}

	overview, err := s.compose(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, overview, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return overview, false, nil
}

func (s *DashboardService) compose(ctx context.Context, email string) (*models.DashboardOverview, error) {
	overview := &models.DashboardOverview{
		EventsByStatus: map[models.EventStatus]int{
			models.EventUpcoming:  0,
			models.EventOngoing:   0,
			models.EventCompleted: 0,
			models.EventCancelled: 0,
		},
		GeneratedAt: s.now().UTC(),
	}

	seoPages, err := s.seo.List(ctx)
	if err != nil {
		return nil, err
	}
	overview.SEOPages = len(seoPages)

	pages, err := s.pages.List(ctx)
	if err != nil {
		return nil, err
	}
	overview.BuilderPages = len(pages)
	for _, page := range pages {
		if page.IsPublished {
			overview.PublishedPages++
		} else {
			overview.DraftPages++
		}
	}

	events, err := s.events.List(ctx, models.EventFilter{})
	if err != nil {
		return nil, err
	}
	for _, event := range events {
		overview.EventsByStatus[event.Status]++
	}

	if s.analytics != nil {
		tree, err := s.analytics.Tree(ctx)
		if err != nil {
			s.logger.Warn("dashboard analytics unavailable", zap.Error(err))
		} else {
			for _, n := range tree.Pages {
				overview.TotalPageViews += n
			}
		}
	}

	if s.totp != nil {
		status, err := s.totp.Status(ctx, email)
		if err != nil {
			s.logger.Warn("dashboard totp status unavailable", zap.Error(err))
		} else if status != nil {
			overview.TOTPEnabled = status.Enabled
		}
	}
	return overview, nil
}

package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/internal/repository"
	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
	"github.com/verluxstands/verlux-api/pkg/treestore"
)

type analyticsRepository interface {
	MarkVisitor(ctx context.Context, date, slug, ipHash string, record models.VisitorRecord) (bool, error)
	IncrementPage(ctx context.Context, slug string) error
	IncrementDaily(ctx context.Context, date, slug string) error
	IncrementDevice(ctx context.Context, device string) error
	IncrementReferrer(ctx context.Context, referrer string) error
	IncrementCountry(ctx context.Context, country string) error
	Tree(ctx context.Context) (*models.AnalyticsTree, error)
}

// AnalyticsService counts unique daily page views and flattens the counters
// for the dashboard.
type AnalyticsService struct {
	repo    analyticsRepository
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// NewAnalyticsService constructs the analytics aggregator.
func NewAnalyticsService(repo analyticsRepository, metrics *MetricsService, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{repo: repo, metrics: metrics, logger: logger, now: time.Now}
}

// ClientIP picks the caller address from proxy headers.
func ClientIP(forwardedFor, realIP, remote string) string {
	if first := strings.TrimSpace(strings.Split(forwardedFor, ",")[0]); first != "" {
		return first
	}
	if realIP = strings.TrimSpace(realIP); realIP != "" {
		return realIP
	}
	if remote = strings.TrimSpace(remote); remote != "" {
		return remote
	}
	return "unknown"
}

// HashIP returns the hex SHA-256 of ip; raw addresses are never stored.
func HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])
}

// Track records a page view. It returns false when the visitor was already
// counted for this page today. Counter failures are logged and dropped.
func (s *AnalyticsService) Track(ctx context.Context, view models.PageView) (bool, error) {
	if strings.Contains(strings.ToLower(view.Slug), "admin") {
		return false, appErrors.ErrAdminPath
	}
	slug := NormalizeSlug(view.Slug)
	if slug == "" {
		if strings.TrimSpace(view.Slug) == "" {
			return false, appErrors.Clone(appErrors.ErrValidation, "slug is required")
		}
		slug = "home"
	}
	if _, err := treestore.Clean(repository.SlugKey(slug)); err != nil {
		return false, appErrors.Clone(appErrors.ErrValidation, "invalid slug")
	}

	device := firstNonEmpty(strings.ToLower(strings.TrimSpace(view.Device)), "unknown")
	referrer := firstNonEmpty(strings.TrimSpace(view.Referrer), "direct")
	country := firstNonEmpty(strings.ToUpper(strings.TrimSpace(view.Country)), "unknown")
	at := view.Timestamp
	if at.IsZero() {
		at = s.now()
	}
	at = at.UTC()
	date := at.Format(dateOnly)

	counted, err := s.repo.MarkVisitor(ctx, date, slug, HashIP(view.IP), models.VisitorRecord{
		Country:  country,
		Device:   device,
		Referrer: referrer,
		At:       at.UnixMilli(),
	})
	if err != nil {
		return false, err
	}
	s.metrics.RecordPageView(counted)
	if !counted {
		return false, nil
	}

	increments := map[string]func() error{
		"page":     func() error { return s.repo.IncrementPage(ctx, slug) },
		"daily":    func() error { return s.repo.IncrementDaily(ctx, date, slug) },
		"device":   func() error { return s.repo.IncrementDevice(ctx, device) },
		"referrer": func() error { return s.repo.IncrementReferrer(ctx, referrer) },
		"country":  func() error { return s.repo.IncrementCountry(ctx, country) },
	}
	var wg sync.WaitGroup
	for name, inc := range increments {
		wg.Add(1)
		go func(name string, inc func() error) {
			defer wg.Done()
			if err := inc(); err != nil {
				s.logger.Warn("analytics increment dropped", zap.String("counter", name), zap.String("slug", slug), zap.Error(err))
			}
		}(name, inc)
	}
	wg.Wait()
	return true, nil
}

// Tree returns the raw analytics subtree.
func (s *AnalyticsService) Tree(ctx context.Context) (*models.AnalyticsTree, error) {
	return s.repo.Tree(ctx)
}

// Summary flattens the counters for a range. "all" reads the running totals;
// bounded ranges are rebuilt from the daily buckets and visitor markers.
func (s *AnalyticsService) Summary(ctx context.Context, rng models.AnalyticsRange) (*models.AnalyticsSummary, error) {
	if rng == "" {
		rng = models.Range7d
	}
	switch rng {
	case models.RangeToday, models.Range7d, models.Range30d, models.RangeAll:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "range must be one of today, 7d, 30d, all")
	}
	tree, err := s.repo.Tree(ctx)
	if err != nil {
		return nil, err
	}

	inRange := func(string) bool { return true }
	if days := rng.Days(); days > 0 {
		cutoff := s.now().UTC().AddDate(0, 0, -(days - 1)).Format(dateOnly)
		inRange = func(date string) bool { return date >= cutoff }
	}

	pages := map[string]int64{}
	daily := map[string]int64{}
	for date, bySlug := range tree.Daily {
		if !inRange(date) {
			continue
		}
		for key, n := range bySlug {
			daily[date] += n
			pages[repository.SlugFromKey(key)] += n
		}
	}

	devices, referrers, countries := map[string]int64{}, map[string]int64{}, map[string]int64{}
	unique := map[string]struct{}{}
	for date, bySlug := range tree.Visitors {
		if !inRange(date) {
			continue
		}
		for _, byHash := range bySlug {
			for hash, rec := range byHash {
				unique[hash] = struct{}{}
				devices[rec.Device]++
				referrers[rec.Referrer]++
				countries[rec.Country]++
			}
		}
	}

	if rng == models.RangeAll {
		pages = map[string]int64{}
		for key, n := range tree.Pages {
			pages[repository.SlugFromKey(key)] += n
		}
		devices, referrers, countries = tree.Devices, tree.Referrers, tree.Countries
	}

	summary := &models.AnalyticsSummary{
		Range:          rng,
		UniqueVisitors: int64(len(unique)),
		Pages:          sortedCounts(pages),
		Daily:          make([]models.DailyCount, 0, len(daily)),
		Devices:        sortedCounts(devices),
		Referrers:      sortedCounts(referrers),
		Countries:      sortedCounts(countries),
	}
	for _, c := range summary.Pages {
		summary.TotalViews += c.Count
	}
	for date, n := range daily {
		summary.Daily = append(summary.Daily, models.DailyCount{Date: date, Views: n})
	}
	sort.Slice(summary.Daily, func(i, j int) bool { return summary.Daily[i].Date < summary.Daily[j].Date })
	return summary, nil
}

func sortedCounts(m map[string]int64) []models.CountEntry {
	out := make([]models.CountEntry, 0, len(m))
	for k, n := range m {
		out = append(out, models.CountEntry{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

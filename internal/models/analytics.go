package models

import "time"

// AnalyticsRange selects the window of a summary.
type AnalyticsRange string

const (
	RangeToday AnalyticsRange = "today"
	Range7d    AnalyticsRange = "7d"
	Range30d   AnalyticsRange = "30d"
	RangeAll   AnalyticsRange = "all"
)

// Days returns how many daily buckets the range covers; zero means all.
func (r AnalyticsRange) Days() int {
	switch r {
	case RangeToday:
		return 1
	case Range7d:
		return 7
	case Range30d:
		return 30
	}
	return 0
}

// PageView is one tracked hit after the handler extracted request metadata.
type PageView struct {
	Slug      string
	Device    string
	Referrer  string
	IP        string
	Country   string
	Timestamp time.Time
}

// VisitorRecord marks the first hit of a visitor on a page for a day.
type VisitorRecord struct {
	Country  string `json:"country"`
	Device   string `json:"device"`
	Referrer string `json:"referrer"`
	At       int64  `json:"at"`
}

// AnalyticsTree mirrors the analytics/ subtree.
type AnalyticsTree struct {
	Visitors  map[string]map[string]map[string]VisitorRecord `json:"visitors,omitempty"`
	Pages     map[string]int64                               `json:"pages,omitempty"`
	Daily     map[string]map[string]int64                    `json:"daily,omitempty"`
	Devices   map[string]int64                               `json:"devices,omitempty"`
	Referrers map[string]int64                               `json:"referrers,omitempty"`
	Countries map[string]int64                               `json:"countries,omitempty"`
}

// Empty reports whether nothing has been tracked yet.
func (t *AnalyticsTree) Empty() bool {
	return t == nil || (len(t.Visitors) == 0 && len(t.Pages) == 0 && len(t.Daily) == 0 &&
		len(t.Devices) == 0 && len(t.Referrers) == 0 && len(t.Countries) == 0)
}

// CountEntry is one row of a flattened counter map.
type CountEntry struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// DailyCount is one day of the traffic series.
type DailyCount struct {
	Date  string `json:"date"`
	Views int64  `json:"views"`
}

// AnalyticsSummary is the flattened dashboard view.
type AnalyticsSummary struct {
	Range          AnalyticsRange `json:"range"`
	TotalViews     int64          `json:"totalViews"`
	UniqueVisitors int64          `json:"uniqueVisitors"`
	Pages          []CountEntry   `json:"pages"`
	Daily          []DailyCount   `json:"daily"`
	Devices        []CountEntry   `json:"devices"`
	Referrers      []CountEntry   `json:"referrers"`
	Countries      []CountEntry   `json:"countries"`
}

// DashboardOverview aggregates counts for the admin landing page.
type DashboardOverview struct {
	SEOPages       int                 `json:"seoPages"`
	BuilderPages   int                 `json:"builderPages"`
	PublishedPages int                 `json:"publishedPages"`
	DraftPages     int                 `json:"draftPages"`
	EventsByStatus map[EventStatus]int `json:"eventsByStatus"`
	TotalPageViews int64               `json:"totalPageViews"`
	TOTPEnabled    bool                `json:"totpEnabled"`
	GeneratedAt    time.Time           `json:"generatedAt"`
}

// SystemMetrics is a lightweight snapshot of process instrumentation.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	StoreOpCount             uint64    `json:"store_op_count"`
	StoreOpErrors            uint64    `json:"store_op_errors"`
	AverageStoreOpDurationMs float64   `json:"average_store_op_duration_ms"`
	TOTPVerifications        uint64    `json:"totp_verifications"`
	PageViewsCounted         uint64    `json:"page_views_counted"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}

package repository

import (
	"strings"

	"github.com/verluxstands/verlux-api/pkg/treestore"
)

// Tree roots.
const (
	SEOPagesRoot     = "seo_pages"
	PageBuilderRoot  = "page_builder"
	EventsRoot       = "events"
	TOTPSettingsRoot = "user_totp_settings"
	AnalyticsRoot    = "analytics"
)

// Analytics sub-trees.
const (
	analyticsVisitors  = "visitors"
	analyticsPages     = "pages"
	analyticsDaily     = "daily"
	analyticsDevices   = "devices"
	analyticsReferrers = "referrers"
	analyticsCountries = "countries"
)

// slugSeparator replaces "/" so nested slugs stay one leaf under their root.
const slugSeparator = "~"

// EncodeEmailForPath lowercases an email and replaces every "." with "_".
// Two distinct emails can collide ("a.b@x" and "a_b@x"); account emails are
// assumed not to rely on that difference.
func EncodeEmailForPath(email string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(email)), ".", "_")
}

// DecodeEmailFromPath reverses EncodeEmailForPath for display. It is lossy:
// any original "_" comes back as ".".
func DecodeEmailFromPath(key string) string {
	return strings.ReplaceAll(key, "_", ".")
}

// SlugKey maps a page slug to its single-segment key.
func SlugKey(slug string) string {
	return strings.ReplaceAll(strings.Trim(slug, "/"), "/", slugSeparator)
}

// SlugFromKey reverses SlugKey.
func SlugFromKey(key string) string {
	return strings.ReplaceAll(key, slugSeparator, "/")
}

func seoPagePath(slug string) string {
	return treestore.Join(SEOPagesRoot, SlugKey(slug))
}

func pageBuilderPath(slug string) string {
	return treestore.Join(PageBuilderRoot, SlugKey(slug))
}

func eventPath(id string) string {
	return treestore.Join(EventsRoot, id)
}

func totpSettingsPath(email string) string {
	return treestore.Join(TOTPSettingsRoot, EncodeEmailForPath(email))
}

func visitorPath(date, slug, ipHash string) string {
	return treestore.Join(AnalyticsRoot, analyticsVisitors, date, SlugKey(slug), ipHash)
}

func pageCounterPath(slug string) string {
	return treestore.Join(AnalyticsRoot, analyticsPages, SlugKey(slug))
}

func dailyCounterPath(date, slug string) string {
	return treestore.Join(AnalyticsRoot, analyticsDaily, date, SlugKey(slug))
}

func deviceCounterPath(device string) string {
	return treestore.Join(AnalyticsRoot, analyticsDevices, treestore.SafeKey(device))
}

func referrerCounterPath(referrer string) string {
	return treestore.Join(AnalyticsRoot, analyticsReferrers, treestore.SafeKey(referrer))
}

func countryCounterPath(country string) string {
	return treestore.Join(AnalyticsRoot, analyticsCountries, treestore.SafeKey(country))
}

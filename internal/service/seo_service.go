package service

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/verluxstands/verlux-api/internal/dto"
	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/internal/seed"
	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
)

const seoCachePrefix = "seo:"

type seoRepository interface {
	Get(ctx context.Context, slug string) (*models.SEOPage, error)
	List(ctx context.Context) ([]models.SEOPage, error)
	Exists(ctx context.Context, slug string) (bool, error)
	PutIfAbsent(ctx context.Context, page models.SEOPage) (bool, error)
	Update(ctx context.Context, slug string, fields map[string]interface{}) error
	Delete(ctx context.Context, slug string) error
}

// SEOConfig carries site identity used when rendering metadata.
type SEOConfig struct {
	SiteName string
	BaseURL  string
	CacheTTL time.Duration
}

// SEOService manages per-page metadata and derives head tags, JSON-LD and
// the sitemap from it.
type SEOService struct {
	repo      seoRepository
	cache     *CacheService
	cfg       SEOConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSEOService constructs the SEO service.
func NewSEOService(repo seoRepository, cache *CacheService, cfg SEOConfig, validate *validator.Validate, logger *zap.Logger) *SEOService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SiteName == "" {
		cfg.SiteName = "Verlux Stands"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	svc := &SEOService{repo: repo, cache: cache, cfg: cfg, validator: validate, logger: logger, now: time.Now}
	mustRegisterValidation(svc.validator, "schematype", func(fl validator.FieldLevel) bool {
		return models.SchemaType(fl.Field().String()).Valid()
	})
	return svc
}

// DefaultSEOPage returns the generic record for slug.
func DefaultSEOPage(slug, baseURL string) models.SEOPage {
	page := seed.Defaults()
	page.Slug = slug
	page.Canonical = canonicalURL(baseURL, slug)
	return page
}

func canonicalURL(baseURL, slug string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	if slug == "" || slug == "home" {
		return baseURL
	}
	return baseURL + "/" + slug
}

func normalizeSEOSlug(slug string) string {
	if slug == "/" {
		return "home"
	}
	slug = NormalizeSlug(slug)
	if slug == "" {
		return "home"
	}
	return slug
}

// Get returns the stored record for slug, falling back to the built-in
// record and then the generic defaults. Store failures fall back too.
func (s *SEOService) Get(ctx context.Context, slug string) (models.SEOPage, error) {
	if strings.HasPrefix(strings.TrimPrefix(slug, "/"), ".well-known") || strings.Contains(slug, ".") {
		return DefaultSEOPage(strings.TrimPrefix(slug, "/"), s.cfg.BaseURL), nil
	}
	slug = normalizeSEOSlug(slug)

	var cached models.SEOPage
	if hit, _ := s.cache.Get(ctx, seoCachePrefix+slug, &cached); hit {
		return cached, nil
	}

	page, err := s.repo.Get(ctx, slug)
	switch {
	case err == nil:
		_ = s.cache.Set(ctx, seoCachePrefix+slug, page, s.cfg.CacheTTL)
		return *page, nil
	case appErrors.Is(err, appErrors.ErrNotFound):
	default:
		s.logger.Warn("seo lookup failed, using defaults", zap.String("slug", slug), zap.Error(err))
	}

	if builtin, ok := seed.Find(slug, s.cfg.BaseURL); ok {
		return builtin, nil
	}
	return DefaultSEOPage(slug, s.cfg.BaseURL), nil
}

// List returns every stored record, or the built-in records when none are
// stored yet.
func (s *SEOService) List(ctx context.Context) ([]models.SEOPage, error) {
	pages, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return seed.Pages(s.cfg.BaseURL)
	}
	return pages, nil
}

// Indexable returns the records search engines may index.
func (s *SEOService) Indexable(ctx context.Context) ([]models.SEOPage, error) {
	pages, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := pages[:0:0]
	for _, p := range pages {
		if p.Index {
			out = append(out, p)
		}
	}
	return out, nil
}

// Create stores a new record; the slug must be free.
func (s *SEOService) Create(ctx context.Context, req dto.CreateSEOPageRequest) (*models.SEOPage, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid seo payload")
	}
	slug := normalizeSEOSlug(req.Slug)
	if strings.Contains(slug, ".") {
		return nil, appErrors.Clone(appErrors.ErrValidation, "slug may not contain '.'")
	}
	if strings.Contains(slug, slugKeySeparator) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "slug may not contain '~'")
	}
	if IsReservedSlug(slug) {
		return nil, appErrors.ErrReservedSlug
	}

	now := s.now().UTC()
	page := DefaultSEOPage(slug, s.cfg.BaseURL)
	ApplySEOInput(&page, req.SEOPageInput)
	page.CreatedAt, page.LastUpdated = &now, &now

	created, err := s.repo.PutIfAbsent(ctx, page)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, appErrors.Clone(appErrors.ErrConflict, "seo page already exists")
	}
	s.invalidate(ctx, slug)
	s.logger.Info("seo page created", zap.String("slug", slug))
	return &page, nil
}

// Update merges the sent fields into the record and stamps lastUpdated.
func (s *SEOService) Update(ctx context.Context, slug string, input dto.SEOPageInput) (*models.SEOPage, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid seo payload")
	}
	slug = normalizeSEOSlug(slug)
	exists, err := s.repo.Exists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "seo page not found")
	}

	fields := seoInputFields(input)
	fields["lastUpdated"] = s.now().UTC()
	if err := s.repo.Update(ctx, slug, fields); err != nil {
		return nil, err
	}
	s.invalidate(ctx, slug)
	return s.repo.Get(ctx, slug)
}

// Delete removes the record.
func (s *SEOService) Delete(ctx context.Context, slug string) error {
	slug = normalizeSEOSlug(slug)
	exists, err := s.repo.Exists(ctx, slug)
	if err != nil {
		return err
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "seo page not found")
	}
	if err := s.repo.Delete(ctx, slug); err != nil {
		return err
	}
	s.invalidate(ctx, slug)
	return nil
}

// SeedDefaults writes every built-in record whose slug is still free and
// returns how many were written.
func (s *SEOService) SeedDefaults(ctx context.Context) (int, error) {
	pages, err := seed.Pages(s.cfg.BaseURL)
	if err != nil {
		return 0, err
	}
	now := s.now().UTC()
	written := 0
	for _, p := range pages {
		p.CreatedAt, p.LastUpdated = &now, &now
		ok, err := s.repo.PutIfAbsent(ctx, p)
		if err != nil {
			return written, err
		}
		if ok {
			written++
		}
	}
	s.invalidate(ctx, "*")
	return written, nil
}

func (s *SEOService) invalidate(ctx context.Context, slug string) {
	if err := s.cache.Invalidate(ctx, seoCachePrefix+slug); err != nil {
		s.logger.Warn("seo cache invalidation failed", zap.String("slug", slug), zap.Error(err))
	}
}

// ApplySEOInput copies the sent fields onto page.
func ApplySEOInput(page *models.SEOPage, in dto.SEOPageInput) {
	if in.Title != nil {
		page.Title = *in.Title
	}
	if in.Description != nil {
		page.Description = *in.Description
	}
	if in.Keywords != nil {
		page.Keywords = append([]string(nil), (*in.Keywords)...)
	}
	if in.Canonical != nil {
		page.Canonical = *in.Canonical
	}
	if in.OGTitle != nil {
		page.OGTitle = *in.OGTitle
	}
	if in.OGDescription != nil {
		page.OGDescription = *in.OGDescription
	}
	if in.OGImage != nil {
		page.OGImage = *in.OGImage
	}
	if in.TwitterTitle != nil {
		page.TwitterTitle = *in.TwitterTitle
	}
	if in.TwitterDescription != nil {
		page.TwitterDescription = *in.TwitterDescription
	}
	if in.Index != nil {
		page.Index = *in.Index
	}
	if in.Follow != nil {
		page.Follow = *in.Follow
	}
	if in.SchemaType != nil {
		page.SchemaType = *in.SchemaType
	}
	if in.SchemaData != nil {
		page.SchemaData = in.SchemaData
	}
}

func seoInputFields(in dto.SEOPageInput) map[string]interface{} {
	fields := map[string]interface{}{}
	set := func(key string, ok bool, v interface{}) {
		if ok {
			fields[key] = v
		}
	}
	set("title", in.Title != nil, deref(in.Title))
	set("description", in.Description != nil, deref(in.Description))
	if in.Keywords != nil {
		fields["keywords"] = *in.Keywords
	}
	set("canonical", in.Canonical != nil, deref(in.Canonical))
	set("ogTitle", in.OGTitle != nil, deref(in.OGTitle))
	set("ogDescription", in.OGDescription != nil, deref(in.OGDescription))
	set("ogImage", in.OGImage != nil, deref(in.OGImage))
	set("twitterTitle", in.TwitterTitle != nil, deref(in.TwitterTitle))
	set("twitterDescription", in.TwitterDescription != nil, deref(in.TwitterDescription))
	if in.Index != nil {
		fields["index"] = *in.Index
	}
	if in.Follow != nil {
		fields["follow"] = *in.Follow
	}
	if in.SchemaType != nil {
		fields["schemaType"] = *in.SchemaType
	}
	if in.SchemaData != nil {
		fields["schemaData"] = in.SchemaData
	}
	return fields
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ValidateSEO scores a record: errors cost 20 points, warnings 2 to 5.
func ValidateSEO(page models.SEOPage) models.SEOValidation {
	res := models.SEOValidation{Errors: []string{}, Warnings: []string{}}
	score := 100
	warn := func(msg string, cost int) {
		res.Warnings = append(res.Warnings, msg)
		score -= cost
	}

	switch n := len([]rune(page.Title)); {
	case n == 0:
		res.Errors = append(res.Errors, "Title is required")
		score -= 20
	case n < 30:
		warn(fmt.Sprintf("Title is too short (%d/50-60 chars)", n), 5)
	case n > 60:
		warn(fmt.Sprintf("Title is too long (%d/50-60 chars)", n), 5)
	}

	switch n := len([]rune(page.Description)); {
	case n == 0:
		res.Errors = append(res.Errors, "Description is required")
		score -= 20
	case n < 120:
		warn(fmt.Sprintf("Description is too short (%d/150-160 chars)", n), 5)
	case n > 160:
		warn(fmt.Sprintf("Description is too long (%d/150-160 chars)", n), 5)
	}

	switch {
	case len(page.Keywords) == 0:
		warn("No keywords defined", 5)
	case len(page.Keywords) < 3:
		warn("Consider adding more keywords (recommended: 5-10)", 2)
	}
	if page.Canonical == "" {
		warn("No canonical URL defined", 5)
	}
	if page.OGTitle == "" {
		warn("OpenGraph title is missing", 3)
	}
	if page.OGDescription == "" {
		warn("OpenGraph description is missing", 3)
	}
	if page.OGImage == "" {
		warn("OpenGraph image is missing", 5)
	}
	if page.SchemaType == "" {
		warn("Schema type is not defined", 5)
	}

	if score < 0 {
		score = 0
	}
	res.Score = score
	res.Valid = len(res.Errors) == 0
	return res
}

// Metadata builds the head tags for a record.
func (s *SEOService) Metadata(page models.SEOPage) models.PageMetadata {
	canonical := page.Canonical
	if canonical == "" {
		canonical = canonicalURL(s.cfg.BaseURL, page.Slug)
	}
	title := page.Title
	ogTitle := firstNonEmpty(page.OGTitle, title)
	ogDesc := firstNonEmpty(page.OGDescription, page.Description)

	robots := "noindex"
	if page.Index {
		robots = "index"
	}
	if page.Follow {
		robots += ", follow"
	} else {
		robots += ", nofollow"
	}

	tags := []models.MetaTag{
		{Name: "description", Content: page.Description},
		{Name: "robots", Content: robots},
		{Property: "og:title", Content: ogTitle},
		{Property: "og:description", Content: ogDesc},
		{Property: "og:url", Content: canonical},
		{Property: "og:site_name", Content: s.cfg.SiteName},
		{Property: "og:type", Content: "website"},
		{Property: "og:locale", Content: "en_GB"},
		{Name: "twitter:card", Content: "summary_large_image"},
		{Name: "twitter:title", Content: firstNonEmpty(page.TwitterTitle, title)},
		{Name: "twitter:description", Content: firstNonEmpty(page.TwitterDescription, page.Description)},
	}
	if len(page.Keywords) > 0 {
		tags = append(tags, models.MetaTag{Name: "keywords", Content: strings.Join(page.Keywords, ", ")})
	}
	if page.OGImage != "" {
		image := s.absolute(page.OGImage)
		tags = append(tags,
			models.MetaTag{Property: "og:image", Content: image},
			models.MetaTag{Property: "og:image:alt", Content: ogTitle},
			models.MetaTag{Name: "twitter:image", Content: image},
		)
	}
	return models.PageMetadata{Title: title, Canonical: canonical, Robots: robots, Tags: tags}
}

// Schema builds the JSON-LD document for a record's schema type. Custom
// schemaData keys override the generated ones.
func (s *SEOService) Schema(page models.SEOPage) map[string]interface{} {
	base := s.cfg.BaseURL
	custom := page.SchemaData
	var doc map[string]interface{}

	switch page.SchemaType {
	case models.SchemaLocalBusiness:
		doc = map[string]interface{}{
			"@type":       "LocalBusiness",
			"@id":         base + "/#localbusiness",
			"name":        s.cfg.SiteName,
			"description": "Premium exhibition stand design and build company",
			"url":         base,
			"logo":        base + "/images/logo.png",
			"image":       base + "/images/hero-stand.jpg",
			"email":       "info@verluxstands.com",
			"address": map[string]interface{}{
				"@type":           "PostalAddress",
				"addressLocality": "London",
				"addressCountry":  "GB",
			},
		}
	case models.SchemaService:
		doc = map[string]interface{}{
			"@type":       "Service",
			"name":        schemaString(custom, "serviceName", "Exhibition Stand Design & Build"),
			"description": schemaString(custom, "serviceDescription", "Complete exhibition stand services including concept development, 3D design, custom fabrication, logistics and installation worldwide."),
			"provider":    map[string]interface{}{"@type": "Organization", "name": s.cfg.SiteName, "url": base},
			"areaServed":  map[string]interface{}{"@type": "Place", "name": "Worldwide"},
			"serviceType": "Exhibition Stand Services",
		}
	case models.SchemaProduct:
		doc = map[string]interface{}{
			"@type":       "Product",
			"name":        schemaString(custom, "productName", "Custom Exhibition Stand"),
			"description": schemaString(custom, "productDescription", "Bespoke exhibition stand designed and built to your specifications."),
			"brand":       map[string]interface{}{"@type": "Brand", "name": s.cfg.SiteName},
			"offers":      map[string]interface{}{"@type": "Offer", "priceCurrency": "GBP", "availability": "https://schema.org/InStock"},
		}
	case models.SchemaFAQPage:
		doc = map[string]interface{}{"@type": "FAQPage", "mainEntity": faqEntities(custom["faqs"])}
	case models.SchemaBreadcrumbList:
		doc = map[string]interface{}{"@type": "BreadcrumbList", "itemListElement": breadcrumbItems(custom["items"])}
	default:
		doc = map[string]interface{}{
			"@type": "Organization",
			"@id":   base + "/#organization",
			"name":  s.cfg.SiteName,
			"url":   base,
			"logo":  base + "/images/logo.png",
			"sameAs": []string{
				"https://www.linkedin.com/company/verluxstands",
				"https://www.instagram.com/verluxstands",
			},
		}
	}
	if page.SchemaType != models.SchemaFAQPage && page.SchemaType != models.SchemaBreadcrumbList {
		for k, v := range custom {
			doc[k] = v
		}
	}
	doc["@context"] = "https://schema.org"
	return doc
}

func faqEntities(raw interface{}) []map[string]interface{} {
	items, _ := raw.([]interface{})
	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, map[string]interface{}{
			"@type":          "Question",
			"name":           m["question"],
			"acceptedAnswer": map[string]interface{}{"@type": "Answer", "text": m["answer"]},
		})
	}
	return out
}

func breadcrumbItems(raw interface{}) []map[string]interface{} {
	items, _ := raw.([]interface{})
	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, map[string]interface{}{
			"@type":    "ListItem",
			"position": len(out) + 1,
			"name":     m["name"],
			"item":     m["url"],
		})
	}
	return out
}

func schemaString(data map[string]interface{}, key, fallback string) string {
	if v, ok := data[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (s *SEOService) absolute(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return s.cfg.BaseURL + "/" + strings.TrimPrefix(u, "/")
}

var staticSitemap = []struct {
	path     string
	freq     string
	priority float64
}{
	{"", "weekly", 1.0},
	{"services", "monthly", 0.9},
	{"portfolio", "weekly", 0.9},
	{"contact", "monthly", 0.9},
	{"about", "monthly", 0.8},
	{"testimonials", "monthly", 0.8},
	{"rental-vs-buying", "monthly", 0.7},
	{"trade-show-calendar", "weekly", 0.7},
	{"major-cities", "monthly", 0.7},
}

func sitemapPriority(slug string) float64 {
	switch slug {
	case "home":
		return 1.0
	case "services", "portfolio", "contact":
		return 0.9
	case "about", "testimonials":
		return 0.8
	}
	return 0.7
}

// Sitemap lists indexable pages. A static list is used when nothing is
// stored or the store fails.
func (s *SEOService) Sitemap(ctx context.Context) []models.SitemapEntry {
	now := s.now().UTC()
	pages, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn("sitemap falling back to static list", zap.Error(err))
	}
	var out []models.SitemapEntry
	for _, p := range pages {
		if !p.Index {
			continue
		}
		lastMod := now
		if p.LastUpdated != nil {
			lastMod = *p.LastUpdated
		}
		freq := "monthly"
		if p.Slug == "home" {
			freq = "weekly"
		}
		out = append(out, models.SitemapEntry{
			Loc:          canonicalURL(s.cfg.BaseURL, p.Slug),
			LastModified: lastMod,
			ChangeFreq:   freq,
			Priority:     sitemapPriority(p.Slug),
		})
	}
	if len(out) > 0 {
		return out
	}
	for _, st := range staticSitemap {
		out = append(out, models.SitemapEntry{
			Loc:          canonicalURL(s.cfg.BaseURL, st.path),
			LastModified: now,
			ChangeFreq:   st.freq,
			Priority:     st.priority,
		})
	}
	return out
}

type xmlURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// SitemapXML encodes entries in the sitemaps.org format.
func SitemapXML(entries []models.SitemapEntry) ([]byte, error) {
	set := xmlURLSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9", URLs: make([]xmlURL, 0, len(entries))}
	for _, e := range entries {
		set.URLs = append(set.URLs, xmlURL{
			Loc:        e.Loc,
			LastMod:    e.LastModified.UTC().Format(time.RFC3339),
			ChangeFreq: e.ChangeFreq,
			Priority:   fmt.Sprintf("%.1f", e.Priority),
		})
	}
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// Package seed holds the built-in SEO records for the static pages.
package seed

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/verluxstands/verlux-api/internal/models"
)

//go:embed seo_pages.yaml
var seoPagesYAML []byte

type seoFile struct {
	Defaults models.SEOPage   `yaml:"defaults"`
	Pages    []models.SEOPage `yaml:"pages"`
}

var (
	parseOnce sync.Once
	parsed    seoFile
	parseErr  error
)

func load() (seoFile, error) {
	parseOnce.Do(func() {
		parseErr = yaml.Unmarshal(seoPagesYAML, &parsed)
		if parseErr != nil {
			parseErr = fmt.Errorf("parse seo seed: %w", parseErr)
		}
	})
	return parsed, parseErr
}

// Defaults returns the generic SEO record used when a page has none.
func Defaults() models.SEOPage {
	f, err := load()
	if err != nil {
		return models.SEOPage{Index: true, Follow: true, SchemaType: models.SchemaOrganization}
	}
	d := f.Defaults
	d.Keywords = append([]string(nil), d.Keywords...)
	return d
}

// Pages returns the built-in records with relative canonical URLs resolved
// against baseURL.
func Pages(baseURL string) ([]models.SEOPage, error) {
	f, err := load()
	if err != nil {
		return nil, err
	}
	baseURL = strings.TrimRight(baseURL, "/")
	out := make([]models.SEOPage, len(f.Pages))
	for i, p := range f.Pages {
		p.Keywords = append([]string(nil), p.Keywords...)
		if strings.HasPrefix(p.Canonical, "/") {
			p.Canonical = strings.TrimRight(baseURL+p.Canonical, "/")
			if p.Canonical == "" {
				p.Canonical = baseURL
			}
		}
		out[i] = p
	}
	return out, nil
}

// Find returns the built-in record for slug.
func Find(slug, baseURL string) (models.SEOPage, bool) {
	pages, err := Pages(baseURL)
	if err != nil {
		return models.SEOPage{}, false
	}
	for _, p := range pages {
		if p.Slug == slug {
			return p, true
		}
	}
	return models.SEOPage{}, false
}

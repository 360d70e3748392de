package models

import "time"

// SchemaType selects the JSON-LD structured data emitted for a page.
type SchemaType string

const (
	SchemaLocalBusiness  SchemaType = "LocalBusiness"
	SchemaProduct        SchemaType = "Product"
	SchemaService        SchemaType = "Service"
	SchemaOrganization   SchemaType = "Organization"
	SchemaFAQPage        SchemaType = "FAQPage"
	SchemaBreadcrumbList SchemaType = "BreadcrumbList"
)

// Valid reports whether s is a supported schema type.
func (s SchemaType) Valid() bool {
	switch s {
	case SchemaLocalBusiness, SchemaProduct, SchemaService, SchemaOrganization, SchemaFAQPage, SchemaBreadcrumbList:
		return true
	}
	return false
}

// SEOPage is the record stored at seo_pages/{slug}.
type SEOPage struct {
	Slug               string                 `json:"slug" yaml:"slug"`
	Title              string                 `json:"title" yaml:"title"`
	Description        string                 `json:"description" yaml:"description"`
	Keywords           []string               `json:"keywords" yaml:"keywords"`
	Canonical          string                 `json:"canonical" yaml:"canonical"`
	OGTitle            string                 `json:"ogTitle" yaml:"ogTitle"`
	OGDescription      string                 `json:"ogDescription" yaml:"ogDescription"`
	OGImage            string                 `json:"ogImage" yaml:"ogImage"`
	TwitterTitle       string                 `json:"twitterTitle" yaml:"twitterTitle"`
	TwitterDescription string                 `json:"twitterDescription" yaml:"twitterDescription"`
	Index              bool                   `json:"index" yaml:"index"`
	Follow             bool                   `json:"follow" yaml:"follow"`
	SchemaType         SchemaType             `json:"schemaType" yaml:"schemaType"`
	SchemaData         map[string]interface{} `json:"schemaData,omitempty" yaml:"schemaData"`
	LastUpdated        *time.Time             `json:"lastUpdated,omitempty" yaml:"-"`
	CreatedAt          *time.Time             `json:"createdAt,omitempty" yaml:"-"`
}

// SEOValidation scores how complete a page's metadata is.
type SEOValidation struct {
	Valid    bool     `json:"valid"`
	Score    int      `json:"score"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// MetaTag is one rendered head entry.
type MetaTag struct {
	Name     string `json:"name,omitempty"`
	Property string `json:"property,omitempty"`
	Content  string `json:"content"`
}

// PageMetadata is everything the public renderer puts in <head>.
type PageMetadata struct {
	Title     string    `json:"title"`
	Canonical string    `json:"canonical,omitempty"`
	Robots    string    `json:"robots"`
	Tags      []MetaTag `json:"tags"`
}

// SitemapEntry is one <url> element.
type SitemapEntry struct {
	Loc          string
	LastModified time.Time
	ChangeFreq   string
	Priority     float64
}

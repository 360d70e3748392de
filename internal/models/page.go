package models

import "time"

// PageLayout is the page-level template.
type PageLayout string

const (
	LayoutLanding PageLayout = "landing"
	LayoutService PageLayout = "service"
	LayoutCity    PageLayout = "city"
	LayoutBlog    PageLayout = "blog"
	LayoutCustom  PageLayout = "custom"
)

// Valid reports whether l is a known layout.
func (l PageLayout) Valid() bool {
	switch l {
	case LayoutLanding, LayoutService, LayoutCity, LayoutBlog, LayoutCustom:
		return true
	}
	return false
}

// PageComponent is one section placed on a builder page. Order is dense and
// zero-based after every mutation.
type PageComponent struct {
	ID    string                 `json:"id"`
	Type  string                 `json:"type"`
	Order int                    `json:"order"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// PageConfig is the builder record stored at page_builder/{slug}.
type PageConfig struct {
	Slug        string          `json:"slug"`
	Layout      PageLayout      `json:"layout"`
	Components  []PageComponent `json:"components"`
	IsPublished bool            `json:"isPublished"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

// RenderedSection is the HTML of one component.
type RenderedSection struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	HTML string `json:"html"`
}

// RenderedPage is a resolved page ready for output.
type RenderedPage struct {
	Slug     string            `json:"slug"`
	Layout   PageLayout        `json:"layout"`
	Sections []RenderedSection `json:"sections"`
}

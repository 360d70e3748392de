package dto

import "github.com/verluxstands/verlux-api/internal/models"

// CreatePageRequest creates a builder page together with its SEO record.
type CreatePageRequest struct {
	Slug        string            `json:"slug" validate:"required,max=200"`
	Layout      models.PageLayout `json:"layout" validate:"omitempty,pagelayout"`
	Sections    []string          `json:"sections" validate:"omitempty,dive,sectionkind"`
	IsPublished *bool             `json:"isPublished"`
	SEO         *SEOPageInput     `json:"seo"`
}

// SavePageRequest is a partial update of a builder page. Nil fields are left
// untouched in the store.
type SavePageRequest struct {
	Components  *[]models.PageComponent `json:"components"`
	Layout      *models.PageLayout      `json:"layout" validate:"omitempty,pagelayout"`
	IsPublished *bool                   `json:"isPublished"`
}

// ReorderRequest moves Source to the position of Target.
type ReorderRequest struct {
	SourceID string `json:"sourceId" validate:"required"`
	TargetID string `json:"targetId" validate:"required"`
}

// AddSectionRequest appends a section of the given kind.
type AddSectionRequest struct {
	Type  string                 `json:"type" validate:"required,sectionkind"`
	Props map[string]interface{} `json:"props"`
}

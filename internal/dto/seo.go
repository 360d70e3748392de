package dto

import "github.com/verluxstands/verlux-api/internal/models"

// SEOPageInput carries the editable SEO fields. Pointer fields distinguish
// "not sent" from zero values on partial updates.
type SEOPageInput struct {
	Title              *string                `json:"title" validate:"omitempty,max=200"`
	Description        *string                `json:"description" validate:"omitempty,max=500"`
	Keywords           *[]string              `json:"keywords"`
	Canonical          *string                `json:"canonical" validate:"omitempty,url"`
	OGTitle            *string                `json:"ogTitle"`
	OGDescription      *string                `json:"ogDescription"`
	OGImage            *string                `json:"ogImage"`
	TwitterTitle       *string                `json:"twitterTitle"`
	TwitterDescription *string                `json:"twitterDescription"`
	Index              *bool                  `json:"index"`
	Follow             *bool                  `json:"follow"`
	SchemaType         *models.SchemaType     `json:"schemaType" validate:"omitempty,schematype"`
	SchemaData         map[string]interface{} `json:"schemaData"`
}

// CreateSEOPageRequest creates a new SEO record.
type CreateSEOPageRequest struct {
	Slug string `json:"slug" validate:"required,max=200"`
	SEOPageInput
}

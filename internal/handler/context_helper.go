package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/verluxstands/verlux-api/internal/middleware"
	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/internal/repository"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims, ok := middleware.Claims(c)
	if !ok {
		return nil
	}
	return claims
}

func requestMeta(c *gin.Context) models.RequestMeta {
	return models.RequestMeta{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
}

// slugParam reads the slug route param. Nested slugs travel with "~" in
// place of "/" so they fit a single path segment.
func slugParam(c *gin.Context) string {
	return repository.SlugFromKey(strings.Trim(c.Param("slug"), "/"))
}

// pathSlugParam reads a catch-all slug as the literal request path.
func pathSlugParam(c *gin.Context) string {
	return strings.Trim(c.Param("slug"), "/")
}

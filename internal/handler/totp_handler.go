package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/verluxstands/verlux-api/internal/dto"
	"github.com/verluxstands/verlux-api/internal/models"
	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
	"github.com/verluxstands/verlux-api/pkg/response"
)

type totpGenerator interface {
	GenerateSecret(email string) (*models.TOTPSetup, error)
	Verify(ctx context.Context, secret, code, email string) bool
}

type totpSettingsService interface {
	Enable(ctx context.Context, email, secret, code string) error
	Disable(ctx context.Context, email string) error
	Status(ctx context.Context, email string) (*models.TOTPStatus, error)
}

// TOTPHandler serves the authenticator enrolment endpoints. Bodies are
// flat JSON rather than the envelope.
type TOTPHandler struct {
	totp     totpGenerator
	settings totpSettingsService
}

// NewTOTPHandler constructs the handler.
func NewTOTPHandler(totp totpGenerator, settings totpSettingsService) *TOTPHandler {
	return &TOTPHandler{totp: totp, settings: settings}
}

// Setup godoc
// @Summary Generate a TOTP secret and QR code
// @Tags TOTP
// @Produce json
// @Param payload body dto.TOTPVerifyRequest false "Only email is read"
// @Success 200 {object} models.TOTPSetup
// @Router /totp/setup [post]
func (h *TOTPHandler) Setup(c *gin.Context) {
	var req dto.TOTPVerifyRequest
	_ = c.ShouldBindJSON(&req)
	email, err := targetEmail(c, req.Email)
	if err != nil {
		response.PlainError(c, err)
		return
	}
	setup, err := h.totp.GenerateSecret(email)
	if err != nil {
		response.PlainError(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to generate TOTP secret"))
		return
	}
	response.Plain(c, http.StatusOK, setup)
}

// Settings godoc
// @Summary Read TOTP status
// @Tags TOTP
// @Produce json
// @Param email query string false "Account email, defaults to the caller"
// @Success 200 {object} models.TOTPStatus
// @Router /totp/settings [get]
func (h *TOTPHandler) Settings(c *gin.Context) {
	email, err := targetEmail(c, c.Query("email"))
	if err != nil {
		response.PlainError(c, err)
		return
	}
	status, err := h.settings.Status(c.Request.Context(), email)
	if err != nil {
		response.PlainError(c, err)
		return
	}
	response.Plain(c, http.StatusOK, status)
}

// UpdateSettings godoc
// @Summary Enable or disable TOTP
// @Description action "enable" re-verifies code against secret before storing it; action "disable" drops the secret.
// @Tags TOTP
// @Accept json
// @Produce json
// @Param payload body dto.TOTPSettingsRequest true "Settings change"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /totp/settings [post]
func (h *TOTPHandler) UpdateSettings(c *gin.Context) {
	var req dto.TOTPSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Plain(c, http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	email, err := targetEmail(c, req.Email)
	if err != nil {
		response.PlainError(c, err)
		return
	}

	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "enable":
		err = h.settings.Enable(c.Request.Context(), email, req.Secret, req.Code)
	case "disable":
		err = h.settings.Disable(c.Request.Context(), email)
	default:
		response.Plain(c, http.StatusBadRequest, gin.H{"error": "Invalid action"})
		return
	}
	if err != nil {
		response.PlainError(c, err)
		return
	}
	response.Plain(c, http.StatusOK, gin.H{"success": true})
}

// Verify godoc
// @Summary Check a TOTP code against a secret
// @Tags TOTP
// @Accept json
// @Produce json
// @Param payload body dto.TOTPVerifyRequest true "Secret, code and email"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /totp/verify [post]
func (h *TOTPHandler) Verify(c *gin.Context) {
	var req dto.TOTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Secret == "" || req.Code == "" || req.Email == "" {
		response.Plain(c, http.StatusBadRequest, gin.H{"error": "Secret, code, and email are required"})
		return
	}
	valid := h.totp.Verify(c.Request.Context(), req.Secret, req.Code, req.Email)
	response.Plain(c, http.StatusOK, gin.H{"valid": valid})
}

// targetEmail resolves the account a TOTP call acts on. Only SUPERADMIN may
// act on an account other than their own.
func targetEmail(c *gin.Context, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	claims := claimsFromContext(c)
	if claims == nil {
		if requested == "" {
			return "", appErrors.ErrMissingEmail
		}
		return requested, nil
	}
	if requested == "" || strings.EqualFold(requested, claims.Email) {
		if claims.Email == "" {
			return "", appErrors.ErrMissingEmail
		}
		return claims.Email, nil
	}
	if claims.Role != models.RoleSuperAdmin {
		return "", appErrors.Clone(appErrors.ErrForbidden, "cannot change another account's two-factor settings")
	}
	return requested, nil
}

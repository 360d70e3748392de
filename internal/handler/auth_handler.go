package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/verluxstands/verlux-api/internal/dto"
	"github.com/verluxstands/verlux-api/internal/models"
	"github.com/verluxstands/verlux-api/internal/service"
	appErrors "github.com/verluxstands/verlux-api/pkg/errors"
	"github.com/verluxstands/verlux-api/pkg/response"
)

type credentialService interface {
	SignOut(ctx context.Context, sessionID, userID string, meta models.RequestMeta) error
	Refresh(ctx context.Context, req models.RefreshTokenRequest) (*models.ProviderSession, error)
	ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error
}

type loginSessions interface {
	Lookup(req *http.Request) (*service.LoginSession, bool)
	Acquire(w http.ResponseWriter, req *http.Request) (*service.LoginSession, error)
	Release(ctx context.Context, w http.ResponseWriter, req *http.Request)
}

// AuthHandler exposes the two-step browser login flow and token endpoints.
type AuthHandler struct {
	credentials credentialService
	sessions    loginSessions
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(credentials credentialService, sessions loginSessions) *AuthHandler {
	return &AuthHandler{credentials: credentials, sessions: sessions}
}

// Login godoc
// @Summary Start a login
// @Description Checks email and password. When two-factor authentication is enabled the response carries state TOTP_REQUIRED and no tokens.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	login, err := h.sessions.Acquire(c.Writer, c.Request)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open login session"))
		return
	}

	status, err := login.SignIn(c.Request.Context(), req.Email, req.Password, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// SubmitTOTP godoc
// @Summary Complete a login with a TOTP code
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.TOTPSubmitRequest true "Six digit code"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /auth/totp [post]
func (h *AuthHandler) SubmitTOTP(c *gin.Context) {
	var req dto.TOTPSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	login, ok := h.sessions.Lookup(c.Request)
	if !ok {
		response.Error(c, appErrors.ErrInvalidState)
		return
	}

	status, err := login.SubmitTOTP(c.Request.Context(), req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// CancelLogin godoc
// @Summary Abandon an outstanding TOTP challenge
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/login/cancel [post]
func (h *AuthHandler) CancelLogin(c *gin.Context) {
	login, ok := h.sessions.Lookup(c.Request)
	if !ok {
		response.JSON(c, http.StatusOK, models.LoginStatus{State: models.LoginAnonymous}, nil)
		return
	}
	response.JSON(c, http.StatusOK, login.Abandon(), nil)
}

// Session godoc
// @Summary Current browser login state
// @Description Reports ANONYMOUS when the provider session behind an AUTHENTICATED login has been revoked.
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	login, ok := h.sessions.Lookup(c.Request)
	if !ok {
		response.JSON(c, http.StatusOK, models.LoginStatus{State: models.LoginAnonymous}, nil)
		return
	}
	status := login.Status()
	if status.State == models.LoginAuthenticated && login.CurrentUser(c.Request.Context()) == nil {
		h.sessions.Release(c.Request.Context(), c.Writer, c.Request)
		status = models.LoginStatus{State: models.LoginAnonymous}
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// Refresh godoc
// @Summary Refresh access token
// @Description Exchange refresh token for new access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.RefreshTokenRequest true "Refresh payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid refresh payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	res, err := h.credentials.Refresh(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Logout godoc
// @Summary Logout current session
// @Description Revokes the session behind the access token and clears the login cookie.
// @Tags Authentication
// @Produce json
// @Success 204 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	ctx := c.Request.Context()
	meta := requestMeta(c)
	var err error
	if login, ok := h.sessions.Lookup(c.Request); ok && ownsSession(login, claims.SessionID) {
		err = login.SignOut(ctx, meta)
	} else {
		err = h.credentials.SignOut(ctx, claims.SessionID, claims.UserID, meta)
	}
	h.sessions.Release(ctx, c.Writer, c.Request)

	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ChangePassword godoc
// @Summary Change password
// @Description Change password for current user. Every session of the user is revoked.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.ChangePasswordRequest true "Change password"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.credentials.ChangePassword(c.Request.Context(), claims.UserID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Me godoc
// @Summary Get current user
// @Description Returns the authenticated user's info
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, models.UserInfo{
		ID:       claims.UserID,
		Email:    claims.Email,
		FullName: claims.FullName,
		Role:     claims.Role,
	}, nil)
}

func ownsSession(login *service.LoginSession, sessionID string) bool {
	session := login.ProviderSession()
	return session != nil && session.SessionID == sessionID
}

// Package handlers contains HTTP request handlers for the auth service.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/metrics"
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/middleware"
	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	authService service.AuthService
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService, m *metrics.Metrics, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		metrics:     m,
		logger:      logger,
	}
}

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest represents the JSON login request payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenRequest represents the form-encoded login payload. Username carries
// the email address.
type TokenRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// Register godoc
// @Summary Register a user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account details"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.Observe(metrics.OpRegister, metrics.OutcomeInvalid)
		h.respondInvalidRequest(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrEmailTaken):
		h.metrics.Observe(metrics.OpRegister, metrics.OutcomeConflict)
		respondError(c, http.StatusBadRequest, service.ErrEmailTaken.Error())
		return
	case errors.Is(err, service.ErrValidation):
		h.metrics.Observe(metrics.OpRegister, metrics.OutcomeInvalid)
		respondError(c, http.StatusBadRequest, err.Error())
		return
	default:
		h.metrics.Observe(metrics.OpRegister, metrics.OutcomeError)
		h.logAndRespondError(c, http.StatusInternalServerError, err, "internal server error")
		return
	}

	h.metrics.Observe(metrics.OpRegister, metrics.OutcomeSuccess)
	c.JSON(http.StatusCreated, user)
}

// Token godoc
// @Summary Form login
// @Description OAuth2 password-style login. username carries the email.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} service.LoginResponse
// @Failure 401 {object} map[string]string
// @Router /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		h.metrics.Observe(metrics.OpLogin, metrics.OutcomeInvalid)
		h.respondInvalidRequest(c, err)
		return
	}
	h.login(c, req.Username, req.Password)
}

// Login godoc
// @Summary JSON login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} service.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.Observe(metrics.OpLogin, metrics.OutcomeInvalid)
		h.respondInvalidRequest(c, err)
		return
	}
	h.login(c, req.Email, req.Password)
}

func (h *AuthHandler) login(c *gin.Context, email, password string) {
	response, err := h.authService.Login(c.Request.Context(), email, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.ErrorContext(c.Request.Context(), "login failed", "error", err)
		}
		h.metrics.Observe(metrics.OpLogin, metrics.OutcomeFailure)
		middleware.AbortUnauthenticated(c)
		return
	}

	h.metrics.Observe(metrics.OpLogin, metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, response)
}

// Me godoc
// @Summary Current identity
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.AbortUnauthenticated(c)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout godoc
// @Summary User logout
// @Description Tokens are stateless; unless revocation is enabled the token stays valid until it expires.
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		middleware.AbortUnauthenticated(c)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.metrics.Observe(metrics.OpLogout, metrics.OutcomeError)
		h.logAndRespondError(c, http.StatusInternalServerError, err, "logout failed")
		return
	}

	h.metrics.Observe(metrics.OpLogout, metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
}

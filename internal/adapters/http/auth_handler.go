package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/habitboard/core/internal/infrastructure/logger"
	"github.com/habitboard/core/internal/ports"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService ports.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService ports.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		h.logger.Warn("Registration failed", "error", err, "username", req.Username)
		return toHTTPError(err)
	}

	return OK(c, http.StatusCreated, user)
}

// Login handles user login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		h.logger.Warn("Login failed", "username", req.Username)
		return toHTTPError(err)
	}

	return OK(c, http.StatusOK, response)
}

// Me returns the authenticated user's record.
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.authService.GetUser(c.Request().Context(), currentUserID(c))
	if err != nil {
		return toHTTPError(err)
	}

	return OK(c, http.StatusOK, user)
}

// Logout acknowledges a logout. Tokens are self-contained and expire on
// their own; the client discards its copy.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.logger.Info("User logged out", "user_id", currentUserID(c))
	return c.NoContent(http.StatusNoContent)
}

package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/habitboard/core/internal/infrastructure/logger"
	"github.com/habitboard/core/internal/ports"
)

// NotificationHandler handles notification-related requests
type NotificationHandler struct {
	notificationService ports.NotificationService
	logger              *logger.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService ports.NotificationService, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// List returns the undismissed notifications of one board.
func (h *NotificationHandler) List(c echo.Context) error {
	notifications, err := h.notificationService.List(c.Request().Context(), currentUserID(c), c.Param("boardId"))
	if err != nil {
		return toHTTPError(err)
	}

	return OK(c, http.StatusOK, notifications)
}

// Create handles notification creation
func (h *NotificationHandler) Create(c echo.Context) error {
	var req ports.CreateNotificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	notification, err := h.notificationService.Create(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return toHTTPError(err)
	}

	return OK(c, http.StatusCreated, notification)
}

// Dismiss marks a notification dismissed.
func (h *NotificationHandler) Dismiss(c echo.Context) error {
	notification, err := h.notificationService.Dismiss(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	return OK(c, http.StatusOK, notification)
}

// Delete removes a notification by bare id.
func (h *NotificationHandler) Delete(c echo.Context) error {
	if err := h.notificationService.Delete(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

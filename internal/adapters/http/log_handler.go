package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/habitboard/core/internal/infrastructure/logger"
	"github.com/habitboard/core/internal/ports"
)

// LogHandler handles log-related requests
type LogHandler struct {
	logService ports.LogService
	logger     *logger.Logger
}

// NewLogHandler creates a new log handler
func NewLogHandler(logService ports.LogService, logger *logger.Logger) *LogHandler {
	return &LogHandler{
		logService: logService,
		logger:     logger,
	}
}

// List returns all logs of one board owned by the caller.
func (h *LogHandler) List(c echo.Context) error {
	logs, err := h.logService.List(c.Request().Context(), currentUserID(c), c.Param("boardId"))
	if err != nil {
		return toHTTPError(err)
	}

	return OK(c, http.StatusOK, logs)
}

// GetByDate returns the log of one (board, date) pair.
func (h *LogHandler) GetByDate(c echo.Context) error {
	log, err := h.logService.GetByDate(c.Request().Context(), currentUserID(c), c.Param("boardId"), c.Param("date"))
	if err != nil {
		return toHTTPError(err)
	}

	return OK(c, http.StatusOK, log)
}

// Create records actions against a board. Posting to an already-logged date
// appends; the status code tells the caller which happened (201 create,
// 200 append).
func (h *LogHandler) Create(c echo.Context) error {
	var req ports.CreateLogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	log, created, err := h.logService.CreateOrAppend(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return toHTTPError(err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return OK(c, status, log)
}

// Delete removes a log by bare id.
func (h *LogHandler) Delete(c echo.Context) error {
	if err := h.logService.Delete(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

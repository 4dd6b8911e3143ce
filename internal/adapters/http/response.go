// Package http contains the echo handlers and the response envelope.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/habitboard/core/internal/domain/entities"
)

// Response is the wire envelope. Success responses carry data; error
// responses carry a message and success=false.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK writes a success envelope with the given status.
func OK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Response{Success: true, Data: data})
}

// ErrorEnvelope builds the error form of the envelope. The server's error
// handler uses it to render every failure uniformly.
func ErrorEnvelope(message string) Response {
	return Response{Success: false, Error: message}
}

// toHTTPError maps domain errors onto HTTP errors. Not-owned entities
// deliberately map to 404 like absent ones, so existence never leaks to
// non-owners. Anything unmapped becomes a 500 with the cause attached for
// server-side logging.
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, entities.ErrUsernameTaken):
		return echo.NewHTTPError(http.StatusConflict, "username already taken")
	case errors.Is(err, entities.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, entities.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	case errors.Is(err, entities.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	case errors.Is(err, entities.ErrBoardNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "board not found")
	case errors.Is(err, entities.ErrLogNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "log not found")
	case errors.Is(err, entities.ErrNotificationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "notification not found")
	case errors.Is(err, entities.ErrInvalidDate),
		errors.Is(err, entities.ErrInvalidVisibility),
		errors.Is(err, entities.ErrInvalidSchedule),
		errors.Is(err, entities.ErrInvalidActionType):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
	}
}

// currentUserID extracts the authenticated user's id from the request
// context. The auth middleware guarantees it is set on protected routes.
func currentUserID(c echo.Context) string {
	userID, _ := c.Get("user_id").(string)
	return userID
}

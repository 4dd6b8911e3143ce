package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/habitboard/core/internal/infrastructure/logger"
	"github.com/habitboard/core/internal/ports"
)

// BoardHandler handles board-related requests
type BoardHandler struct {
	boardService ports.BoardService
	logger       *logger.Logger
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(boardService ports.BoardService, logger *logger.Logger) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
		logger:       logger,
	}
}

// List returns all boards owned by the caller.
func (h *BoardHandler) List(c echo.Context) error {
	boards, err := h.boardService.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		return toHTTPError(err)
	}

	return OK(c, http.StatusOK, boards)
}

// Get returns one board owned by the caller.
func (h *BoardHandler) Get(c echo.Context) error {
	board, err := h.boardService.Get(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	return OK(c, http.StatusOK, board)
}

// Create handles board creation
func (h *BoardHandler) Create(c echo.Context) error {
	var req ports.CreateBoardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	board, err := h.boardService.Create(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return toHTTPError(err)
	}

	return OK(c, http.StatusCreated, board)
}

// Update handles partial board updates
func (h *BoardHandler) Update(c echo.Context) error {
	var req ports.UpdateBoardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	board, err := h.boardService.Update(c.Request().Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		return toHTTPError(err)
	}

	return OK(c, http.StatusOK, board)
}

// Delete removes a board and everything under it.
func (h *BoardHandler) Delete(c echo.Context) error {
	if err := h.boardService.Delete(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetPublic serves the unauthenticated read path for public boards.
func (h *BoardHandler) GetPublic(c echo.Context) error {
	board, err := h.boardService.GetPublic(c.Request().Context(), c.Param("boardId"))
	if err != nil {
		return toHTTPError(err)
	}

	return OK(c, http.StatusOK, board)
}

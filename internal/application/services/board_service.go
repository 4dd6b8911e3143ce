package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/habitboard/core/internal/domain/entities"
	"github.com/habitboard/core/internal/infrastructure/logger"
	"github.com/habitboard/core/internal/ports"
)

// BoardService handles owner-scoped board operations plus the anonymous
// public lookup.
type BoardService struct {
	boardRepo        ports.BoardRepository
	logRepo          ports.LogRepository
	notificationRepo ports.NotificationRepository
	logger           *logger.Logger
}

// NewBoardService creates a new board service
func NewBoardService(boardRepo ports.BoardRepository, logRepo ports.LogRepository, notificationRepo ports.NotificationRepository, logger *logger.Logger) *BoardService {
	return &BoardService{
		boardRepo:        boardRepo,
		logRepo:          logRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Create stores a new board owned by ownerID. Missing fields fall back to
// a private daily board resetting at midnight.
func (s *BoardService) Create(ctx context.Context, ownerID string, req ports.CreateBoardRequest) (*entities.Board, error) {
	now := time.Now().UTC()
	board := &entities.Board{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Title:        req.Title,
		MarkdownBody: req.MarkdownBody,
		Visibility:   entities.VisibilityPrivate,
		Schedule:     entities.ScheduleDaily,
		ResetTime:    "00:00",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Visibility != "" {
		board.Visibility = entities.Visibility(req.Visibility)
	}
	if req.Schedule != "" {
		board.Schedule = entities.Schedule(req.Schedule)
	}
	if req.ResetTime != "" {
		board.ResetTime = req.ResetTime
	}

	if err := s.boardRepo.Put(ctx, board); err != nil {
		return nil, err
	}

	s.logger.Info("Board created", "board_id", board.ID, "owner_id", ownerID)
	return board, nil
}

// Get fetches a board within the caller's owner scope.
func (s *BoardService) Get(ctx context.Context, ownerID, boardID string) (*entities.Board, error) {
	return s.boardRepo.Get(ctx, ownerID, boardID)
}

// List returns all boards owned by ownerID.
func (s *BoardService) List(ctx context.Context, ownerID string) ([]*entities.Board, error) {
	return s.boardRepo.ListByOwner(ctx, ownerID)
}

// Update merges the non-nil fields of req into the stored board and
// replaces the stored value wholesale. UpdatedAt is bumped; CreatedAt is
// preserved.
func (s *BoardService) Update(ctx context.Context, ownerID, boardID string, req ports.UpdateBoardRequest) (*entities.Board, error) {
	board, err := s.boardRepo.Get(ctx, ownerID, boardID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		board.Title = *req.Title
	}
	if req.MarkdownBody != nil {
		board.MarkdownBody = *req.MarkdownBody
	}
	if req.Visibility != nil {
		board.Visibility = entities.Visibility(*req.Visibility)
	}
	if req.Schedule != nil {
		board.Schedule = entities.Schedule(*req.Schedule)
	}
	if req.ResetTime != nil {
		board.ResetTime = *req.ResetTime
	}
	board.UpdatedAt = time.Now().UTC()

	if err := s.boardRepo.Put(ctx, board); err != nil {
		return nil, err
	}

	s.logger.Info("Board updated", "board_id", board.ID, "owner_id", ownerID)
	return board, nil
}

// Delete removes a board and cascades over its logs and notifications. The
// cascade is best-effort: the store offers no multi-key atomicity, so a
// fault mid-way can leave orphaned rows behind.
func (s *BoardService) Delete(ctx context.Context, ownerID, boardID string) error {
	if _, err := s.boardRepo.Get(ctx, ownerID, boardID); err != nil {
		return err
	}

	if err := s.logRepo.DeleteAllByBoard(ctx, boardID); err != nil {
		return err
	}
	if err := s.notificationRepo.DeleteAllByBoard(ctx, boardID); err != nil {
		return err
	}
	if err := s.boardRepo.Delete(ctx, ownerID, boardID); err != nil {
		return err
	}

	s.logger.Info("Board deleted", "board_id", boardID, "owner_id", ownerID)
	return nil
}

// GetPublic serves the anonymous read path. Only boards whose visibility is
// public are reachable; private boards report not found.
func (s *BoardService) GetPublic(ctx context.Context, boardID string) (*entities.Board, error) {
	return s.boardRepo.GetPublic(ctx, boardID)
}

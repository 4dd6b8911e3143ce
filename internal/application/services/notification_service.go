package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/habitboard/core/internal/domain/entities"
	"github.com/habitboard/core/internal/infrastructure/logger"
	"github.com/habitboard/core/internal/ports"
)

// NotificationService handles board notifications.
type NotificationService struct {
	notificationRepo ports.NotificationRepository
	boardRepo        ports.BoardRepository
	logger           *logger.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo ports.NotificationRepository, boardRepo ports.BoardRepository, logger *logger.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		boardRepo:        boardRepo,
		logger:           logger,
	}
}

// List returns the board's undismissed notifications.
func (s *NotificationService) List(ctx context.Context, ownerID, boardID string) ([]*entities.Notification, error) {
	if _, err := s.boardRepo.Get(ctx, ownerID, boardID); err != nil {
		return nil, err
	}

	all, err := s.notificationRepo.ListByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	active := []*entities.Notification{}
	for _, n := range all {
		if !n.Dismissed {
			active = append(active, n)
		}
	}
	return active, nil
}

// Create stores a new notification on a board owned by ownerID. The
// notification inherits the board's owner.
func (s *NotificationService) Create(ctx context.Context, ownerID string, req ports.CreateNotificationRequest) (*entities.Notification, error) {
	board, err := s.boardRepo.Get(ctx, ownerID, req.BoardID)
	if err != nil {
		return nil, err
	}

	notification := &entities.Notification{
		ID:      uuid.NewString(),
		BoardID: board.ID,
		OwnerID: board.OwnerID,
		Message: req.Message,
		Time:    time.Now().UTC(),
	}
	if req.Time != nil {
		notification.Time = req.Time.UTC()
	}

	if err := s.notificationRepo.Put(ctx, notification); err != nil {
		return nil, err
	}

	s.logger.Info("Notification created", "notification_id", notification.ID, "board_id", board.ID)
	return notification, nil
}

// Dismiss marks a notification dismissed and rewrites the stored value.
func (s *NotificationService) Dismiss(ctx context.Context, ownerID, notificationID string) (*entities.Notification, error) {
	notification, err := s.notificationRepo.FindByID(ctx, ownerID, notificationID)
	if err != nil {
		return nil, err
	}

	notification.Dismissed = true
	if err := s.notificationRepo.Put(ctx, notification); err != nil {
		return nil, err
	}

	s.logger.Info("Notification dismissed", "notification_id", notificationID, "owner_id", ownerID)
	return notification, nil
}

// Delete removes a notification by bare id within the caller's ownership.
func (s *NotificationService) Delete(ctx context.Context, ownerID, notificationID string) error {
	if err := s.notificationRepo.DeleteByID(ctx, ownerID, notificationID); err != nil {
		return err
	}

	s.logger.Info("Notification deleted", "notification_id", notificationID, "owner_id", ownerID)
	return nil
}

package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/habitboard/core/internal/domain/entities"
	"github.com/habitboard/core/internal/infrastructure/logger"
	"github.com/habitboard/core/internal/ports"
)

// LogService handles per-date action logs. Every board-scoped operation
// verifies board ownership before touching log rows.
type LogService struct {
	logRepo   ports.LogRepository
	boardRepo ports.BoardRepository
	logger    *logger.Logger
}

// NewLogService creates a new log service
func NewLogService(logRepo ports.LogRepository, boardRepo ports.BoardRepository, logger *logger.Logger) *LogService {
	return &LogService{
		logRepo:   logRepo,
		boardRepo: boardRepo,
		logger:    logger,
	}
}

// List returns all logs of a board owned by ownerID.
func (s *LogService) List(ctx context.Context, ownerID, boardID string) ([]*entities.Log, error) {
	if _, err := s.boardRepo.Get(ctx, ownerID, boardID); err != nil {
		return nil, err
	}

	return s.logRepo.ListByBoard(ctx, boardID)
}

// GetByDate fetches the log for one (board, date) pair.
func (s *LogService) GetByDate(ctx context.Context, ownerID, boardID, date string) (*entities.Log, error) {
	if _, err := s.boardRepo.Get(ctx, ownerID, boardID); err != nil {
		return nil, err
	}
	if _, err := time.Parse(entities.DateLayout, date); err != nil {
		return nil, entities.ErrInvalidDate
	}

	return s.logRepo.Get(ctx, boardID, date)
}

// CreateOrAppend merges actions into the (board, date) log, creating it
// when absent. The read-modify-write cycle is not conditional: two
// concurrent appends to the same date can both read the same prior state
// and lose one side's actions.
func (s *LogService) CreateOrAppend(ctx context.Context, ownerID string, req ports.CreateLogRequest) (*entities.Log, bool, error) {
	if _, err := s.boardRepo.Get(ctx, ownerID, req.BoardID); err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()
	date := req.Date
	if date == "" {
		date = now.Format(entities.DateLayout)
	} else if _, err := time.Parse(entities.DateLayout, date); err != nil {
		return nil, false, entities.ErrInvalidDate
	}

	actions := make([]entities.Action, 0, len(req.Actions))
	for _, in := range req.Actions {
		action := entities.Action{
			Type: entities.ActionType(in.Type),
			Task: in.Task,
			Time: now,
		}
		if in.Time != nil {
			action.Time = in.Time.UTC()
		}
		actions = append(actions, action)
	}

	log, err := s.logRepo.Get(ctx, req.BoardID, date)
	created := false
	switch {
	case err == nil:
		log.Actions = append(log.Actions, actions...)
		log.CompletedAt = now
	case errors.Is(err, entities.ErrLogNotFound):
		created = true
		log = &entities.Log{
			ID:          uuid.NewString(),
			BoardID:     req.BoardID,
			OwnerID:     ownerID,
			Date:        date,
			CompletedAt: now,
			Actions:     actions,
		}
	default:
		return nil, false, err
	}

	if err := s.logRepo.Put(ctx, log); err != nil {
		return nil, false, err
	}

	s.logger.Info("Log recorded", "log_id", log.ID, "board_id", req.BoardID, "date", date, "created", created)
	return log, created, nil
}

// Delete removes a log by bare id within the caller's ownership.
func (s *LogService) Delete(ctx context.Context, ownerID, logID string) error {
	if err := s.logRepo.DeleteByID(ctx, ownerID, logID); err != nil {
		return err
	}

	s.logger.Info("Log deleted", "log_id", logID, "owner_id", ownerID)
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/habitboard/core/internal/domain/entities"
	"github.com/habitboard/core/internal/infrastructure/storage"
	"github.com/habitboard/core/internal/ports"
)

// BoardRepositoryImpl implements the BoardRepository interface
type BoardRepositoryImpl struct {
	store storage.Store
}

// NewBoardRepository creates a new board repository
func NewBoardRepository(store storage.Store) ports.BoardRepository {
	return &BoardRepositoryImpl{store: store}
}

// Get fetches a board under the given owner scope.
func (r *BoardRepositoryImpl) Get(ctx context.Context, ownerID, boardID string) (*entities.Board, error) {
	payload, err := r.store.Get(ctx, boardKey(ownerID, boardID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, entities.ErrBoardNotFound
		}
		return nil, fmt.Errorf("get board: %w", err)
	}

	return decodeBoard(payload)
}

// ListByOwner returns all boards of one owner, in key order.
func (r *BoardRepositoryImpl) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Board, error) {
	boards := []*entities.Board{}
	err := r.store.Scan(ctx, boardScope(ownerID), func(key storage.Key, value []byte) error {
		board, err := decodeBoard(value)
		if err != nil {
			return err
		}
		boards = append(boards, board)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}

	return boards, nil
}

// Put stores a board, replacing any previous value.
func (r *BoardRepositoryImpl) Put(ctx context.Context, board *entities.Board) error {
	payload, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("marshal board: %w", err)
	}
	if err := r.store.Put(ctx, boardKey(board.OwnerID, board.ID), payload); err != nil {
		return fmt.Errorf("put board: %w", err)
	}

	return nil
}

// Delete removes a board under the given owner scope.
func (r *BoardRepositoryImpl) Delete(ctx context.Context, ownerID, boardID string) error {
	if err := r.store.Delete(ctx, boardKey(ownerID, boardID)); err != nil {
		return fmt.Errorf("delete board: %w", err)
	}

	return nil
}

// GetPublic looks a board up by id alone. There is no boardId -> ownerId
// index, so this walks every board of every owner and returns the first
// public row with a matching id. O(total boards in the system).
func (r *BoardRepositoryImpl) GetPublic(ctx context.Context, boardID string) (*entities.Board, error) {
	var found *entities.Board
	err := r.store.Scan(ctx, storage.Key{kindBoard}, func(key storage.Key, value []byte) error {
		board, err := decodeBoard(value)
		if err != nil {
			return err
		}
		if board.ID == boardID && board.IsPublic() {
			found = board
			return storage.ErrStopScan
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan boards: %w", err)
	}
	if found == nil {
		return nil, entities.ErrBoardNotFound
	}

	return found, nil
}

func decodeBoard(payload []byte) (*entities.Board, error) {
	var board entities.Board
	if err := json.Unmarshal(payload, &board); err != nil {
		return nil, fmt.Errorf("unmarshal board: %w", err)
	}
	return &board, nil
}

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

// LogRepositoryImpl implements the LogRepository interface
type LogRepositoryImpl struct {
	store storage.Store
}

// NewLogRepository creates a new log repository
func NewLogRepository(store storage.Store) ports.LogRepository {
	return &LogRepositoryImpl{store: store}
}

// Get fetches the log for one (board, date) pair.
func (r *LogRepositoryImpl) Get(ctx context.Context, boardID, date string) (*entities.Log, error) {
	payload, err := r.store.Get(ctx, logKey(boardID, date))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, entities.ErrLogNotFound
		}
		return nil, fmt.Errorf("get log: %w", err)
	}

	return decodeLog(payload)
}

// ListByBoard returns all logs of one board, in date order.
func (r *LogRepositoryImpl) ListByBoard(ctx context.Context, boardID string) ([]*entities.Log, error) {
	logs := []*entities.Log{}
	err := r.store.Scan(ctx, logScope(boardID), func(key storage.Key, value []byte) error {
		log, err := decodeLog(value)
		if err != nil {
			return err
		}
		logs = append(logs, log)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	return logs, nil
}

// Put stores a log under its (board, date) key, replacing any previous
// value. Callers own the read-modify-write cycle; see LogService.
func (r *LogRepositoryImpl) Put(ctx context.Context, log *entities.Log) error {
	payload, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("marshal log: %w", err)
	}
	if err := r.store.Put(ctx, logKey(log.BoardID, log.Date), payload); err != nil {
		return fmt.Errorf("put log: %w", err)
	}

	return nil
}

// DeleteByID removes a log located by bare id. Logs are keyed by (board,
// date), so this scans every board's logs and deletes the first row whose
// id and owner both match. O(total logs in the system); rows owned by other
// users are indistinguishable from absent ones.
func (r *LogRepositoryImpl) DeleteByID(ctx context.Context, ownerID, logID string) error {
	var foundKey storage.Key
	err := r.store.Scan(ctx, storage.Key{kindLog}, func(key storage.Key, value []byte) error {
		log, err := decodeLog(value)
		if err != nil {
			return err
		}
		if log.ID == logID && log.OwnerID == ownerID {
			foundKey = key
			return storage.ErrStopScan
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan logs: %w", err)
	}
	if foundKey == nil {
		return entities.ErrLogNotFound
	}

	if err := r.store.Delete(ctx, foundKey); err != nil {
		return fmt.Errorf("delete log: %w", err)
	}

	return nil
}

// DeleteAllByBoard removes every log of a board, one key at a time.
func (r *LogRepositoryImpl) DeleteAllByBoard(ctx context.Context, boardID string) error {
	keys := []storage.Key{}
	err := r.store.Scan(ctx, logScope(boardID), func(key storage.Key, value []byte) error {
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan logs: %w", err)
	}

	for _, key := range keys {
		if err := r.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete log: %w", err)
		}
	}

	return nil
}

func decodeLog(payload []byte) (*entities.Log, error) {
	var log entities.Log
	if err := json.Unmarshal(payload, &log); err != nil {
		return nil, fmt.Errorf("unmarshal log: %w", err)
	}
	return &log, nil
}

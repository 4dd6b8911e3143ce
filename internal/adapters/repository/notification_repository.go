package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/habitboard/core/internal/domain/entities"
	"github.com/habitboard/core/internal/infrastructure/storage"
	"github.com/habitboard/core/internal/ports"
)

// NotificationRepositoryImpl implements the NotificationRepository interface
type NotificationRepositoryImpl struct {
	store storage.Store
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(store storage.Store) ports.NotificationRepository {
	return &NotificationRepositoryImpl{store: store}
}

// ListByBoard returns all notifications of one board, in key order.
func (r *NotificationRepositoryImpl) ListByBoard(ctx context.Context, boardID string) ([]*entities.Notification, error) {
	notifications := []*entities.Notification{}
	err := r.store.Scan(ctx, notificationScope(boardID), func(key storage.Key, value []byte) error {
		notification, err := decodeNotification(value)
		if err != nil {
			return err
		}
		notifications = append(notifications, notification)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return notifications, nil
}

// Put stores a notification, replacing any previous value.
func (r *NotificationRepositoryImpl) Put(ctx context.Context, notification *entities.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := r.store.Put(ctx, notificationKey(notification.BoardID, notification.ID), payload); err != nil {
		return fmt.Errorf("put notification: %w", err)
	}

	return nil
}

// FindByID locates a notification by bare id. The caller supplies no board
// id, so this scans every board's notifications and returns the first row
// whose id and owner both match. O(total notifications in the system).
func (r *NotificationRepositoryImpl) FindByID(ctx context.Context, ownerID, notificationID string) (*entities.Notification, error) {
	var found *entities.Notification
	err := r.store.Scan(ctx, storage.Key{kindNotification}, func(key storage.Key, value []byte) error {
		notification, err := decodeNotification(value)
		if err != nil {
			return err
		}
		if notification.ID == notificationID && notification.OwnerID == ownerID {
			found = notification
			return storage.ErrStopScan
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan notifications: %w", err)
	}
	if found == nil {
		return nil, entities.ErrNotificationNotFound
	}

	return found, nil
}

// DeleteByID removes a notification located by bare id; same scan shape as
// FindByID.
func (r *NotificationRepositoryImpl) DeleteByID(ctx context.Context, ownerID, notificationID string) error {
	found, err := r.FindByID(ctx, ownerID, notificationID)
	if err != nil {
		return err
	}

	if err := r.store.Delete(ctx, notificationKey(found.BoardID, found.ID)); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}

	return nil
}

// DeleteAllByBoard removes every notification of a board.
func (r *NotificationRepositoryImpl) DeleteAllByBoard(ctx context.Context, boardID string) error {
	keys := []storage.Key{}
	err := r.store.Scan(ctx, notificationScope(boardID), func(key storage.Key, value []byte) error {
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan notifications: %w", err)
	}

	for _, key := range keys {
		if err := r.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete notification: %w", err)
		}
	}

	return nil
}

func decodeNotification(payload []byte) (*entities.Notification, error) {
	var notification entities.Notification
	if err := json.Unmarshal(payload, &notification); err != nil {
		return nil, fmt.Errorf("unmarshal notification: %w", err)
	}
	return &notification, nil
}

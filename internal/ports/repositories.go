package ports

import (
	"context"

	"github.com/habitboard/core/internal/domain/entities"
)

// UserRepository manages user records and the username index.
type UserRepository interface {
	// Create persists a new user. Returns entities.ErrUsernameTaken when
	// the username index already points at another user.
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
}

// BoardRepository manages boards scoped under their owning user.
type BoardRepository interface {
	Get(ctx context.Context, ownerID, boardID string) (*entities.Board, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Board, error)
	Put(ctx context.Context, board *entities.Board) error
	Delete(ctx context.Context, ownerID, boardID string) error

	// GetPublic looks a board up by id alone, with no owner scope. There
	// is no secondary index for this, so it scans every board of every
	// owner; cost is O(total boards in the system).
	GetPublic(ctx context.Context, boardID string) (*entities.Board, error)
}

// LogRepository manages per-date logs scoped under their board.
type LogRepository interface {
	Get(ctx context.Context, boardID, date string) (*entities.Log, error)
	ListByBoard(ctx context.Context, boardID string) ([]*entities.Log, error)
	Put(ctx context.Context, log *entities.Log) error

	// DeleteByID removes a log by bare id. The caller supplies no board
	// id, so this scans every board's logs and removes the first owner-
	// matching hit in key order; cost is O(total logs in the system).
	DeleteByID(ctx context.Context, ownerID, logID string) error

	// DeleteAllByBoard removes every log of a board. Used by the board
	// delete cascade; individual deletes are not atomic as a group.
	DeleteAllByBoard(ctx context.Context, boardID string) error
}

// NotificationRepository manages notifications scoped under their board.
type NotificationRepository interface {
	ListByBoard(ctx context.Context, boardID string) ([]*entities.Notification, error)
	Put(ctx context.Context, notification *entities.Notification) error

	// FindByID locates a notification by bare id across all boards; same
	// O(total notifications) scan as LogRepository.DeleteByID.
	FindByID(ctx context.Context, ownerID, notificationID string) (*entities.Notification, error)
	DeleteByID(ctx context.Context, ownerID, notificationID string) error
	DeleteAllByBoard(ctx context.Context, boardID string) error
}

package ports

import (
	"context"
	"time"

	"github.com/habitboard/core/internal/domain/entities"
)

// Identity is the authenticated caller attached to a request after token
// verification. It lives for the duration of one request only.
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,alphanum"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries a freshly issued token and its user.
type AuthResponse struct {
	Token string         `json:"token"`
	User  *entities.User `json:"user"`
}

// CreateBoardRequest is the payload for board creation.
type CreateBoardRequest struct {
	Title        string `json:"title" validate:"required,max=200"`
	MarkdownBody string `json:"markdown_body"`
	Visibility   string `json:"visibility" validate:"omitempty,oneof=private public"`
	Schedule     string `json:"schedule" validate:"omitempty,oneof=daily weekly custom"`
	ResetTime    string `json:"reset_time" validate:"omitempty,datetime=15:04"`
}

// UpdateBoardRequest is the payload for board updates. Nil fields are left
// unchanged; the stored value is replaced wholesale after the merge.
type UpdateBoardRequest struct {
	Title        *string `json:"title" validate:"omitempty,max=200"`
	MarkdownBody *string `json:"markdown_body"`
	Visibility   *string `json:"visibility" validate:"omitempty,oneof=private public"`
	Schedule     *string `json:"schedule" validate:"omitempty,oneof=daily weekly custom"`
	ResetTime    *string `json:"reset_time" validate:"omitempty,datetime=15:04"`
}

// ActionInput is a single action in a log payload.
type ActionInput struct {
	Type string     `json:"type" validate:"required,oneof=check reset done"`
	Task string     `json:"task"`
	Time *time.Time `json:"time"`
}

// CreateLogRequest is the payload for logging actions against a board. Date
// defaults to today (UTC) when omitted.
type CreateLogRequest struct {
	BoardID string        `json:"board_id" validate:"required"`
	Date    string        `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Actions []ActionInput `json:"actions" validate:"required,min=1,dive"`
}

// CreateNotificationRequest is the payload for creating a notification.
type CreateNotificationRequest struct {
	BoardID string     `json:"board_id" validate:"required"`
	Message string     `json:"message" validate:"required,max=500"`
	Time    *time.Time `json:"time"`
}

// AuthService handles registration, login and token verification.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*entities.User, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)

	// ValidateToken returns entities.ErrInvalidToken for any malformed,
	// badly signed or expired token; callers must not distinguish why.
	ValidateToken(token string) (*Identity, error)
	GetUser(ctx context.Context, userID string) (*entities.User, error)
}

// BoardService handles owner-scoped board operations plus the anonymous
// public lookup.
type BoardService interface {
	Create(ctx context.Context, ownerID string, req CreateBoardRequest) (*entities.Board, error)
	Get(ctx context.Context, ownerID, boardID string) (*entities.Board, error)
	List(ctx context.Context, ownerID string) ([]*entities.Board, error)
	Update(ctx context.Context, ownerID, boardID string, req UpdateBoardRequest) (*entities.Board, error)
	Delete(ctx context.Context, ownerID, boardID string) error
	GetPublic(ctx context.Context, boardID string) (*entities.Board, error)
}

// LogService handles per-date action logs.
type LogService interface {
	List(ctx context.Context, ownerID, boardID string) ([]*entities.Log, error)
	GetByDate(ctx context.Context, ownerID, boardID, date string) (*entities.Log, error)

	// CreateOrAppend merges actions into the existing (board, date) log or
	// creates a new one. The returned bool reports whether a new log was
	// created.
	CreateOrAppend(ctx context.Context, ownerID string, req CreateLogRequest) (*entities.Log, bool, error)
	Delete(ctx context.Context, ownerID, logID string) error
}

// NotificationService handles board notifications.
type NotificationService interface {
	// List returns the board's undismissed notifications.
	List(ctx context.Context, ownerID, boardID string) ([]*entities.Notification, error)
	Create(ctx context.Context, ownerID string, req CreateNotificationRequest) (*entities.Notification, error)
	Dismiss(ctx context.Context, ownerID, notificationID string) (*entities.Notification, error)
	Delete(ctx context.Context, ownerID, notificationID string) error
}

package entities

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrBoardNotFound        = errors.New("board not found")
	ErrLogNotFound          = errors.New("log not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidVisibility    = errors.New("invalid visibility")
	ErrInvalidSchedule      = errors.New("invalid schedule")
	ErrInvalidActionType    = errors.New("invalid action type")
	ErrInvalidDate          = errors.New("invalid date")
)

// Enums and types
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// Valid reports whether v is a known visibility value.
func (v Visibility) Valid() bool {
	return v == VisibilityPrivate || v == VisibilityPublic
}

type Schedule string

const (
	ScheduleDaily  Schedule = "daily"
	ScheduleWeekly Schedule = "weekly"
	ScheduleCustom Schedule = "custom"
)

// Valid reports whether s is a known schedule value.
func (s Schedule) Valid() bool {
	return s == ScheduleDaily || s == ScheduleWeekly || s == ScheduleCustom
}

type ActionType string

const (
	ActionCheck ActionType = "check"
	ActionReset ActionType = "reset"
	ActionDone  ActionType = "done"
)

// Valid reports whether t is a known action type.
func (t ActionType) Valid() bool {
	return t == ActionCheck || t == ActionReset || t == ActionDone
}

// DateLayout is the wire and storage format for log dates.
const DateLayout = "2006-01-02"

// User represents a registered account. Users are immutable once created;
// there is no update or delete operation.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Board represents a markdown checklist/tracker owned by a single user.
type Board struct {
	ID           string     `json:"id"`
	OwnerID      string     `json:"owner_id"`
	Title        string     `json:"title"`
	MarkdownBody string     `json:"markdown_body"`
	Visibility   Visibility `json:"visibility"`
	Schedule     Schedule   `json:"schedule"`
	ResetTime    string     `json:"reset_time"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsPublic reports whether the board allows anonymous read access.
func (b *Board) IsPublic() bool {
	return b.Visibility == VisibilityPublic
}

// Action is a single entry in a log's action list.
type Action struct {
	Type ActionType `json:"type"`
	Task string     `json:"task,omitempty"`
	Time time.Time  `json:"time"`
}

// Log is the per-date record of actions taken against a board. The natural
// key is (BoardID, Date); writing a second log for the same date appends its
// actions to the existing record.
type Log struct {
	ID          string    `json:"id"`
	BoardID     string    `json:"board_id"`
	OwnerID     string    `json:"owner_id"`
	Date        string    `json:"date"`
	CompletedAt time.Time `json:"completed_at"`
	Actions     []Action  `json:"actions"`
}

// Notification is a reminder tied to a board; it inherits the board's owner.
type Notification struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"board_id"`
	OwnerID   string    `json:"owner_id"`
	Message   string    `json:"message"`
	Time      time.Time `json:"time"`
	Dismissed bool      `json:"dismissed"`
}

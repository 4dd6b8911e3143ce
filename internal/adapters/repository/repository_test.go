package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/habitboard/core/internal/domain/entities"
	"github.com/habitboard/core/internal/infrastructure/storage/memory"
)

func TestUserRepositoryCreateAndLookup(t *testing.T) {
	repo := NewUserRepository(memory.New())
	ctx := context.Background()

	user := &entities.User{
		ID:           uuid.NewString(),
		Username:     "casey",
		PasswordHash: "$2a$10$fakehash",
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	byID, err := repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Username != "casey" {
		t.Fatalf("expected username casey, got %q", byID.Username)
	}
	if byID.PasswordHash != user.PasswordHash {
		t.Fatal("password hash did not survive storage")
	}

	byName, err := repo.GetByUsername(ctx, "casey")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if byName.ID != user.ID {
		t.Fatalf("expected id %q, got %q", user.ID, byName.ID)
	}
}

func TestUserRepositoryDuplicateUsername(t *testing.T) {
	repo := NewUserRepository(memory.New())
	ctx := context.Background()

	first := &entities.User{ID: uuid.NewString(), Username: "casey", PasswordHash: "h1", CreatedAt: time.Now().UTC()}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}

	second := &entities.User{ID: uuid.NewString(), Username: "casey", PasswordHash: "h2", CreatedAt: time.Now().UTC()}
	if err := repo.Create(ctx, second); !errors.Is(err, entities.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	// First user's record is unchanged.
	got, err := repo.GetByUsername(ctx, "casey")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if got.ID != first.ID || got.PasswordHash != "h1" {
		t.Fatal("first user record was clobbered")
	}
}

func testBoard(ownerID string, visibility entities.Visibility) *entities.Board {
	now := time.Now().UTC()
	return &entities.Board{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Title:        "Morning routine",
		MarkdownBody: "- [ ] stretch\n- [ ] water",
		Visibility:   visibility,
		Schedule:     entities.ScheduleDaily,
		ResetTime:    "00:00",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestBoardRepositoryRoundTrip(t *testing.T) {
	repo := NewBoardRepository(memory.New())
	ctx := context.Background()

	board := testBoard("owner-1", entities.VisibilityPrivate)
	if err := repo.Put(ctx, board); err != nil {
		t.Fatalf("put board: %v", err)
	}

	got, err := repo.Get(ctx, "owner-1", board.ID)
	if err != nil {
		t.Fatalf("get board: %v", err)
	}
	if got.Title != board.Title || got.MarkdownBody != board.MarkdownBody || got.Schedule != board.Schedule {
		t.Fatalf("board did not round-trip: %+v", got)
	}

	// A different owner scope cannot see it.
	if _, err := repo.Get(ctx, "owner-2", board.ID); !errors.Is(err, entities.ErrBoardNotFound) {
		t.Fatalf("expected ErrBoardNotFound for foreign scope, got %v", err)
	}
}

func TestBoardRepositoryGetPublic(t *testing.T) {
	repo := NewBoardRepository(memory.New())
	ctx := context.Background()

	private := testBoard("owner-1", entities.VisibilityPrivate)
	public := testBoard("owner-2", entities.VisibilityPublic)
	for _, b := range []*entities.Board{private, public} {
		if err := repo.Put(ctx, b); err != nil {
			t.Fatalf("put board: %v", err)
		}
	}

	// Private boards are unreachable by bare id, even with a correct id.
	if _, err := repo.GetPublic(ctx, private.ID); !errors.Is(err, entities.ErrBoardNotFound) {
		t.Fatalf("expected ErrBoardNotFound for private board, got %v", err)
	}

	got, err := repo.GetPublic(ctx, public.ID)
	if err != nil {
		t.Fatalf("get public board: %v", err)
	}
	if got.OwnerID != "owner-2" {
		t.Fatalf("expected owner-2's board, got %+v", got)
	}

	// Flipping visibility makes the same board reachable.
	private.Visibility = entities.VisibilityPublic
	if err := repo.Put(ctx, private); err != nil {
		t.Fatalf("put board: %v", err)
	}
	if _, err := repo.GetPublic(ctx, private.ID); err != nil {
		t.Fatalf("expected flipped board reachable, got %v", err)
	}
}

func TestLogRepositoryDeleteByID(t *testing.T) {
	repo := NewLogRepository(memory.New())
	ctx := context.Background()

	log := &entities.Log{
		ID:          uuid.NewString(),
		BoardID:     "board-1",
		OwnerID:     "owner-1",
		Date:        "2026-08-30",
		CompletedAt: time.Now().UTC(),
		Actions:     []entities.Action{{Type: entities.ActionCheck, Task: "stretch", Time: time.Now().UTC()}},
	}
	if err := repo.Put(ctx, log); err != nil {
		t.Fatalf("put log: %v", err)
	}

	// A different owner cannot delete it; the scan reports not found.
	if err := repo.DeleteByID(ctx, "owner-2", log.ID); !errors.Is(err, entities.ErrLogNotFound) {
		t.Fatalf("expected ErrLogNotFound for foreign owner, got %v", err)
	}

	if err := repo.DeleteByID(ctx, "owner-1", log.ID); err != nil {
		t.Fatalf("delete log: %v", err)
	}
	if _, err := repo.Get(ctx, "board-1", "2026-08-30"); !errors.Is(err, entities.ErrLogNotFound) {
		t.Fatalf("expected log gone, got %v", err)
	}
}

func TestLogRepositoryListOrderedByDate(t *testing.T) {
	repo := NewLogRepository(memory.New())
	ctx := context.Background()

	for _, date := range []string{"2026-08-30", "2026-08-01", "2026-08-15"} {
		log := &entities.Log{ID: uuid.NewString(), BoardID: "board-1", OwnerID: "owner-1", Date: date}
		if err := repo.Put(ctx, log); err != nil {
			t.Fatalf("put log: %v", err)
		}
	}

	logs, err := repo.ListByBoard(ctx, "board-1")
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 logs, got %d", len(logs))
	}
	if logs[0].Date != "2026-08-01" || logs[2].Date != "2026-08-30" {
		t.Fatalf("expected date order, got %s..%s", logs[0].Date, logs[2].Date)
	}
}

func TestNotificationRepositoryFindAndDelete(t *testing.T) {
	repo := NewNotificationRepository(memory.New())
	ctx := context.Background()

	notification := &entities.Notification{
		ID:      uuid.NewString(),
		BoardID: "board-1",
		OwnerID: "owner-1",
		Message: "water time",
		Time:    time.Now().UTC(),
	}
	if err := repo.Put(ctx, notification); err != nil {
		t.Fatalf("put notification: %v", err)
	}

	if _, err := repo.FindByID(ctx, "owner-2", notification.ID); !errors.Is(err, entities.ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound for foreign owner, got %v", err)
	}

	found, err := repo.FindByID(ctx, "owner-1", notification.ID)
	if err != nil {
		t.Fatalf("find notification: %v", err)
	}
	if found.Message != "water time" {
		t.Fatalf("unexpected notification %+v", found)
	}

	if err := repo.DeleteByID(ctx, "owner-1", notification.ID); err != nil {
		t.Fatalf("delete notification: %v", err)
	}
	if _, err := repo.FindByID(ctx, "owner-1", notification.ID); !errors.Is(err, entities.ErrNotificationNotFound) {
		t.Fatalf("expected notification gone, got %v", err)
	}
}

func TestDeleteAllByBoardLeavesOtherBoardsAlone(t *testing.T) {
	store := memory.New()
	logs := NewLogRepository(store)
	notifications := NewNotificationRepository(store)
	ctx := context.Background()

	for _, boardID := range []string{"board-1", "board-2"} {
		if err := logs.Put(ctx, &entities.Log{ID: uuid.NewString(), BoardID: boardID, OwnerID: "owner-1", Date: "2026-08-30"}); err != nil {
			t.Fatalf("put log: %v", err)
		}
		if err := notifications.Put(ctx, &entities.Notification{ID: uuid.NewString(), BoardID: boardID, OwnerID: "owner-1"}); err != nil {
			t.Fatalf("put notification: %v", err)
		}
	}

	if err := logs.DeleteAllByBoard(ctx, "board-1"); err != nil {
		t.Fatalf("delete logs: %v", err)
	}
	if err := notifications.DeleteAllByBoard(ctx, "board-1"); err != nil {
		t.Fatalf("delete notifications: %v", err)
	}

	remaining, err := logs.ListByBoard(ctx, "board-2")
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected board-2 log to survive, got %d", len(remaining))
	}
}

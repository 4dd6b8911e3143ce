package services

import (
	"context"
	"errors"
	"testing"

	"github.com/habitboard/core/internal/adapters/repository"
	"github.com/habitboard/core/internal/domain/entities"
	"github.com/habitboard/core/internal/infrastructure/logger"
	"github.com/habitboard/core/internal/infrastructure/storage/memory"
	"github.com/habitboard/core/internal/ports"
)

type fixture struct {
	boards        *BoardService
	logs          *LogService
	notifications *NotificationService
}

func newFixture() *fixture {
	store := memory.New()
	boardRepo := repository.NewBoardRepository(store)
	logRepo := repository.NewLogRepository(store)
	notificationRepo := repository.NewNotificationRepository(store)
	log := logger.NewNop()

	return &fixture{
		boards:        NewBoardService(boardRepo, logRepo, notificationRepo, log),
		logs:          NewLogService(logRepo, boardRepo, log),
		notifications: NewNotificationService(notificationRepo, boardRepo, log),
	}
}

func stringPtr(s string) *string { return &s }

func TestBoardCreateGetRoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.boards.Create(ctx, "owner-1", ports.CreateBoardRequest{
		Title:        "Morning routine",
		MarkdownBody: "- [ ] stretch",
		Visibility:   "private",
		Schedule:     "weekly",
		ResetTime:    "06:30",
	})
	if err != nil {
		t.Fatalf("create board: %v", err)
	}

	got, err := f.boards.Get(ctx, "owner-1", created.ID)
	if err != nil {
		t.Fatalf("get board: %v", err)
	}
	if got.Title != created.Title || got.MarkdownBody != created.MarkdownBody {
		t.Fatalf("board did not round-trip: %+v", got)
	}
	if got.Schedule != entities.ScheduleWeekly || got.ResetTime != "06:30" {
		t.Fatalf("schedule fields lost: %+v", got)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) || !got.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatal("timestamps changed between create and get")
	}
}

func TestBoardCreateDefaults(t *testing.T) {
	f := newFixture()

	board, err := f.boards.Create(context.Background(), "owner-1", ports.CreateBoardRequest{Title: "Minimal"})
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	if board.Visibility != entities.VisibilityPrivate {
		t.Fatalf("expected private default, got %q", board.Visibility)
	}
	if board.Schedule != entities.ScheduleDaily || board.ResetTime != "00:00" {
		t.Fatalf("unexpected schedule defaults: %+v", board)
	}
}

func TestBoardOwnershipIsolation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	board, err := f.boards.Create(ctx, "alice", ports.CreateBoardRequest{Title: "Private"})
	if err != nil {
		t.Fatalf("create board: %v", err)
	}

	// All of bob's paths see not-found, never alice's data.
	if _, err := f.boards.Get(ctx, "bob", board.ID); !errors.Is(err, entities.ErrBoardNotFound) {
		t.Fatalf("expected ErrBoardNotFound on get, got %v", err)
	}
	if _, err := f.boards.Update(ctx, "bob", board.ID, ports.UpdateBoardRequest{Title: stringPtr("stolen")}); !errors.Is(err, entities.ErrBoardNotFound) {
		t.Fatalf("expected ErrBoardNotFound on update, got %v", err)
	}
	if err := f.boards.Delete(ctx, "bob", board.ID); !errors.Is(err, entities.ErrBoardNotFound) {
		t.Fatalf("expected ErrBoardNotFound on delete, got %v", err)
	}

	// Alice's board is untouched.
	got, err := f.boards.Get(ctx, "alice", board.ID)
	if err != nil {
		t.Fatalf("get board: %v", err)
	}
	if got.Title != "Private" {
		t.Fatalf("board mutated by foreign caller: %+v", got)
	}
}

func TestBoardUpdatePartialFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	board, err := f.boards.Create(ctx, "owner-1", ports.CreateBoardRequest{Title: "Before", MarkdownBody: "body"})
	if err != nil {
		t.Fatalf("create board: %v", err)
	}

	updated, err := f.boards.Update(ctx, "owner-1", board.ID, ports.UpdateBoardRequest{Title: stringPtr("After")})
	if err != nil {
		t.Fatalf("update board: %v", err)
	}
	if updated.Title != "After" {
		t.Fatalf("title not updated: %+v", updated)
	}
	if updated.MarkdownBody != "body" {
		t.Fatalf("untouched field clobbered: %+v", updated)
	}
	if !updated.CreatedAt.Equal(board.CreatedAt) {
		t.Fatal("created_at changed on update")
	}
	if !updated.UpdatedAt.After(board.UpdatedAt) && !updated.UpdatedAt.Equal(board.UpdatedAt) {
		t.Fatal("updated_at went backwards")
	}
}

func TestBoardPublicVisibilityGate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	board, err := f.boards.Create(ctx, "owner-1", ports.CreateBoardRequest{Title: "Gate"})
	if err != nil {
		t.Fatalf("create board: %v", err)
	}

	// Private: unreachable anonymously even with the right id.
	if _, err := f.boards.GetPublic(ctx, board.ID); !errors.Is(err, entities.ErrBoardNotFound) {
		t.Fatalf("expected ErrBoardNotFound for private board, got %v", err)
	}

	if _, err := f.boards.Update(ctx, "owner-1", board.ID, ports.UpdateBoardRequest{Visibility: stringPtr("public")}); err != nil {
		t.Fatalf("flip visibility: %v", err)
	}

	got, err := f.boards.GetPublic(ctx, board.ID)
	if err != nil {
		t.Fatalf("get public board: %v", err)
	}
	if got.ID != board.ID {
		t.Fatalf("expected board %q, got %q", board.ID, got.ID)
	}
}

func TestBoardDeleteCascades(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	board, err := f.boards.Create(ctx, "owner-1", ports.CreateBoardRequest{Title: "Doomed"})
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	if _, _, err := f.logs.CreateOrAppend(ctx, "owner-1", ports.CreateLogRequest{
		BoardID: board.ID,
		Actions: []ports.ActionInput{{Type: "check"}},
	}); err != nil {
		t.Fatalf("create log: %v", err)
	}
	if _, err := f.notifications.Create(ctx, "owner-1", ports.CreateNotificationRequest{BoardID: board.ID, Message: "hi"}); err != nil {
		t.Fatalf("create notification: %v", err)
	}

	if err := f.boards.Delete(ctx, "owner-1", board.ID); err != nil {
		t.Fatalf("delete board: %v", err)
	}

	if _, err := f.boards.Get(ctx, "owner-1", board.ID); !errors.Is(err, entities.ErrBoardNotFound) {
		t.Fatalf("expected board gone, got %v", err)
	}
	if _, err := f.logs.List(ctx, "owner-1", board.ID); !errors.Is(err, entities.ErrBoardNotFound) {
		t.Fatalf("expected log list to fail on missing board, got %v", err)
	}
}

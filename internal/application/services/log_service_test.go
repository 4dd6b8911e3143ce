package services

import (
	"context"
	"errors"
	"testing"

	"github.com/habitboard/core/internal/domain/entities"
	"github.com/habitboard/core/internal/ports"
)

func TestLogCreateOrAppendMergesSameDate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	board, err := f.boards.Create(ctx, "owner-1", ports.CreateBoardRequest{Title: "Habits"})
	if err != nil {
		t.Fatalf("create board: %v", err)
	}

	first, created, err := f.logs.CreateOrAppend(ctx, "owner-1", ports.CreateLogRequest{
		BoardID: board.ID,
		Date:    "2026-08-30",
		Actions: []ports.ActionInput{{Type: "check", Task: "stretch"}},
	})
	if err != nil {
		t.Fatalf("first log: %v", err)
	}
	if !created {
		t.Fatal("expected first write to create")
	}

	second, created, err := f.logs.CreateOrAppend(ctx, "owner-1", ports.CreateLogRequest{
		BoardID: board.ID,
		Date:    "2026-08-30",
		Actions: []ports.ActionInput{{Type: "done", Task: "water"}},
	})
	if err != nil {
		t.Fatalf("second log: %v", err)
	}
	if created {
		t.Fatal("expected second write to append, not create")
	}
	if second.ID != first.ID {
		t.Fatal("append produced a second log record")
	}
	if len(second.Actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(second.Actions))
	}
	if second.Actions[0].Task != "stretch" || second.Actions[1].Task != "water" {
		t.Fatalf("action order not preserved: %+v", second.Actions)
	}
	if !second.CompletedAt.After(first.CompletedAt) && !second.CompletedAt.Equal(first.CompletedAt) {
		t.Fatal("completed_at not bumped on append")
	}

	// Exactly one record exists for the (board, date) pair.
	logs, err := f.logs.List(ctx, "owner-1", board.ID)
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log record, got %d", len(logs))
	}
}

func TestLogCreateDefaultsToToday(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	board, err := f.boards.Create(ctx, "owner-1", ports.CreateBoardRequest{Title: "Habits"})
	if err != nil {
		t.Fatalf("create board: %v", err)
	}

	log, _, err := f.logs.CreateOrAppend(ctx, "owner-1", ports.CreateLogRequest{
		BoardID: board.ID,
		Actions: []ports.ActionInput{{Type: "check"}},
	})
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	if log.Date == "" {
		t.Fatal("expected a defaulted date")
	}

	got, err := f.logs.GetByDate(ctx, "owner-1", board.ID, log.Date)
	if err != nil {
		t.Fatalf("get by date: %v", err)
	}
	if got.ID != log.ID {
		t.Fatalf("expected log %q, got %q", log.ID, got.ID)
	}
}

func TestLogRejectsBadDate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	board, err := f.boards.Create(ctx, "owner-1", ports.CreateBoardRequest{Title: "Habits"})
	if err != nil {
		t.Fatalf("create board: %v", err)
	}

	_, _, err = f.logs.CreateOrAppend(ctx, "owner-1", ports.CreateLogRequest{
		BoardID: board.ID,
		Date:    "30/08/2026",
		Actions: []ports.ActionInput{{Type: "check"}},
	})
	if !errors.Is(err, entities.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestLogScopedToBoardOwner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	board, err := f.boards.Create(ctx, "alice", ports.CreateBoardRequest{Title: "Private"})
	if err != nil {
		t.Fatalf("create board: %v", err)
	}

	_, _, err = f.logs.CreateOrAppend(ctx, "bob", ports.CreateLogRequest{
		BoardID: board.ID,
		Actions: []ports.ActionInput{{Type: "check"}},
	})
	if !errors.Is(err, entities.ErrBoardNotFound) {
		t.Fatalf("expected ErrBoardNotFound for foreign board, got %v", err)
	}

	if _, err := f.logs.List(ctx, "bob", board.ID); !errors.Is(err, entities.ErrBoardNotFound) {
		t.Fatalf("expected ErrBoardNotFound on list, got %v", err)
	}
}

func TestLogDeleteByID(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	board, err := f.boards.Create(ctx, "owner-1", ports.CreateBoardRequest{Title: "Habits"})
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	log, _, err := f.logs.CreateOrAppend(ctx, "owner-1", ports.CreateLogRequest{
		BoardID: board.ID,
		Date:    "2026-08-30",
		Actions: []ports.ActionInput{{Type: "check"}},
	})
	if err != nil {
		t.Fatalf("create log: %v", err)
	}

	if err := f.logs.Delete(ctx, "somebody-else", log.ID); !errors.Is(err, entities.ErrLogNotFound) {
		t.Fatalf("expected ErrLogNotFound for foreign owner, got %v", err)
	}
	if err := f.logs.Delete(ctx, "owner-1", log.ID); err != nil {
		t.Fatalf("delete log: %v", err)
	}
	if err := f.logs.Delete(ctx, "owner-1", log.ID); !errors.Is(err, entities.ErrLogNotFound) {
		t.Fatalf("expected ErrLogNotFound after delete, got %v", err)
	}
}

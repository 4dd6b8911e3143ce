package services

import (
	"context"
	"errors"
	"testing"

	"github.com/habitboard/core/internal/domain/entities"
	"github.com/habitboard/core/internal/ports"
)

func TestNotificationCreateAndList(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	board, err := f.boards.Create(ctx, "owner-1", ports.CreateBoardRequest{Title: "Habits"})
	if err != nil {
		t.Fatalf("create board: %v", err)
	}

	notification, err := f.notifications.Create(ctx, "owner-1", ports.CreateNotificationRequest{
		BoardID: board.ID,
		Message: "time to stretch",
	})
	if err != nil {
		t.Fatalf("create notification: %v", err)
	}
	if notification.OwnerID != "owner-1" {
		t.Fatalf("notification did not inherit board owner: %+v", notification)
	}

	active, err := f.notifications.List(ctx, "owner-1", board.ID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(active) != 1 || active[0].Message != "time to stretch" {
		t.Fatalf("unexpected notifications %+v", active)
	}
}

func TestNotificationDismissHidesFromList(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	board, err := f.boards.Create(ctx, "owner-1", ports.CreateBoardRequest{Title: "Habits"})
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	notification, err := f.notifications.Create(ctx, "owner-1", ports.CreateNotificationRequest{BoardID: board.ID, Message: "hi"})
	if err != nil {
		t.Fatalf("create notification: %v", err)
	}

	dismissed, err := f.notifications.Dismiss(ctx, "owner-1", notification.ID)
	if err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if !dismissed.Dismissed {
		t.Fatal("expected dismissed flag set")
	}

	active, err := f.notifications.List(ctx, "owner-1", board.ID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("dismissed notification still listed: %+v", active)
	}
}

func TestNotificationForeignOwnerSeesNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	board, err := f.boards.Create(ctx, "alice", ports.CreateBoardRequest{Title: "Private"})
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	notification, err := f.notifications.Create(ctx, "alice", ports.CreateNotificationRequest{BoardID: board.ID, Message: "hi"})
	if err != nil {
		t.Fatalf("create notification: %v", err)
	}

	if _, err := f.notifications.Create(ctx, "bob", ports.CreateNotificationRequest{BoardID: board.ID, Message: "intrude"}); !errors.Is(err, entities.ErrBoardNotFound) {
		t.Fatalf("expected ErrBoardNotFound, got %v", err)
	}
	if _, err := f.notifications.Dismiss(ctx, "bob", notification.ID); !errors.Is(err, entities.ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound on dismiss, got %v", err)
	}
	if err := f.notifications.Delete(ctx, "bob", notification.ID); !errors.Is(err, entities.ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound on delete, got %v", err)
	}
}

func TestNotificationDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	board, err := f.boards.Create(ctx, "owner-1", ports.CreateBoardRequest{Title: "Habits"})
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	notification, err := f.notifications.Create(ctx, "owner-1", ports.CreateNotificationRequest{BoardID: board.ID, Message: "hi"})
	if err != nil {
		t.Fatalf("create notification: %v", err)
	}

	if err := f.notifications.Delete(ctx, "owner-1", notification.ID); err != nil {
		t.Fatalf("delete notification: %v", err)
	}
	if _, err := f.notifications.Dismiss(ctx, "owner-1", notification.ID); !errors.Is(err, entities.ErrNotificationNotFound) {
		t.Fatalf("expected notification gone, got %v", err)
	}
}

package service

import (
	"context"
	"errors"
	"testing"
)

func TestSendAndListMessages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.createRoom(t, "Planning")
	alice := f.join(t, room.ID, "Alice")
	bob := f.join(t, room.ID, "Bob")

	if _, err := f.messages.Send(ctx, room.ID, alice.ParticipantID, "is this a 3 or a 5?"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, err := f.messages.Send(ctx, room.ID, bob.ParticipantID, "5, the migration is gnarly"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	views, err := f.messages.List(ctx, room.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("messages = %d, want 2", len(views))
	}
	if views[0].Author != "Alice" || views[1].Author != "Bob" {
		t.Errorf("authors = %q, %q, want Alice then Bob", views[0].Author, views[1].Author)
	}
	if views[0].Body != "is this a 3 or a 5?" {
		t.Errorf("body = %q", views[0].Body)
	}
}

func TestSendUnknownParticipant(t *testing.T) {
	f := newFixture(t)

	room := f.createRoom(t, "Planning")
	_, err := f.messages.Send(context.Background(), room.ID, "p_missing", "hello")
	if !errors.Is(err, ErrParticipantNotFound) {
		t.Errorf("Send error = %v, want ErrParticipantNotFound", err)
	}
}

func TestMessagesOutliveAuthors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.createRoom(t, "Planning")
	alice := f.join(t, room.ID, "Alice")

	if _, err := f.messages.Send(ctx, room.ID, alice.ParticipantID, "brb"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, err := f.participants.Leave(ctx, alice.ParticipantID); err != nil {
		t.Fatalf("Leave: %v", err)
	}

	views, err := f.messages.List(ctx, room.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("messages = %d, want 1", len(views))
	}
	if views[0].Author != "anonymous" {
		t.Errorf("author = %q, want anonymous after leave", views[0].Author)
	}
}

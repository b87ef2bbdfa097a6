package service

import (
	"context"
	"testing"
)

func TestHistoryEmptyRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.createRoom(t, "Planning")

	entries, err := f.history.History(ctx, room.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}

	latest, err := f.history.LatestRound(ctx, room.ID)
	if err != nil {
		t.Fatalf("LatestRound: %v", err)
	}
	if latest != nil {
		t.Errorf("latest = %+v, want nil before any round", latest)
	}

	count, err := f.history.RoundCount(ctx, room.ID)
	if err != nil {
		t.Fatalf("RoundCount: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/dustatron/mcpoker/internal/model"
)

func TestParticipantFirstMatchByInsertionOrder(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	repo := store.Participants()

	// Duplicate names can exist after a join race; lookups must keep
	// resolving to the earliest row.
	first := &model.Participant{ID: "p_first", RoomID: "ABC234", Name: "Alice"}
	second := &model.Participant{ID: "p_second", RoomID: "ABC234", Name: "Alice"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByRoomAndName(ctx, "ABC234", "Alice")
	if err != nil {
		t.Fatalf("GetByRoomAndName: %v", err)
	}
	if got == nil || got.ID != "p_first" {
		t.Errorf("first match = %+v, want p_first", got)
	}
}

func TestListByRoomInsertionOrder(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	repo := store.Participants()

	for _, id := range []string{"p_a", "p_b", "p_c"} {
		if err := repo.Create(ctx, &model.Participant{ID: id, RoomID: "ABC234", Name: id}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, err := repo.ListByRoom(ctx, "ABC234")
	if err != nil {
		t.Fatalf("ListByRoom: %v", err)
	}
	for i, want := range []string{"p_a", "p_b", "p_c"} {
		if list[i].ID != want {
			t.Errorf("list[%d] = %q, want %q", i, list[i].ID, want)
		}
	}
}

func TestRowsAreCopies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	repo := store.Rooms()

	room := &model.Room{ID: "ABC234", Name: "Original"}
	if err := repo.Create(ctx, room); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, _ := repo.GetByID(ctx, "ABC234")
	got.Name = "Mutated"

	again, _ := repo.GetByID(ctx, "ABC234")
	if again.Name != "Original" {
		t.Errorf("stored row mutated through a returned copy: %q", again.Name)
	}
}

func TestSetRevealedByRoomScopesToRoom(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	repo := store.Votes()

	votes := []*model.Vote{
		{ID: "v_a", RoomID: "ROOM01", ParticipantID: "p_a", Value: model.Estimate(3)},
		{ID: "v_b", RoomID: "ROOM01", ParticipantID: "p_b", Value: model.Estimate(5)},
		{ID: "v_c", RoomID: "ROOM02", ParticipantID: "p_c", Value: model.Estimate(8)},
	}
	for _, v := range votes {
		if err := repo.Create(ctx, v); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	updated, err := repo.SetRevealedByRoom(ctx, "ROOM01", true)
	if err != nil {
		t.Fatalf("SetRevealedByRoom: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated = %d, want 2", updated)
	}

	other, _ := repo.ListByRoom(ctx, "ROOM02")
	if other[0].Revealed {
		t.Error("reveal leaked into another room")
	}
}

func TestHistoryListDescAndLimit(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	repo := store.History()

	for round := 1; round <= 5; round++ {
		err := repo.Create(ctx, &model.HistoryEntry{
			ID:          "h_" + string(rune('a'+round)),
			RoomID:      "ABC234",
			RoundNumber: round,
			CreatedAt:   time.Now(),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	entries, err := repo.ListByRoomDesc(ctx, "ABC234", 3)
	if err != nil {
		t.Fatalf("ListByRoomDesc: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	for i, want := range []int{5, 4, 3} {
		if entries[i].RoundNumber != want {
			t.Errorf("entries[%d].RoundNumber = %d, want %d", i, entries[i].RoundNumber, want)
		}
	}

	all, err := repo.ListByRoomDesc(ctx, "ABC234", 0)
	if err != nil {
		t.Fatalf("ListByRoomDesc: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("unlimited entries = %d, want 5", len(all))
	}

	latest, err := repo.LatestByRoom(ctx, "ABC234")
	if err != nil {
		t.Fatalf("LatestByRoom: %v", err)
	}
	if latest == nil || latest.RoundNumber != 5 {
		t.Errorf("latest = %+v, want round 5", latest)
	}
}

func TestListConnectedBefore(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	repo := store.Participants()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := []*model.Participant{
		{ID: "p_stale", RoomID: "ABC234", Name: "Stale", Connected: true, LastSeen: base},
		{ID: "p_fresh", RoomID: "ABC234", Name: "Fresh", Connected: true, LastSeen: base.Add(10 * time.Minute)},
		{ID: "p_gone", RoomID: "ABC234", Name: "Gone", Connected: false, LastSeen: base},
	}
	for _, p := range rows {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.ListConnectedBefore(ctx, base.Add(5*time.Minute))
	if err != nil {
		t.Fatalf("ListConnectedBefore: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p_stale" {
		t.Errorf("got = %+v, want only p_stale (already-disconnected rows excluded)", got)
	}
}

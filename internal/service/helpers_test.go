package service

import (
	"context"
	"testing"
	"time"

	"github.com/dustatron/mcpoker/internal/model"
	"github.com/dustatron/mcpoker/internal/repository/memory"
)

// fixture wires every service onto a shared in-memory store with no caches
// and a controllable clock.
type fixture struct {
	store        *memory.Store
	auth         *AuthService
	rooms        *RoomService
	participants *ParticipantService
	votes        *VoteService
	history      *HistoryService
	messages     *MessageService
	now          time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	auth := NewAuthService("test-secret")
	rooms := NewRoomService(store.Rooms(), store.Participants(), store.Votes(), store.History(), store.Messages(), nil, nil)
	participants := NewParticipantService(store.Participants(), store.Votes(), rooms, nil, auth)
	votes := NewVoteService(store.Votes(), store.Participants(), store.History(), rooms, nil)
	history := NewHistoryService(store.History())
	messages := NewMessageService(store.Messages(), store.Participants())

	f := &fixture{
		store:        store,
		auth:         auth,
		rooms:        rooms,
		participants: participants,
		votes:        votes,
		history:      history,
		messages:     messages,
		now:          time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	clock := func() time.Time { return f.now }
	rooms.now = clock
	participants.now = clock
	votes.now = clock
	messages.now = clock

	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *fixture) createRoom(t *testing.T, name string) *model.Room {
	t.Helper()
	room, err := f.rooms.CreateRoom(context.Background(), name)
	if err != nil {
		t.Fatalf("CreateRoom(%q): %v", name, err)
	}
	return room
}

func (f *fixture) join(t *testing.T, roomID, name string) *model.JoinResponse {
	t.Helper()
	resp, err := f.participants.Join(context.Background(), roomID, name)
	if err != nil {
		t.Fatalf("Join(%q, %q): %v", roomID, name, err)
	}
	return resp
}

func (f *fixture) cast(t *testing.T, roomID, participantID string, value model.VoteValue) string {
	t.Helper()
	voteID, err := f.votes.Cast(context.Background(), roomID, participantID, value)
	if err != nil {
		t.Fatalf("Cast(%q, %q): %v", roomID, participantID, err)
	}
	return voteID
}

// Package memory provides an in-process implementation of the repository
// interfaces. It backs the STORE_DRIVER=memory mode for local development and
// the test suite, so neither needs a running MongoDB.
//
// A single RWMutex serializes every operation, matching the per-operation
// atomicity the document store is assumed to provide. Rows carry an insertion
// sequence so list results and first-match lookups come back in insertion
// order.
package memory

import (
	"sync"

	"github.com/dustatron/mcpoker/internal/model"
	"github.com/dustatron/mcpoker/internal/repository"
)

type roomRow struct {
	seq  int
	room model.Room
}

type participantRow struct {
	seq         int
	participant model.Participant
}

type voteRow struct {
	seq  int
	vote model.Vote
}

type historyRow struct {
	seq   int
	entry model.HistoryEntry
}

type messageRow struct {
	seq     int
	message model.Message
}

// Store holds every entity table behind one lock.
type Store struct {
	mu           sync.RWMutex
	seq          int
	rooms        map[string]*roomRow
	participants map[string]*participantRow
	votes        map[string]*voteRow
	history      map[string]*historyRow
	messages     map[string]*messageRow
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		rooms:        make(map[string]*roomRow),
		participants: make(map[string]*participantRow),
		votes:        make(map[string]*voteRow),
		history:      make(map[string]*historyRow),
		messages:     make(map[string]*messageRow),
	}
}

// Rooms returns the room table as a repository.RoomRepo.
func (s *Store) Rooms() repository.RoomRepo {
	return &roomStore{s}
}

// Participants returns the participant table as a repository.ParticipantRepo.
func (s *Store) Participants() repository.ParticipantRepo {
	return &participantStore{s}
}

// Votes returns the vote table as a repository.VoteRepo.
func (s *Store) Votes() repository.VoteRepo {
	return &voteStore{s}
}

// History returns the history table as a repository.HistoryRepo.
func (s *Store) History() repository.HistoryRepo {
	return &historyStore{s}
}

// Messages returns the message table as a repository.MessageRepo.
func (s *Store) Messages() repository.MessageRepo {
	return &messageStore{s}
}

// nextSeq must be called with the write lock held.
func (s *Store) nextSeq() int {
	s.seq++
	return s.seq
}

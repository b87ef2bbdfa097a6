package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dustatron/mcpoker/internal/model"
)

type participantStore struct {
	s *Store
}

func (r *participantStore) Create(ctx context.Context, participant *model.Participant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.participants[participant.ID] = &participantRow{
		seq:         r.s.nextSeq(),
		participant: *participant,
	}
	return nil
}

func (r *participantStore) GetByID(ctx context.Context, id string) (*model.Participant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.participants[id]
	if !ok {
		return nil, nil
	}
	participant := row.participant
	return &participant, nil
}

// GetByRoomAndName returns the earliest-inserted match, mirroring the
// document store's "first" semantics.
func (r *participantStore) GetByRoomAndName(ctx context.Context, roomID, name string) (*model.Participant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var best *participantRow
	for _, row := range r.s.participants {
		if row.participant.RoomID != roomID || row.participant.Name != name {
			continue
		}
		if best == nil || row.seq < best.seq {
			best = row
		}
	}
	if best == nil {
		return nil, nil
	}
	participant := best.participant
	return &participant, nil
}

func (r *participantStore) ListByRoom(ctx context.Context, roomID string) ([]*model.Participant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.collect(func(p *model.Participant) bool {
		return p.RoomID == roomID
	}), nil
}

func (r *participantStore) ListConnectedBefore(ctx context.Context, cutoff time.Time) ([]*model.Participant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.collect(func(p *model.Participant) bool {
		return p.Connected && p.LastSeen.Before(cutoff)
	}), nil
}

// collect must be called with at least the read lock held.
func (r *participantStore) collect(match func(*model.Participant) bool) []*model.Participant {
	var rows []*participantRow
	for _, row := range r.s.participants {
		if match(&row.participant) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	participants := make([]*model.Participant, 0, len(rows))
	for _, row := range rows {
		participant := row.participant
		participants = append(participants, &participant)
	}
	return participants
}

func (r *participantStore) Update(ctx context.Context, participant *model.Participant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if row, ok := r.s.participants[participant.ID]; ok {
		row.participant = *participant
	}
	return nil
}

func (r *participantStore) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.participants, id)
	return nil
}

func (r *participantStore) DeleteByRoom(ctx context.Context, roomID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	deleted := 0
	for id, row := range r.s.participants {
		if row.participant.RoomID == roomID {
			delete(r.s.participants, id)
			deleted++
		}
	}
	return deleted, nil
}

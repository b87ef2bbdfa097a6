package memory

import (
	"context"
	"sort"

	"github.com/dustatron/mcpoker/internal/model"
)

type voteStore struct {
	s *Store
}

func (r *voteStore) Create(ctx context.Context, vote *model.Vote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.votes[vote.ID] = &voteRow{seq: r.s.nextSeq(), vote: *vote}
	return nil
}

func (r *voteStore) GetByRoomAndParticipant(ctx context.Context, roomID, participantID string) (*model.Vote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var best *voteRow
	for _, row := range r.s.votes {
		if row.vote.RoomID != roomID || row.vote.ParticipantID != participantID {
			continue
		}
		if best == nil || row.seq < best.seq {
			best = row
		}
	}
	if best == nil {
		return nil, nil
	}
	vote := best.vote
	return &vote, nil
}

func (r *voteStore) ListByRoom(ctx context.Context, roomID string) ([]*model.Vote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.collect(func(v *model.Vote) bool {
		return v.RoomID == roomID
	}), nil
}

func (r *voteStore) ListRevealedByRoom(ctx context.Context, roomID string) ([]*model.Vote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.collect(func(v *model.Vote) bool {
		return v.RoomID == roomID && v.Revealed
	}), nil
}

// collect must be called with at least the read lock held.
func (r *voteStore) collect(match func(*model.Vote) bool) []*model.Vote {
	var rows []*voteRow
	for _, row := range r.s.votes {
		if match(&row.vote) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	votes := make([]*model.Vote, 0, len(rows))
	for _, row := range rows {
		vote := row.vote
		votes = append(votes, &vote)
	}
	return votes
}

func (r *voteStore) Update(ctx context.Context, vote *model.Vote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if row, ok := r.s.votes[vote.ID]; ok {
		row.vote = *vote
	}
	return nil
}

func (r *voteStore) SetRevealedByRoom(ctx context.Context, roomID string, revealed bool) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	updated := 0
	for _, row := range r.s.votes {
		if row.vote.RoomID == roomID {
			row.vote.Revealed = revealed
			updated++
		}
	}
	return updated, nil
}

func (r *voteStore) DeleteByRoom(ctx context.Context, roomID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	deleted := 0
	for id, row := range r.s.votes {
		if row.vote.RoomID == roomID {
			delete(r.s.votes, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *voteStore) DeleteByParticipant(ctx context.Context, participantID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	deleted := 0
	for id, row := range r.s.votes {
		if row.vote.ParticipantID == participantID {
			delete(r.s.votes, id)
			deleted++
		}
	}
	return deleted, nil
}

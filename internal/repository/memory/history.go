package memory

import (
	"context"
	"sort"

	"github.com/dustatron/mcpoker/internal/model"
)

type historyStore struct {
	s *Store
}

func (r *historyStore) Create(ctx context.Context, entry *model.HistoryEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *entry
	stored.Votes = append([]model.HistoryVote(nil), entry.Votes...)
	r.s.history[entry.ID] = &historyRow{seq: r.s.nextSeq(), entry: stored}
	return nil
}

func (r *historyStore) ListByRoomDesc(ctx context.Context, roomID string, limit int) ([]*model.HistoryEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []*historyRow
	for _, row := range r.s.history {
		if row.entry.RoomID == roomID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].entry.RoundNumber > rows[j].entry.RoundNumber
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	entries := make([]*model.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entry := row.entry
		entry.Votes = append([]model.HistoryVote(nil), row.entry.Votes...)
		entries = append(entries, &entry)
	}
	return entries, nil
}

func (r *historyStore) LatestByRoom(ctx context.Context, roomID string) (*model.HistoryEntry, error) {
	entries, err := r.ListByRoomDesc(ctx, roomID, 1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0], nil
}

func (r *historyStore) CountByRoom(ctx context.Context, roomID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, row := range r.s.history {
		if row.entry.RoomID == roomID {
			count++
		}
	}
	return count, nil
}

func (r *historyStore) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.history, id)
	return nil
}

func (r *historyStore) DeleteByRoom(ctx context.Context, roomID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	deleted := 0
	for id, row := range r.s.history {
		if row.entry.RoomID == roomID {
			delete(r.s.history, id)
			deleted++
		}
	}
	return deleted, nil
}

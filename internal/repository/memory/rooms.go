package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dustatron/mcpoker/internal/model"
)

type roomStore struct {
	s *Store
}

func (r *roomStore) Create(ctx context.Context, room *model.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.rooms[room.ID] = &roomRow{seq: r.s.nextSeq(), room: *room}
	return nil
}

func (r *roomStore) GetByID(ctx context.Context, id string) (*model.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.rooms[id]
	if !ok {
		return nil, nil
	}
	room := row.room
	return &room, nil
}

func (r *roomStore) Update(ctx context.Context, room *model.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if row, ok := r.s.rooms[room.ID]; ok {
		row.room = *room
	}
	return nil
}

func (r *roomStore) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.rooms, id)
	return nil
}

func (r *roomStore) ListInactiveSince(ctx context.Context, cutoff time.Time) ([]*model.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []*roomRow
	for _, row := range r.s.rooms {
		if row.room.LastActiveAt.Before(cutoff) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	rooms := make([]*model.Room, 0, len(rows))
	for _, row := range rows {
		room := row.room
		rooms = append(rooms, &room)
	}
	return rooms, nil
}

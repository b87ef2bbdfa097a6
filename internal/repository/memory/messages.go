package memory

import (
	"context"
	"sort"

	"github.com/dustatron/mcpoker/internal/model"
)

type messageStore struct {
	s *Store
}

func (r *messageStore) Create(ctx context.Context, message *model.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.messages[message.ID] = &messageRow{seq: r.s.nextSeq(), message: *message}
	return nil
}

func (r *messageStore) ListByRoomAsc(ctx context.Context, roomID string) ([]*model.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []*messageRow
	for _, row := range r.s.messages {
		if row.message.RoomID == roomID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	messages := make([]*model.Message, 0, len(rows))
	for _, row := range rows {
		message := row.message
		messages = append(messages, &message)
	}
	return messages, nil
}

func (r *messageStore) DeleteByRoom(ctx context.Context, roomID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	deleted := 0
	for id, row := range r.s.messages {
		if row.message.RoomID == roomID {
			delete(r.s.messages, id)
			deleted++
		}
	}
	return deleted, nil
}

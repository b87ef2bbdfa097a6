package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dustatron/mcpoker/internal/cache"
	"github.com/dustatron/mcpoker/internal/model"
	"github.com/dustatron/mcpoker/internal/repository"
)

var ErrRoomNotFound = errors.New("room not found")

// inactiveRoomTTL is how long a room may sit without activity before the
// cleanup sweep deletes it and everything it owns.
const inactiveRoomTTL = 24 * time.Hour

// RoomService handles room lifecycle operations
type RoomService struct {
	roomRepo        repository.RoomRepo
	participantRepo repository.ParticipantRepo
	voteRepo        repository.VoteRepo
	historyRepo     repository.HistoryRepo
	messageRepo     repository.MessageRepo
	roomCache       cache.RoomCache
	statusCache     cache.StatusCache
	broadcaster     Broadcaster
	now             func() time.Time
}

// NewRoomService creates a new room service
func NewRoomService(
	roomRepo repository.RoomRepo,
	participantRepo repository.ParticipantRepo,
	voteRepo repository.VoteRepo,
	historyRepo repository.HistoryRepo,
	messageRepo repository.MessageRepo,
	roomCache cache.RoomCache,
	statusCache cache.StatusCache,
) *RoomService {
	return &RoomService{
		roomRepo:        roomRepo,
		participantRepo: participantRepo,
		voteRepo:        voteRepo,
		historyRepo:     historyRepo,
		messageRepo:     messageRepo,
		roomCache:       roomCache,
		statusCache:     statusCache,
		now:             time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *RoomService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// CreateRoom creates a new room with a fresh join code
func (s *RoomService) CreateRoom(ctx context.Context, name string) (*model.Room, error) {
	id, err := s.generateRoomCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate room code: %w", err)
	}

	now := s.now()
	room := &model.Room{
		ID:           id,
		Name:         name,
		CreatedAt:    now,
		LastActiveAt: now,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	if s.roomCache != nil {
		if err := s.roomCache.Set(ctx, room); err != nil {
			return nil, fmt.Errorf("failed to cache room: %w", err)
		}
	}

	return room, nil
}

// GetRoom retrieves a room snapshot, or nil if it does not exist
func (s *RoomService) GetRoom(ctx context.Context, roomID string) (*model.Room, error) {
	if s.roomCache != nil {
		room, err := s.roomCache.Get(ctx, roomID)
		if err == nil && room != nil {
			return room, nil
		}
	}
	return s.roomRepo.GetByID(ctx, roomID)
}

// RenameRoom replaces the room's display name
func (s *RoomService) RenameRoom(ctx context.Context, roomID, newName string) error {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return ErrRoomNotFound
	}

	room.Name = newName
	if err := s.roomRepo.Update(ctx, room); err != nil {
		return err
	}

	if s.roomCache != nil {
		if err := s.roomCache.Set(ctx, room); err != nil {
			return err
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(roomID, EventRoomRenamed, map[string]string{
			"roomId": roomID,
			"name":   newName,
		})
	}
	return nil
}

// TouchActivity refreshes the room's last-activity timestamp. Any
// liveness-producing action (join, heartbeat, vote) funnels through here.
func (s *RoomService) TouchActivity(ctx context.Context, roomID string) error {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return ErrRoomNotFound
	}

	room.LastActiveAt = s.now()
	if err := s.roomRepo.Update(ctx, room); err != nil {
		return err
	}

	if s.roomCache != nil {
		if err := s.roomCache.Set(ctx, room); err != nil {
			return err
		}
	}
	return nil
}

// CleanupInactiveRooms deletes every room idle beyond the 24h window along
// with all of its participants, votes, history, and messages. Safe to
// re-invoke: rooms already removed simply no longer match the scan.
func (s *RoomService) CleanupInactiveRooms(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-inactiveRoomTTL)

	rooms, err := s.roomRepo.ListInactiveSince(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to scan inactive rooms: %w", err)
	}

	cleaned := 0
	for _, room := range rooms {
		if _, err := s.participantRepo.DeleteByRoom(ctx, room.ID); err != nil {
			return cleaned, err
		}
		if _, err := s.voteRepo.DeleteByRoom(ctx, room.ID); err != nil {
			return cleaned, err
		}
		if _, err := s.historyRepo.DeleteByRoom(ctx, room.ID); err != nil {
			return cleaned, err
		}
		if _, err := s.messageRepo.DeleteByRoom(ctx, room.ID); err != nil {
			return cleaned, err
		}
		if err := s.roomRepo.Delete(ctx, room.ID); err != nil {
			return cleaned, err
		}

		if s.roomCache != nil {
			if err := s.roomCache.Delete(ctx, room.ID); err != nil {
				return cleaned, err
			}
		}
		if s.statusCache != nil {
			if err := s.statusCache.Invalidate(ctx, room.ID); err != nil {
				return cleaned, err
			}
		}

		if s.broadcaster != nil {
			s.broadcaster.BroadcastToRoom(room.ID, EventRoomClosed, map[string]string{"roomId": room.ID})
			s.broadcaster.DisconnectRoom(room.ID)
		}
		cleaned++
	}

	if cleaned > 0 {
		log.Info().Int("cleaned_rooms", cleaned).Msg("removed inactive rooms")
	}
	return cleaned, nil
}

// generateRoomCode creates a 6-char alphanumeric join code
func (s *RoomService) generateRoomCode(ctx context.Context) (string, error) {
	const chars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	const codeLen = 6

	for attempts := 0; attempts < 10; attempts++ {
		b := make([]byte, codeLen)
		if _, err := rand.Read(b); err != nil {
			return "", err
		}

		code := make([]byte, codeLen)
		for i := range code {
			code[i] = chars[int(b[i])%len(chars)]
		}
		codeStr := string(code)

		// Check uniqueness
		existing, err := s.roomRepo.GetByID(ctx, codeStr)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return codeStr, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique room code")
}

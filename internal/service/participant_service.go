package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dustatron/mcpoker/internal/cache"
	"github.com/dustatron/mcpoker/internal/model"
	"github.com/dustatron/mcpoker/internal/repository"
)

var ErrParticipantNotFound = errors.New("participant not found")

// defaultParticipantTimeout is how long a connected participant may miss
// heartbeats before the disconnect sweep flags them offline.
const defaultParticipantTimeout = 5 * time.Minute

// ParticipantService handles join, liveness, and leave operations
type ParticipantService struct {
	participantRepo repository.ParticipantRepo
	voteRepo        repository.VoteRepo
	rooms           *RoomService
	statusCache     cache.StatusCache
	authSvc         *AuthService
	broadcaster     Broadcaster
	now             func() time.Time
}

// NewParticipantService creates a new participant service
func NewParticipantService(
	participantRepo repository.ParticipantRepo,
	voteRepo repository.VoteRepo,
	rooms *RoomService,
	statusCache cache.StatusCache,
	authSvc *AuthService,
) *ParticipantService {
	return &ParticipantService{
		participantRepo: participantRepo,
		voteRepo:        voteRepo,
		rooms:           rooms,
		statusCache:     statusCache,
		authSvc:         authSvc,
		now:             time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *ParticipantService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Join adds a participant to a room, or reactivates the existing row when the
// same name already joined. Two concurrent joins under the same name can both
// miss each other's insert and leave a duplicate row; that race is accepted
// (last write wins from then on).
func (s *ParticipantService) Join(ctx context.Context, roomID, name string) (*model.JoinResponse, error) {
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	existing, err := s.participantRepo.GetByRoomAndName(ctx, roomID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up participant: %w", err)
	}

	var participantID string
	if existing != nil {
		existing.Connected = true
		existing.LastSeen = s.now()
		if err := s.participantRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to reactivate participant: %w", err)
		}
		participantID = existing.ID
	} else {
		participantID = "p_" + uuid.New().String()[:8]
		participant := &model.Participant{
			ID:        participantID,
			RoomID:    roomID,
			Name:      name,
			Connected: true,
			LastSeen:  s.now(),
		}
		if err := s.participantRepo.Create(ctx, participant); err != nil {
			return nil, fmt.Errorf("failed to create participant: %w", err)
		}
	}

	token, err := s.authSvc.GenerateParticipantToken(roomID, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.rooms.TouchActivity(ctx, roomID); err != nil {
		return nil, err
	}
	if s.statusCache != nil {
		if err := s.statusCache.Invalidate(ctx, roomID); err != nil {
			return nil, err
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(roomID, EventParticipantJoined, map[string]string{
			"participantId": participantID,
			"name":          name,
		})
	}

	log.Info().Str("room_id", roomID).Str("participant_id", participantID).Str("name", name).Msg("participant joined")

	return &model.JoinResponse{
		ParticipantID: participantID,
		Token:         token,
		Room:          room,
	}, nil
}

// Rename patches the participant's display name. No uniqueness check against
// the rest of the room: two participants may share a name after a rename.
func (s *ParticipantService) Rename(ctx context.Context, participantID, newName string) error {
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return err
	}
	if participant == nil {
		return ErrParticipantNotFound
	}

	participant.Name = newName
	participant.LastSeen = s.now()
	if err := s.participantRepo.Update(ctx, participant); err != nil {
		return err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(participant.RoomID, EventParticipantRenamed, map[string]string{
			"participantId": participantID,
			"name":          newName,
		})
	}
	return nil
}

// SetConnectionStatus flips the connected flag and refreshes last-seen
func (s *ParticipantService) SetConnectionStatus(ctx context.Context, participantID string, connected bool) error {
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return err
	}
	if participant == nil {
		return ErrParticipantNotFound
	}

	participant.Connected = connected
	participant.LastSeen = s.now()
	if err := s.participantRepo.Update(ctx, participant); err != nil {
		return err
	}

	if s.statusCache != nil {
		if err := s.statusCache.Invalidate(ctx, participant.RoomID); err != nil {
			return err
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(participant.RoomID, EventConnectionChanged, map[string]interface{}{
			"participantId": participantID,
			"connected":     connected,
		})
	}
	return nil
}

// Heartbeat refreshes last-seen only; connection state is untouched
func (s *ParticipantService) Heartbeat(ctx context.Context, participantID string) error {
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return err
	}
	if participant == nil {
		return ErrParticipantNotFound
	}

	participant.LastSeen = s.now()
	return s.participantRepo.Update(ctx, participant)
}

// List returns every participant row in a room, connected or not
func (s *ParticipantService) List(ctx context.Context, roomID string) ([]*model.Participant, error) {
	return s.participantRepo.ListByRoom(ctx, roomID)
}

// Get returns a participant by id, or nil if absent
func (s *ParticipantService) Get(ctx context.Context, participantID string) (*model.Participant, error) {
	return s.participantRepo.GetByID(ctx, participantID)
}

// DisconnectInactive flips connected=false on every participant whose last
// heartbeat is older than the timeout. Rows are never deleted here; only an
// explicit leave does that. A zero or negative timeout uses the 5m default.
func (s *ParticipantService) DisconnectInactive(ctx context.Context, timeout time.Duration) (int, error) {
	if timeout <= 0 {
		timeout = defaultParticipantTimeout
	}
	cutoff := s.now().Add(-timeout)

	inactive, err := s.participantRepo.ListConnectedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to scan inactive participants: %w", err)
	}

	for _, participant := range inactive {
		participant.Connected = false
		if err := s.participantRepo.Update(ctx, participant); err != nil {
			return 0, err
		}
		if s.statusCache != nil {
			if err := s.statusCache.Invalidate(ctx, participant.RoomID); err != nil {
				return 0, err
			}
		}
		if s.broadcaster != nil {
			s.broadcaster.BroadcastToRoom(participant.RoomID, EventConnectionChanged, map[string]interface{}{
				"participantId": participant.ID,
				"connected":     false,
			})
		}
	}

	if len(inactive) > 0 {
		log.Info().Int("disconnected", len(inactive)).Msg("flagged inactive participants")
	}
	return len(inactive), nil
}

// Leave deletes the participant and their current-round votes
func (s *ParticipantService) Leave(ctx context.Context, participantID string) (*model.LeaveResult, error) {
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	deletedVotes, err := s.voteRepo.DeleteByParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete votes: %w", err)
	}

	if err := s.participantRepo.Delete(ctx, participantID); err != nil {
		return nil, fmt.Errorf("failed to delete participant: %w", err)
	}

	if s.statusCache != nil {
		if err := s.statusCache.Invalidate(ctx, participant.RoomID); err != nil {
			return nil, err
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(participant.RoomID, EventParticipantLeft, map[string]string{
			"participantId": participantID,
			"name":          participant.Name,
		})
	}

	return &model.LeaveResult{
		DeletedParticipant: participant.Name,
		DeletedVotes:       deletedVotes,
	}, nil
}

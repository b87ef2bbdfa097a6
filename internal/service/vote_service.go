package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dustatron/mcpoker/internal/cache"
	"github.com/dustatron/mcpoker/internal/model"
	"github.com/dustatron/mcpoker/internal/repository"
)

// VoteService handles the current round's vote ledger
type VoteService struct {
	voteRepo        repository.VoteRepo
	participantRepo repository.ParticipantRepo
	historyRepo     repository.HistoryRepo
	rooms           *RoomService
	statusCache     cache.StatusCache
	broadcaster     Broadcaster
	now             func() time.Time
}

// NewVoteService creates a new vote service
func NewVoteService(
	voteRepo repository.VoteRepo,
	participantRepo repository.ParticipantRepo,
	historyRepo repository.HistoryRepo,
	rooms *RoomService,
	statusCache cache.StatusCache,
) *VoteService {
	return &VoteService{
		voteRepo:        voteRepo,
		participantRepo: participantRepo,
		historyRepo:     historyRepo,
		rooms:           rooms,
		statusCache:     statusCache,
		now:             time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *VoteService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Cast records or replaces the participant's vote for the current round.
// Casting is idempotent overwrite: the existing row's value is replaced in
// place and its revealed flag is left alone.
func (s *VoteService) Cast(ctx context.Context, roomID, participantID string, value model.VoteValue) (string, error) {
	existing, err := s.voteRepo.GetByRoomAndParticipant(ctx, roomID, participantID)
	if err != nil {
		return "", fmt.Errorf("failed to look up vote: %w", err)
	}

	var voteID string
	if existing != nil {
		existing.Value = value
		if err := s.voteRepo.Update(ctx, existing); err != nil {
			return "", fmt.Errorf("failed to update vote: %w", err)
		}
		voteID = existing.ID
	} else {
		voteID = "v_" + uuid.New().String()[:8]
		vote := &model.Vote{
			ID:            voteID,
			RoomID:        roomID,
			ParticipantID: participantID,
			Value:         value,
			Revealed:      false,
		}
		if err := s.voteRepo.Create(ctx, vote); err != nil {
			return "", fmt.Errorf("failed to create vote: %w", err)
		}
	}

	if err := s.rooms.TouchActivity(ctx, roomID); err != nil {
		return "", err
	}
	if s.statusCache != nil {
		if err := s.statusCache.Invalidate(ctx, roomID); err != nil {
			return "", err
		}
	}

	// The value stays hidden until reveal; subscribers only learn that the
	// participant has (or no longer has) a counted vote.
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(roomID, EventVoteCast, map[string]interface{}{
			"participantId": participantID,
			"hasVote":       value.Counted(),
		})
	}

	return voteID, nil
}

// ToggleReveal sets the room-wide revealed flag on every vote row. New votes
// cast while the bulk update runs may or may not be included; the room
// converges on the next toggle.
func (s *VoteService) ToggleReveal(ctx context.Context, roomID string, revealed bool) (int, error) {
	updated, err := s.voteRepo.SetRevealedByRoom(ctx, roomID, revealed)
	if err != nil {
		return 0, fmt.Errorf("failed to toggle reveal: %w", err)
	}

	if s.statusCache != nil {
		if err := s.statusCache.Invalidate(ctx, roomID); err != nil {
			return 0, err
		}
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(roomID, EventRevealToggled, map[string]interface{}{
			"revealed": revealed,
		})
	}

	return updated, nil
}

// VotesInRoom returns every vote row in the room
func (s *VoteService) VotesInRoom(ctx context.Context, roomID string) ([]*model.Vote, error) {
	return s.voteRepo.ListByRoom(ctx, roomID)
}

// Status derives the aggregate voting state of a room
func (s *VoteService) Status(ctx context.Context, roomID string) (*model.VoteStatus, error) {
	if s.statusCache != nil {
		status, err := s.statusCache.Get(ctx, roomID)
		if err == nil && status != nil {
			return status, nil
		}
	}

	votes, err := s.voteRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	participants, err := s.participantRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	totalParticipants := 0
	for _, p := range participants {
		if p.Connected {
			totalParticipants++
		}
	}

	votedCount := 0
	for _, v := range votes {
		if v.Value.Counted() {
			votedCount++
		}
	}

	// All rows share the room-wide revealed value; the first row is as good
	// as any. No votes means not revealed.
	revealed := false
	if len(votes) > 0 {
		revealed = votes[0].Revealed
	}

	status := &model.VoteStatus{
		TotalParticipants: totalParticipants,
		VotedCount:        votedCount,
		Revealed:          revealed,
		AllVoted:          votedCount == totalParticipants && totalParticipants > 0,
	}

	if s.statusCache != nil {
		if err := s.statusCache.Set(ctx, roomID, status); err != nil {
			return nil, err
		}
	}
	return status, nil
}

// Reset archives the revealed round, if any, and clears every vote in the
// room. Only revealed votes with a counted value make it into history; a
// reset with none of those clears the ledger without recording an empty
// round. The archive-then-clear sequence is not atomic across store calls: a
// failure in between can leave the round both archived and still on the
// board, which a retry resolves.
func (s *VoteService) Reset(ctx context.Context, roomID string) (int, error) {
	revealed, err := s.voteRepo.ListRevealedByRoom(ctx, roomID)
	if err != nil {
		return 0, fmt.Errorf("failed to list revealed votes: %w", err)
	}

	if len(revealed) > 0 {
		var snapshot []model.HistoryVote
		for _, vote := range revealed {
			if !vote.Value.Counted() {
				continue
			}
			participant, err := s.participantRepo.GetByID(ctx, vote.ParticipantID)
			if err != nil {
				return 0, fmt.Errorf("failed to resolve participant: %w", err)
			}
			if participant == nil {
				continue
			}
			snapshot = append(snapshot, model.HistoryVote{
				Name:  participant.Name,
				Value: vote.Value,
			})
		}

		if len(snapshot) > 0 {
			latest, err := s.historyRepo.LatestByRoom(ctx, roomID)
			if err != nil {
				return 0, fmt.Errorf("failed to get latest round: %w", err)
			}
			roundNumber := 1
			if latest != nil {
				roundNumber = latest.RoundNumber + 1
			}

			entry := &model.HistoryEntry{
				ID:          "h_" + uuid.New().String()[:8],
				RoomID:      roomID,
				RoundNumber: roundNumber,
				Votes:       snapshot,
				CreatedAt:   s.now(),
			}
			if err := s.historyRepo.Create(ctx, entry); err != nil {
				return 0, fmt.Errorf("failed to archive round: %w", err)
			}

			if err := s.trimHistory(ctx, roomID); err != nil {
				return 0, err
			}

			log.Info().Str("room_id", roomID).Int("round", roundNumber).Int("votes", len(snapshot)).Msg("archived round")
		}
	}

	cleared, err := s.voteRepo.DeleteByRoom(ctx, roomID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear votes: %w", err)
	}

	if s.statusCache != nil {
		if err := s.statusCache.Invalidate(ctx, roomID); err != nil {
			return 0, err
		}
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(roomID, EventVotesReset, map[string]interface{}{
			"clearedVotes": cleared,
		})
	}

	return cleared, nil
}

// trimHistory drops entries beyond the retention window, oldest first
func (s *VoteService) trimHistory(ctx context.Context, roomID string) error {
	entries, err := s.historyRepo.ListByRoomDesc(ctx, roomID, 0)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}
	if len(entries) <= model.HistoryRetention {
		return nil
	}
	for _, entry := range entries[model.HistoryRetention:] {
		if err := s.historyRepo.Delete(ctx, entry.ID); err != nil {
			return fmt.Errorf("failed to trim history: %w", err)
		}
	}
	return nil
}

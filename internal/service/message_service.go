package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dustatron/mcpoker/internal/model"
	"github.com/dustatron/mcpoker/internal/repository"
)

// MessageService handles room chat
type MessageService struct {
	messageRepo     repository.MessageRepo
	participantRepo repository.ParticipantRepo
	broadcaster     Broadcaster
	now             func() time.Time
}

// NewMessageService creates a new message service
func NewMessageService(messageRepo repository.MessageRepo, participantRepo repository.ParticipantRepo) *MessageService {
	return &MessageService{
		messageRepo:     messageRepo,
		participantRepo: participantRepo,
		now:             time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *MessageService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Send posts a message to the room on behalf of a participant
func (s *MessageService) Send(ctx context.Context, roomID, participantID, body string) (*model.MessageView, error) {
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve participant: %w", err)
	}
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	message := &model.Message{
		ID:            "m_" + uuid.New().String()[:8],
		RoomID:        roomID,
		ParticipantID: participantID,
		Body:          body,
		CreatedAt:     s.now(),
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	view := &model.MessageView{Message: *message, Author: participant.Name}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(roomID, EventMessageSent, view)
	}
	return view, nil
}

// List returns the room's messages oldest first, with author names resolved.
// Messages outlive their authors; those fall back to "anonymous".
func (s *MessageService) List(ctx context.Context, roomID string) ([]*model.MessageView, error) {
	messages, err := s.messageRepo.ListByRoomAsc(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	views := make([]*model.MessageView, 0, len(messages))
	for _, message := range messages {
		author := "anonymous"
		participant, err := s.participantRepo.GetByID(ctx, message.ParticipantID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve author: %w", err)
		}
		if participant != nil {
			author = participant.Name
		}
		views = append(views, &model.MessageView{Message: *message, Author: author})
	}
	return views, nil
}

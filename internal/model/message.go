package model

import "time"

// Message is a chat line posted inside a room.
type Message struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	RoomID        string    `json:"roomId" bson:"roomId"`
	ParticipantID string    `json:"participantId" bson:"participantId"`
	Body          string    `json:"body" bson:"body"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// MessageView is a message with its author name resolved for display. Author
// falls back to "anonymous" when the participant row no longer exists.
type MessageView struct {
	Message
	Author string `json:"author"`
}

package model

import "time"

// Participant represents a named actor within exactly one room.
//
// Join is find-or-create by (room, name): rejoining under the same name
// reactivates the existing row instead of inserting a duplicate. Liveness is
// tracked through LastSeen heartbeats; Connected is flipped off by the
// disconnect sweep or an explicit status update, never deleted by it.
type Participant struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	RoomID    string    `json:"roomId" bson:"roomId"`
	Name      string    `json:"name" bson:"name"`
	Connected bool      `json:"connected" bson:"connected"`
	LastSeen  time.Time `json:"lastSeen" bson:"lastSeen"`
}

// JoinResponse is returned when a participant joins a room.
type JoinResponse struct {
	ParticipantID string `json:"participantId"`
	Token         string `json:"token"`
	Room          *Room  `json:"room"`
}

// LeaveResult confirms what an explicit leave removed.
type LeaveResult struct {
	DeletedParticipant string `json:"deletedParticipant"`
	DeletedVotes       int    `json:"deletedVotes"`
}

// DisconnectResult reports how many participants a disconnect sweep flagged.
type DisconnectResult struct {
	DisconnectedCount int `json:"disconnectedCount"`
}

package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToRoom(roomID string, msgType string, payload interface{})
	DisconnectRoom(roomID string)
}

// Event names pushed to room subscribers.
const (
	EventRoomRenamed        = "room_renamed"
	EventRoomClosed         = "room_closed"
	EventParticipantJoined  = "participant_joined"
	EventParticipantLeft    = "participant_left"
	EventParticipantRenamed = "participant_renamed"
	EventConnectionChanged  = "connection_changed"
	EventVoteCast           = "vote_cast"
	EventRevealToggled      = "reveal_toggled"
	EventVotesReset         = "votes_reset"
	EventMessageSent        = "message_sent"
)

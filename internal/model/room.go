package model

import "time"

// Room is a named voting session container. The ID doubles as the join code
// shown to participants.
type Room struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	LastActiveAt time.Time `json:"lastActiveAt" bson:"lastActiveAt"`
}

// CleanupResult reports how many idle rooms a cleanup sweep removed.
type CleanupResult struct {
	CleanedRooms int `json:"cleanedRooms"`
}

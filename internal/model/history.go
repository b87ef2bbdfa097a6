package model

import "time"

// HistoryRetention caps how many archived rounds a room keeps. Older entries
// are trimmed right after a new one is inserted.
const HistoryRetention = 99

// HistoryVote is one participant's revealed estimate captured at reset time.
type HistoryVote struct {
	Name  string    `json:"name" bson:"name"`
	Value VoteValue `json:"value" bson:"value"`
}

// HistoryEntry is an archived snapshot of one completed, revealed voting
// round. Round numbers are strictly increasing per room; after retention
// trimming they are not renumbered, so gaps at the old end are expected.
type HistoryEntry struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	RoomID      string        `json:"roomId" bson:"roomId"`
	RoundNumber int           `json:"roundNumber" bson:"roundNumber"`
	Votes       []HistoryVote `json:"votes" bson:"votes"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
}

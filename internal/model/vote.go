package model

// VoteKind discriminates the states a participant's estimate can be in.
type VoteKind string

const (
	// VoteKindNone means the participant has explicitly cleared their vote.
	VoteKindNone VoteKind = "none"
	// VoteKindPass is an abstain: it counts as a cast vote but carries no
	// point estimate.
	VoteKindPass VoteKind = "pass"
	// VoteKindEstimate carries a numeric point estimate.
	VoteKindEstimate VoteKind = "estimate"
)

// VoteValue is a tagged variant rather than a magic sentinel, so negative
// estimates can never collide with an abstain marker.
type VoteValue struct {
	Kind   VoteKind `json:"kind" bson:"kind"`
	Points float64  `json:"points,omitempty" bson:"points,omitempty"`
}

// NoVote returns the cleared-vote value.
func NoVote() VoteValue {
	return VoteValue{Kind: VoteKindNone}
}

// PassVote returns an abstain value.
func PassVote() VoteValue {
	return VoteValue{Kind: VoteKindPass}
}

// Estimate returns a numeric estimate value.
func Estimate(points float64) VoteValue {
	return VoteValue{Kind: VoteKindEstimate, Points: points}
}

// Counted reports whether the value counts as a cast vote. Passes count;
// cleared votes do not.
func (v VoteValue) Counted() bool {
	return v.Kind == VoteKindPass || v.Kind == VoteKindEstimate
}

// Vote is a participant's current-round estimate within a room. Revealed is a
// room-wide property duplicated onto every vote row in that room; it is only
// changed through bulk updates scoped to the room.
type Vote struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	RoomID        string    `json:"roomId" bson:"roomId"`
	ParticipantID string    `json:"participantId" bson:"participantId"`
	Value         VoteValue `json:"value" bson:"value"`
	Revealed      bool      `json:"revealed" bson:"revealed"`
}

// VoteStatus is the aggregate voting state of a room. TotalParticipants
// counts connected participants only.
type VoteStatus struct {
	TotalParticipants int  `json:"totalParticipants"`
	VotedCount        int  `json:"votedCount"`
	Revealed          bool `json:"revealed"`
	AllVoted          bool `json:"allVoted"`
}

// RevealResult reports how many vote rows a reveal toggle touched.
type RevealResult struct {
	UpdatedVotes int `json:"updatedVotes"`
}

// ResetResult reports how many vote rows a round reset cleared.
type ResetResult struct {
	ClearedVotes int `json:"clearedVotes"`
}

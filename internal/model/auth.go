package model

import "github.com/golang-jwt/jwt/v5"

// ParticipantClaims scope a session token to one participant in one room.
type ParticipantClaims struct {
	RoomID        string `json:"roomId"`
	ParticipantID string `json:"participantId"`
	jwt.RegisteredClaims
}

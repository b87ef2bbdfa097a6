package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dustatron/mcpoker/internal/model"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AuthService issues and validates participant session tokens. Identity is
// still just the display name supplied by the caller; the token only binds a
// participant id to its room for the transport layer.
type AuthService struct {
	jwtSecret []byte
}

// NewAuthService creates a new auth service
func NewAuthService(secret string) *AuthService {
	if secret == "" {
		secret = "dev-secret-change-in-production"
	}
	return &AuthService{jwtSecret: []byte(secret)}
}

// GenerateParticipantToken creates a room-scoped token for a participant
func (s *AuthService) GenerateParticipantToken(roomID, participantID string) (string, error) {
	claims := &model.ParticipantClaims{
		RoomID:        roomID,
		ParticipantID: participantID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // Matches room idle TTL
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateParticipantToken validates a participant JWT and returns claims
func (s *AuthService) ValidateParticipantToken(tokenString string) (*model.ParticipantClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.ParticipantClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.ParticipantClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

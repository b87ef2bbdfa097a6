package service

import (
	"errors"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := NewAuthService("test-secret")

	token, err := auth.GenerateParticipantToken("ABC234", "p_12345678")
	if err != nil {
		t.Fatalf("GenerateParticipantToken: %v", err)
	}

	claims, err := auth.ValidateParticipantToken(token)
	if err != nil {
		t.Fatalf("ValidateParticipantToken: %v", err)
	}
	if claims.RoomID != "ABC234" {
		t.Errorf("RoomID = %q, want ABC234", claims.RoomID)
	}
	if claims.ParticipantID != "p_12345678" {
		t.Errorf("ParticipantID = %q, want p_12345678", claims.ParticipantID)
	}
}

func TestValidateGarbageToken(t *testing.T) {
	auth := NewAuthService("test-secret")

	_, err := auth.ValidateParticipantToken("not-a-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewAuthService("secret-one")
	verifier := NewAuthService("secret-two")

	token, err := issuer.GenerateParticipantToken("ABC234", "p_12345678")
	if err != nil {
		t.Fatalf("GenerateParticipantToken: %v", err)
	}

	_, err = verifier.ValidateParticipantToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken for cross-secret token", err)
	}
}

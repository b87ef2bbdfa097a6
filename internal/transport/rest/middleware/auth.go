package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dustatron/mcpoker/internal/service"
)

type contextKey string

const (
	ParticipantIDKey contextKey = "participantId"
	RoomIDKey        contextKey = "roomId"
)

// AuthMiddleware provides participant token middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireParticipant validates the participant JWT from the Authorization
// header (or token query param) and stores its claims on the context.
func (m *AuthMiddleware) RequireParticipant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			http.Error(w, `{"error":"missing authorization"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateParticipantToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, ParticipantIDKey, claims.ParticipantID)
		ctx = context.WithValue(ctx, RoomIDKey, claims.RoomID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetParticipantID extracts the participant id from context
func GetParticipantID(ctx context.Context) string {
	if v := ctx.Value(ParticipantIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetRoomID extracts the token's room id from context
func GetRoomID(ctx context.Context) string {
	if v := ctx.Value(RoomIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/dustatron/mcpoker/internal/service"
	"github.com/dustatron/mcpoker/internal/transport/rest/handler"
	"github.com/dustatron/mcpoker/internal/transport/rest/middleware"
	"github.com/dustatron/mcpoker/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService        *service.AuthService
	RoomService        *service.RoomService
	ParticipantService *service.ParticipantService
	VoteService        *service.VoteService
	HistoryService     *service.HistoryService
	MessageService     *service.MessageService
	WSHub              *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	roomHandler := handler.NewRoomHandler(c.RoomService, c.ParticipantService)
	participantHandler := handler.NewParticipantHandler(c.ParticipantService, c.RoomService)
	voteHandler := handler.NewVoteHandler(c.VoteService)
	historyHandler := handler.NewHistoryHandler(c.HistoryService)
	messageHandler := handler.NewMessageHandler(c.MessageService)
	maintenanceHandler := handler.NewMaintenanceHandler(c.RoomService, c.ParticipantService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.ParticipantService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes: identity is supplied by the caller, so room creation,
	// lookup, rename, and join need no token.
	v1.HandleFunc("/rooms", roomHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/rooms/{roomId}", roomHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/rooms/{roomId}/name", roomHandler.Rename).Methods("PUT", "OPTIONS")
	v1.HandleFunc("/rooms/{roomId}/join", roomHandler.Join).Methods("POST", "OPTIONS")

	// Maintenance sweeps, externally scheduled
	v1.HandleFunc("/maintenance/rooms/cleanup", maintenanceHandler.CleanupRooms).Methods("POST", "OPTIONS")
	v1.HandleFunc("/maintenance/participants/disconnect", maintenanceHandler.DisconnectInactive).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/rooms/{roomId}", wsHandler.RoomWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Participant routes (require token from join)
	participantRoutes := v1.NewRoute().Subrouter()
	participantRoutes.Use(authMW.RequireParticipant)

	participantRoutes.HandleFunc("/participants/name", participantHandler.Rename).Methods("PUT", "OPTIONS")
	participantRoutes.HandleFunc("/participants/connection", participantHandler.SetConnection).Methods("PUT", "OPTIONS")
	participantRoutes.HandleFunc("/participants/heartbeat", participantHandler.Heartbeat).Methods("POST", "OPTIONS")
	participantRoutes.HandleFunc("/participants/leave", participantHandler.Leave).Methods("POST", "OPTIONS")

	participantRoutes.HandleFunc("/rooms/{roomId}/participants", participantHandler.List).Methods("GET", "OPTIONS")
	participantRoutes.HandleFunc("/rooms/{roomId}/votes", voteHandler.Cast).Methods("POST", "OPTIONS")
	participantRoutes.HandleFunc("/rooms/{roomId}/votes", voteHandler.List).Methods("GET", "OPTIONS")
	participantRoutes.HandleFunc("/rooms/{roomId}/votes/status", voteHandler.Status).Methods("GET", "OPTIONS")
	participantRoutes.HandleFunc("/rooms/{roomId}/reveal", voteHandler.Reveal).Methods("PUT", "OPTIONS")
	participantRoutes.HandleFunc("/rooms/{roomId}/reset", voteHandler.Reset).Methods("POST", "OPTIONS")
	participantRoutes.HandleFunc("/rooms/{roomId}/history", historyHandler.List).Methods("GET", "OPTIONS")
	participantRoutes.HandleFunc("/rooms/{roomId}/history/latest", historyHandler.Latest).Methods("GET", "OPTIONS")
	participantRoutes.HandleFunc("/rooms/{roomId}/history/count", historyHandler.Count).Methods("GET", "OPTIONS")
	participantRoutes.HandleFunc("/rooms/{roomId}/messages", messageHandler.Send).Methods("POST", "OPTIONS")
	participantRoutes.HandleFunc("/rooms/{roomId}/messages", messageHandler.List).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dustatron/mcpoker/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler handles WebSocket connections
type Handler struct {
	hub            *Hub
	authSvc        *service.AuthService
	participantSvc *service.ParticipantService
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, authSvc *service.AuthService, participantSvc *service.ParticipantService) *Handler {
	return &Handler{
		hub:            hub,
		authSvc:        authSvc,
		participantSvc: participantSvc,
	}
}

// RoomWS handles GET /v1/ws/rooms/{roomId}
func (h *Handler) RoomWS(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]
	token := r.URL.Query().Get("token")

	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.authSvc.ValidateParticipantToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if claims.RoomID != roomID {
		http.Error(w, "token not valid for this room", http.StatusForbidden)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	conn := &Connection{
		RoomID:        roomID,
		ParticipantID: claims.ParticipantID,
		Send:          make(chan []byte, 256),
		Hub:           h.hub,
	}

	h.hub.Register(conn)

	// The socket itself is the connection signal: mark the participant
	// connected now and disconnected when the socket drops. The heartbeat
	// sweep still covers clients that vanish without a close frame.
	if err := h.participantSvc.SetConnectionStatus(r.Context(), claims.ParticipantID, true); err != nil {
		log.Warn().Err(err).Str("participant_id", claims.ParticipantID).Msg("failed to mark connected")
	}

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
		if err := h.participantSvc.SetConnectionStatus(context.Background(), conn.ParticipantID, false); err != nil {
			log.Warn().Err(err).Str("participant_id", conn.ParticipantID).Msg("failed to mark disconnected")
		}
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, _, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Msg("websocket read error")
			}
			break
		}
		// Clients don't send events over the socket; mutations go through
		// the REST API.
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

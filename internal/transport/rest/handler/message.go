package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dustatron/mcpoker/internal/service"
	"github.com/dustatron/mcpoker/internal/transport/rest/middleware"
)

// maxMessageLen bounds chat message bodies.
const maxMessageLen = 500

// MessageHandler handles room chat endpoints
type MessageHandler struct {
	messageSvc *service.MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageSvc *service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// SendRequest is the request body for posting a message
type SendRequest struct {
	Body string `json:"body"`
}

// Send handles POST /v1/rooms/{roomId}/messages
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomFromToken(w, r)
	if !ok {
		return
	}

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Body == "" || len(req.Body) > maxMessageLen {
		writeError(w, http.StatusBadRequest, "body must be 1-500 characters")
		return
	}

	participantID := middleware.GetParticipantID(r.Context())
	message, err := h.messageSvc.Send(r.Context(), roomID, participantID, req.Body)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, message)
}

// List handles GET /v1/rooms/{roomId}/messages
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomFromToken(w, r)
	if !ok {
		return
	}

	messages, err := h.messageSvc.List(r.Context(), roomID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dustatron/mcpoker/internal/service"
	"github.com/dustatron/mcpoker/internal/transport/rest/middleware"
)

// ParticipantHandler handles participant endpoints
type ParticipantHandler struct {
	participantSvc *service.ParticipantService
	roomSvc        *service.RoomService
}

// NewParticipantHandler creates a new participant handler
func NewParticipantHandler(participantSvc *service.ParticipantService, roomSvc *service.RoomService) *ParticipantHandler {
	return &ParticipantHandler{
		participantSvc: participantSvc,
		roomSvc:        roomSvc,
	}
}

// List handles GET /v1/rooms/{roomId}/participants
func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]
	if middleware.GetRoomID(r.Context()) != roomID {
		writeError(w, http.StatusForbidden, "token not valid for this room")
		return
	}

	participants, err := h.participantSvc.List(r.Context(), roomID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"participants": participants})
}

// RenameRequest is the request body for renaming a participant
type RenameRequest struct {
	Name string `json:"name"`
}

// Rename handles PUT /v1/participants/name
func (h *ParticipantHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validName(req.Name) {
		writeError(w, http.StatusBadRequest, "name must be 1-50 characters")
		return
	}

	participantID := middleware.GetParticipantID(r.Context())
	if err := h.participantSvc.Rename(r.Context(), participantID, req.Name); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ConnectionRequest is the request body for a connection status update
type ConnectionRequest struct {
	Connected bool `json:"connected"`
}

// SetConnection handles PUT /v1/participants/connection
func (h *ParticipantHandler) SetConnection(w http.ResponseWriter, r *http.Request) {
	var req ConnectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	participantID := middleware.GetParticipantID(r.Context())
	if err := h.participantSvc.SetConnectionStatus(r.Context(), participantID, req.Connected); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Heartbeat handles POST /v1/participants/heartbeat. Each beat also counts
// as room activity, keeping the room clear of the idle-cleanup sweep.
func (h *ParticipantHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	participantID := middleware.GetParticipantID(r.Context())
	roomID := middleware.GetRoomID(r.Context())

	if err := h.participantSvc.Heartbeat(r.Context(), participantID); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.roomSvc.TouchActivity(r.Context(), roomID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Leave handles POST /v1/participants/leave
func (h *ParticipantHandler) Leave(w http.ResponseWriter, r *http.Request) {
	participantID := middleware.GetParticipantID(r.Context())

	result, err := h.participantSvc.Leave(r.Context(), participantID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dustatron/mcpoker/internal/service"
)

// RoomHandler handles room endpoints
type RoomHandler struct {
	roomSvc        *service.RoomService
	participantSvc *service.ParticipantService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomSvc *service.RoomService, participantSvc *service.ParticipantService) *RoomHandler {
	return &RoomHandler{
		roomSvc:        roomSvc,
		participantSvc: participantSvc,
	}
}

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	Name string `json:"name"`
}

// Create handles POST /v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validName(req.Name) {
		writeError(w, http.StatusBadRequest, "name must be 1-50 characters")
		return
	}

	room, err := h.roomSvc.CreateRoom(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, room)
}

// Get handles GET /v1/rooms/{roomId}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]

	room, err := h.roomSvc.GetRoom(r.Context(), roomID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if room == nil {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}

	writeJSON(w, http.StatusOK, room)
}

// RenameRoomRequest is the request body for renaming a room
type RenameRoomRequest struct {
	Name string `json:"name"`
}

// Rename handles PUT /v1/rooms/{roomId}/name
func (h *RoomHandler) Rename(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]

	var req RenameRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validName(req.Name) {
		writeError(w, http.StatusBadRequest, "name must be 1-50 characters")
		return
	}

	if err := h.roomSvc.RenameRoom(r.Context(), roomID, req.Name); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// JoinRequest is the request body for joining a room
type JoinRequest struct {
	Name string `json:"name"`
}

// Join handles POST /v1/rooms/{roomId}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["roomId"]

	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validName(req.Name) {
		writeError(w, http.StatusBadRequest, "name must be 1-50 characters")
		return
	}

	resp, err := h.participantSvc.Join(r.Context(), roomID, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

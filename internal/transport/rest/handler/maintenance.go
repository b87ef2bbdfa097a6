package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dustatron/mcpoker/internal/model"
	"github.com/dustatron/mcpoker/internal/service"
)

// MaintenanceHandler exposes the liveness sweeps to external schedulers.
// They are also run on an interval by cmd/sweeper; both paths hit the same
// idempotent operations.
type MaintenanceHandler struct {
	roomSvc        *service.RoomService
	participantSvc *service.ParticipantService
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(roomSvc *service.RoomService, participantSvc *service.ParticipantService) *MaintenanceHandler {
	return &MaintenanceHandler{
		roomSvc:        roomSvc,
		participantSvc: participantSvc,
	}
}

// CleanupRooms handles POST /v1/maintenance/rooms/cleanup
func (h *MaintenanceHandler) CleanupRooms(w http.ResponseWriter, r *http.Request) {
	cleaned, err := h.roomSvc.CleanupInactiveRooms(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.CleanupResult{CleanedRooms: cleaned})
}

// DisconnectRequest is the request body for the disconnect sweep
type DisconnectRequest struct {
	TimeoutMinutes int `json:"timeoutMinutes"`
}

// DisconnectInactive handles POST /v1/maintenance/participants/disconnect
func (h *MaintenanceHandler) DisconnectInactive(w http.ResponseWriter, r *http.Request) {
	var req DisconnectRequest
	if r.Body != nil {
		// Body is optional; a missing or empty one uses the default timeout.
		json.NewDecoder(r.Body).Decode(&req)
	}

	timeout := time.Duration(req.TimeoutMinutes) * time.Minute
	disconnected, err := h.participantSvc.DisconnectInactive(r.Context(), timeout)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.DisconnectResult{DisconnectedCount: disconnected})
}

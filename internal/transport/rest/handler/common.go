package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dustatron/mcpoker/internal/service"
)

// maxNameLen bounds room, participant, and message display names.
const maxNameLen = 50

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// NotFound sentinels become 404, everything else is a store failure.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrParticipantNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// validName enforces the transport-layer name constraint the core leaves to
// its callers.
func validName(name string) bool {
	return name != "" && len(name) <= maxNameLen
}

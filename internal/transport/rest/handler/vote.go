package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dustatron/mcpoker/internal/model"
	"github.com/dustatron/mcpoker/internal/service"
	"github.com/dustatron/mcpoker/internal/transport/rest/middleware"
)

// VoteHandler handles vote ledger endpoints
type VoteHandler struct {
	voteSvc *service.VoteService
}

// NewVoteHandler creates a new vote handler
func NewVoteHandler(voteSvc *service.VoteService) *VoteHandler {
	return &VoteHandler{voteSvc: voteSvc}
}

// roomFromToken resolves the path room and rejects tokens scoped elsewhere
func roomFromToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	roomID := mux.Vars(r)["roomId"]
	if middleware.GetRoomID(r.Context()) != roomID {
		writeError(w, http.StatusForbidden, "token not valid for this room")
		return "", false
	}
	return roomID, true
}

// CastRequest is the request body for casting a vote
type CastRequest struct {
	Value model.VoteValue `json:"value"`
}

// Cast handles POST /v1/rooms/{roomId}/votes
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomFromToken(w, r)
	if !ok {
		return
	}

	var req CastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	switch req.Value.Kind {
	case model.VoteKindNone, model.VoteKindPass, model.VoteKindEstimate:
	default:
		writeError(w, http.StatusBadRequest, "value.kind must be none, pass, or estimate")
		return
	}

	participantID := middleware.GetParticipantID(r.Context())
	voteID, err := h.voteSvc.Cast(r.Context(), roomID, participantID, req.Value)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"voteId": voteID})
}

// List handles GET /v1/rooms/{roomId}/votes
func (h *VoteHandler) List(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomFromToken(w, r)
	if !ok {
		return
	}

	votes, err := h.voteSvc.VotesInRoom(r.Context(), roomID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"votes": votes})
}

// Status handles GET /v1/rooms/{roomId}/votes/status
func (h *VoteHandler) Status(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomFromToken(w, r)
	if !ok {
		return
	}

	status, err := h.voteSvc.Status(r.Context(), roomID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// RevealRequest is the request body for toggling reveal
type RevealRequest struct {
	Revealed bool `json:"revealed"`
}

// Reveal handles PUT /v1/rooms/{roomId}/reveal
func (h *VoteHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomFromToken(w, r)
	if !ok {
		return
	}

	var req RevealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.voteSvc.ToggleReveal(r.Context(), roomID, req.Revealed)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.RevealResult{UpdatedVotes: updated})
}

// Reset handles POST /v1/rooms/{roomId}/reset
func (h *VoteHandler) Reset(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomFromToken(w, r)
	if !ok {
		return
	}

	cleared, err := h.voteSvc.Reset(r.Context(), roomID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ResetResult{ClearedVotes: cleared})
}

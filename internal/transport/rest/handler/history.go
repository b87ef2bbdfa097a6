package handler

import (
	"net/http"

	"github.com/dustatron/mcpoker/internal/service"
)

// HistoryHandler handles round history endpoints
type HistoryHandler struct {
	historySvc *service.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historySvc *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historySvc: historySvc}
}

// List handles GET /v1/rooms/{roomId}/history
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomFromToken(w, r)
	if !ok {
		return
	}

	entries, err := h.historySvc.History(r.Context(), roomID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"history": entries})
}

// Latest handles GET /v1/rooms/{roomId}/history/latest
func (h *HistoryHandler) Latest(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomFromToken(w, r)
	if !ok {
		return
	}

	entry, err := h.historySvc.LatestRound(r.Context(), roomID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "no rounds recorded")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// Count handles GET /v1/rooms/{roomId}/history/count
func (h *HistoryHandler) Count(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomFromToken(w, r)
	if !ok {
		return
	}

	count, err := h.historySvc.RoundCount(r.Context(), roomID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/AnshRaj112/goalledger-backend/internal/ledger"
)

// ListActivities returns the owner's most recent activity. ?limit is capped at
// the default window size.
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerParam(w, r)
	if !ok {
		return
	}
	limit := ledger.DefaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeMessage(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if n < limit {
			limit = n
		}
	}
	activities, err := h.Goals.Activities(r.Context(), owner, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "OK", Response{"activities": activities})
}

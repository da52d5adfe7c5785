package handlers

import (
	"net/http"

	"github.com/AnshRaj112/goalledger-backend/internal/services"
)

// DatabaseDump returns the whole ledger document without password hashes.
func (h *Handler) DatabaseDump(w http.ResponseWriter, r *http.Request) {
	doc, err := services.Dump(r.Context(), h.Store)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "OK", Response{"database": doc})
}

func (h *Handler) DatabaseStats(w http.ResponseWriter, r *http.Request) {
	stats, err := services.Stats(r.Context(), h.Store)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "OK", Response{"stats": stats})
}

// CreateBackup writes a backup now.
func (h *Handler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	if h.Backups == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Backups are not configured")
		return
	}
	res, err := h.Backups.Run(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, "Backup created", Response{"backup": res})
}

package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/goalledger-backend/internal/ledger"
	"github.com/AnshRaj112/goalledger-backend/internal/services"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Response is the envelope of every JSON response. Payload keys are merged in.
type Response map[string]interface{}

func writeJSON(w http.ResponseWriter, status int, message string, payload Response) {
	body := Response{"success": status < 400, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, message, nil)
}

// writeError maps ledger and service errors to HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		writeMessage(w, http.StatusBadRequest, detail(err, ledger.ErrValidation))
	case errors.Is(err, services.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrInvalidSession):
		writeMessage(w, http.StatusUnauthorized, "Invalid or expired session")
	case errors.Is(err, ledger.ErrUnauthorized):
		writeMessage(w, http.StatusForbidden, "You do not have access to this resource")
	case errors.Is(err, ledger.ErrNotFound):
		writeMessage(w, http.StatusNotFound, capitalize(detail(err, ledger.ErrNotFound))+" not found")
	case errors.Is(err, ledger.ErrConflict):
		writeMessage(w, http.StatusConflict, capitalize(detail(err, ledger.ErrConflict)))
	default:
		log.Printf("%s %s failed: %v", r.Method, r.URL.Path, err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// detail strips the "<kind>: " prefix a sentinel adds to a wrapped error.
func detail(err, kind error) string {
	return strings.TrimPrefix(err.Error(), kind.Error()+": ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dest); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeMessage(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

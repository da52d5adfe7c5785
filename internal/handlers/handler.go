package handlers

import (
	"net/http"

	"github.com/AnshRaj112/goalledger-backend/internal/middleware"
	"github.com/AnshRaj112/goalledger-backend/internal/services"
	"github.com/AnshRaj112/goalledger-backend/internal/store"
)

// Handler holds the dependencies of the HTTP API.
type Handler struct {
	Store    *store.Store
	Goals    *services.GoalService
	Accounts *services.AccountService
	Sessions *services.SessionManager
	Hub      *services.ActivityHub
	// Backups is nil when backups are disabled.
	Backups *services.BackupService
}

// caller returns the authenticated user id, answering 401 when there is none.
func caller(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing session token")
		return 0, false
	}
	return id, true
}

// ownerParam reads the owner id from the {id} path segment and requires it to be the caller.
func ownerParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	me, ok := caller(w, r)
	if !ok {
		return 0, false
	}
	owner, ok := idParam(w, r, "id")
	if !ok {
		return 0, false
	}
	if owner != me {
		writeMessage(w, http.StatusForbidden, "You do not have access to this resource")
		return 0, false
	}
	return owner, true
}

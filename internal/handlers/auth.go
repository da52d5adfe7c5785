package handlers

import (
	"net/http"

	"github.com/AnshRaj112/goalledger-backend/internal/middleware"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.Accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, "User registered successfully", Response{"user": user})
}

// Login checks credentials and issues a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	token, expires, err := h.Sessions.CreateSession(user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "Login successful", Response{
		"user":      user,
		"token":     token,
		"expiresAt": expires,
	})
}

// Logout revokes the caller's session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Missing session token")
		return
	}
	if err := h.Sessions.InvalidateSession(r.Context(), sess); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Logged out")
}

// Me returns the caller's account.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	user, err := h.Accounts.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "OK", Response{"user": user})
}

package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/AnshRaj112/goalledger-backend/internal/services"
)

type contextKey string

const (
	userIDKey  contextKey = "userID"
	sessionKey contextKey = "session"
)

// SessionValidator resolves a bearer token to a session.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (services.Session, error)
}

// AdminChecker decides whether a user may use operator routes.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's user id in the request context.
func RequireAuth(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				unauthorized(w, "Missing session token")
				return
			}
			sess, err := sessions.ValidateSession(r.Context(), token)
			if err != nil {
				unauthorized(w, "Invalid or expired session")
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, sess.UserID)
			ctx = context.WithValue(ctx, sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must run after RequireAuth. Callers who are not admins get 403.
func RequireAdmin(admins AdminChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := UserIDFromContext(r.Context())
			if !ok {
				unauthorized(w, "Missing session token")
				return
			}
			isAdmin, err := admins.IsAdmin(r.Context(), id)
			if err != nil {
				log.Printf("admin check for user %d failed: %v", id, err)
				writeStatus(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if !isAdmin {
				writeStatus(w, http.StatusForbidden, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext returns the authenticated caller set by RequireAuth.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// SessionFromContext returns the validated session set by RequireAuth.
func SessionFromContext(ctx context.Context) (services.Session, bool) {
	s, ok := ctx.Value(sessionKey).(services.Session)
	return s, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	writeStatus(w, http.StatusUnauthorized, message)
}

func writeStatus(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}

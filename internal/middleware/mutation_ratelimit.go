package middleware

import (
	"net/http"
	"strconv"

	"golang.org/x/time/rate"
)

// Goal mutations are limited per authenticated user: 2 req/s, burst 20.
// Reads are not limited here.
const (
	mutationRPS   = 2
	mutationBurst = 20
)

var mutationLimiters = newLimiterPool(rate.Limit(mutationRPS), mutationBurst)

// MutationRateLimit must run after RequireAuth.
func MutationRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		if !mutationLimiters.get("user:" + strconv.FormatInt(userID, 10)).Allow() {
			tooManyRequests(w, mutationBurst, "Too many changes. Please slow down.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the configured origins and answers preflight requests.
// allowedOrigins is the list of allowed origins (e.g. http://localhost:3000).
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Requested-With"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

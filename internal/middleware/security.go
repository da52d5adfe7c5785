package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/AnshRaj112/goalledger-backend/pkg/clientip"
)

// apiSecurityHeaders are set on every response. The API serves JSON only, so
// nothing may be framed, sniffed or loaded from it as a document.
var apiSecurityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "no-referrer"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	{"Strict-Transport-Security", "max-age=31536000; includeSubDomains"},
}

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, h := range apiSecurityHeaders {
			w.Header().Set(h[0], h[1])
		}
		next.ServeHTTP(w, r)
	})
}

// HostCheck answers 403 unless the request Host (port ignored) is one of
// allowedHosts. No hosts disables the check.
func HostCheck(allowedHosts ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedHosts))
	for _, h := range allowedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			allowed[h] = true
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(allowed) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			host := r.Host
			if h, _, err := net.SplitHostPort(host); err == nil {
				host = h
			}
			if !allowed[strings.ToLower(strings.TrimSpace(host))] {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"success":false,"message":"Forbidden"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// --- Global rate limiting (per-IP, 5/s, burst 20) ---

const (
	globalRateLimitRPS   = 5
	globalRateLimitBurst = 20
)

var globalLimiters = newLimiterPool(rate.Limit(globalRateLimitRPS), globalRateLimitBurst)

// GlobalRateLimit limits each IP to 5 req/s, burst 20. Returns 429 when exceeded.
func GlobalRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !globalLimiters.get(clientip.LimitKey(r)).Allow() {
			tooManyRequests(w, globalRateLimitBurst, "Too many requests. Please slow down.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- Credential route rate limiting (1 req/5s, burst 5) ---

const (
	loginRateLimitEvery = 5 * time.Second
	loginRateLimitBurst = 5
)

var loginLimiters = newLimiterPool(rate.Every(loginRateLimitEvery), loginRateLimitBurst)

var loginPaths = map[string]bool{
	"/api/auth/login":    true,
	"/api/auth/register": true,
}

// LoginRateLimit applies a stricter limit to login and registration only.
func LoginRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !loginPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}
		if !loginLimiters.get(clientip.LimitKey(r)).Allow() {
			tooManyRequests(w, loginRateLimitBurst, "Too many login attempts. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ProductionSecurity returns middlewares for production: SecurityHeaders → HostCheck → GlobalRateLimit → LoginRateLimit.
func ProductionSecurity(allowedHosts []string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		SecurityHeaders,
		HostCheck(allowedHosts...),
		GlobalRateLimit,
		LoginRateLimit,
	}
}

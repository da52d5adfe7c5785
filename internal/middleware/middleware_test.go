package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AnshRaj112/goalledger-backend/internal/services"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

type fakeSessions map[string]int64

func (f fakeSessions) ValidateSession(ctx context.Context, token string) (services.Session, error) {
	id, ok := f[token]
	if !ok {
		return services.Session{}, errors.New("unknown token")
	}
	return services.Session{ID: "jti-" + token, UserID: id}, nil
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "Bearer abc", want: "abc"},
		{header: "bearer  abc ", want: "abc"},
		{header: "Basic abc", want: ""},
		{header: "", want: ""},
	}
	for _, tt := range tests {
		if got := BearerToken(tt.header); got != tt.want {
			t.Fatalf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestRequireAuth(t *testing.T) {
	var gotID int64
	h := RequireAuth(fakeSessions{"good": 5})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserIDFromContext(r.Context())
		if _, ok := SessionFromContext(r.Context()); !ok {
			t.Fatalf("expected session in context")
		}
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "invalid", header: "Bearer bad", status: http.StatusUnauthorized},
		{name: "valid", header: "Bearer good", status: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/goals/5", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
		})
	}
	if gotID != 5 {
		t.Fatalf("expected user 5 in context, got %d", gotID)
	}
}

func TestSecurityHeadersAndHostCheck(t *testing.T) {
	h := SecurityHeaders(HostCheck("api.example.com")(okHandler))

	req := httptest.NewRequest(http.MethodGet, "http://api.example.com:8080/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" || rec.Header().Get("Referrer-Policy") != "no-referrer" {
		t.Fatalf("missing security headers")
	}

	req = httptest.NewRequest(http.MethodGet, "http://API.Example.com/health", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected host match to ignore case, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "http://evil.example.com/health", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong host, got %d", rec.Code)
	}
}

func TestLoginRateLimit(t *testing.T) {
	h := LoginRateLimit(okHandler)
	send := func(path string) int {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.RemoteAddr = "203.0.113.9:4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < loginRateLimitBurst; i++ {
		if code := send("/api/auth/login"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, code)
		}
	}
	if code := send("/api/auth/login"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", code)
	}
	if code := send("/api/goals"); code != http.StatusOK {
		t.Fatalf("other paths should not be limited, got %d", code)
	}
}

func TestMutationRateLimitSkipsReads(t *testing.T) {
	h := RequireAuth(fakeSessions{"t": 99})(MutationRateLimit(okHandler))
	for i := 0; i < mutationBurst+5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/goals/99", nil)
		req.Header.Set("Authorization", "Bearer t")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("read %d limited: %d", i, rec.Code)
		}
	}

	limited := false
	for i := 0; i < mutationBurst+5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/goals", nil)
		req.Header.Set("Authorization", "Bearer t")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Fatalf("expected mutations to be limited after burst")
	}
}

func TestLimiterPoolSweep(t *testing.T) {
	p := newLimiterPool(1, 1)
	p.get("a")
	p.sweep(time.Now().Add(limiterTTL + time.Minute))
	p.mu.Lock()
	n := len(p.entries)
	p.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected idle entries to be swept, %d left", n)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := CORS([]string{"http://localhost:3000"})(okHandler)
	req := httptest.NewRequest(http.MethodOptions, "/api/goals", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
}

type fakeAdmins map[int64]bool

func (f fakeAdmins) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	if userID == 99 {
		return false, errors.New("store unavailable")
	}
	return f[userID], nil
}

func TestRequireAdmin(t *testing.T) {
	sessions := fakeSessions{"ops": 1, "user": 2, "broken": 99}
	h := RequireAuth(sessions)(RequireAdmin(fakeAdmins{1: true})(okHandler))

	tests := []struct {
		token string
		want  int
	}{
		{token: "ops", want: http.StatusOK},
		{token: "user", want: http.StatusForbidden},
		{token: "broken", want: http.StatusInternalServerError},
		{token: "", want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/database", nil)
		if tt.token != "" {
			req.Header.Set("Authorization", "Bearer "+tt.token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Fatalf("token %q: expected %d, got %d", tt.token, tt.want, rec.Code)
		}
	}
}

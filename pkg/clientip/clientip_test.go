package clientip

import (
	"net/http/httptest"
	"testing"
)

func TestRealClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{remote: "203.0.113.7:5123", want: "203.0.113.7"},
		{remote: "[2001:db8::1]:443", want: "2001:db8::1"},
		{remote: "198.51.100.2", want: "198.51.100.2"},
		{remote: " unix ", want: "unix"},
	}
	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			if got := RealClientIP(r); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLimitKeyGroupsIPv6Prefix(t *testing.T) {
	a := httptest.NewRequest("GET", "/", nil)
	a.RemoteAddr = "[2001:db8:1:2::10]:1000"
	b := httptest.NewRequest("GET", "/", nil)
	b.RemoteAddr = "[2001:db8:1:2:ffff::1]:2000"
	if LimitKey(a) != LimitKey(b) {
		t.Fatalf("expected same /64 key, got %q and %q", LimitKey(a), LimitKey(b))
	}
	if got := LimitKey(a); got != "2001:db8:1:2::/64" {
		t.Fatalf("unexpected key %q", got)
	}

	v4 := httptest.NewRequest("GET", "/", nil)
	v4.RemoteAddr = "203.0.113.7:80"
	if got := LimitKey(v4); got != "203.0.113.7" {
		t.Fatalf("unexpected key %q", got)
	}
}

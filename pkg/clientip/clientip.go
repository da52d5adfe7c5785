package clientip

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP returns the peer address of the request without its port.
// Proxy headers are ignored; the service is reached directly.
func RealClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	host = strings.Trim(strings.TrimSpace(host), "[]")
	if ip := net.ParseIP(host); ip != nil {
		return ip.String()
	}
	return host
}

// LimitKey is the rate limiting key for a request. IPv6 clients are grouped by
// their /64 since a single host usually controls the whole prefix.
func LimitKey(r *http.Request) string {
	addr := RealClientIP(r)
	ip := net.ParseIP(addr)
	if ip == nil || ip.To4() != nil {
		return addr
	}
	return ip.Mask(net.CIDRMask(64, 128)).String() + "/64"
}

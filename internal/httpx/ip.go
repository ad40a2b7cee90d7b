// Package httpx holds small HTTP helpers shared by module handlers.
package httpx

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP extracts the caller's IP, preferring X-Forwarded-For when present
// (first hop), falling back to RemoteAddr.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		ip := strings.TrimSpace(parts[0])
		if ip != "" {
			return ip
		}
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

package utils

import (
	"net"
	"net/http"
	"strings"
)

// HostOnly returns the host part of "ip:port", "[v6]:port" or a bare "ip".
func HostOnly(s string) string {
	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}
	return s
}

// ClientIP resolves the caller address. With trustProxy the proxy headers
// are consulted first (CF-Connecting-IP, the left-most X-Forwarded-For,
// X-Real-IP); otherwise only RemoteAddr counts.
//
// Only set trustProxy when every request reaches the server through a proxy
// you control, the headers are client supplied otherwise.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		xff, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
		for _, v := range []string{
			r.Header.Get("CF-Connecting-IP"),
			xff,
			r.Header.Get("X-Real-IP"),
		} {
			if v = strings.TrimSpace(v); v != "" {
				return HostOnly(v)
			}
		}
	}
	return HostOnly(r.RemoteAddr)
}

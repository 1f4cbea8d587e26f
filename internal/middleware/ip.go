package middleware

import (
	"net"
	"net/http"
	"strings"
)

// ExtractIP returns the client IP without port. When trustProxy is set it
// prefers the first X-Forwarded-For entry, then X-Real-IP; otherwise only
// RemoteAddr is used.
//
// Only trust proxy headers behind a reverse proxy that sets them; clients
// talking to the server directly can spoof them.
func ExtractIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

package httpx

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the best guess at the caller's address: the first
// X-Forwarded-For hop, then X-Real-IP, then RemoteAddr. Proxies can forge
// the headers, so the result is only good for analytics.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

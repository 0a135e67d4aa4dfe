package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// clientIPHeaders lists the proxy headers consulted for the client address, highest priority first.
var clientIPHeaders = []string{
	"X-Forwarded-For",  // standard proxy header, "client, proxy1, proxy2"
	"X-Real-IP",        // nginx
	"CF-Connecting-IP", // Cloudflare
	"True-Client-IP",   // Akamai, Cloudflare Enterprise
}

// privatePrefixes are the textual prefixes of loopback and RFC 1918 IPv4 ranges.
var privatePrefixes = []string{
	"127.",
	"10.",
	"172.16.", "172.17.", "172.18.", "172.19.",
	"172.20.", "172.21.", "172.22.", "172.23.",
	"172.24.", "172.25.", "172.26.", "172.27.",
	"172.28.", "172.29.", "172.30.", "172.31.",
	"192.168.",
}

// ResolveClientIP returns the address of the original requester.
// The first proxy header with a non-empty value wins; X-Forwarded-For yields its first entry.
// Without any of them the peer address is used, stripped of its port when it has one.
// The result is not validated as an IP address.
func ResolveClientIP(h http.Header, peerAddr string) string {
	for _, name := range clientIPHeaders {
		v := headerValue(h, name)
		if v == "" {
			continue
		}
		if name == "X-Forwarded-For" {
			first, _, _ := strings.Cut(v, ",")
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(v)
	}
	host, _, err := net.SplitHostPort(peerAddr)
	if err != nil {
		return peerAddr // fallback
	}
	return host
}

// headerValue looks a header up case-insensitively, also for maps built without canonical keys.
func headerValue(h http.Header, name string) string {
	if v := h.Get(name); v != "" {
		return v
	}
	for k, vs := range h {
		if len(vs) > 0 && strings.EqualFold(k, name) {
			return vs[0]
		}
	}
	return ""
}

// IsPrivateIP reports whether ip cannot be geolocated publicly: empty, loopback or a private range.
// Matching is purely textual, so anything starting with a private prefix counts, e.g. "10.0.0.0.evil".
// IPv6 is not recognized.
func IsPrivateIP(ip string) bool {
	if ip == "" || ip == "localhost" {
		return true
	}
	for _, prefix := range privatePrefixes {
		if strings.HasPrefix(ip, prefix) {
			return true
		}
	}
	return false
}

type clientIPContextKey struct{}

// WithClientIP stores the client IP in ctx.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// ClientIPFromContext returns the client IP stored by the ClientIP middleware.
func ClientIPFromContext(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPContextKey{}).(string)
	return ip, ok
}

// ClientIP resolves the client address once per request and stores it in the request context.
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ResolveClientIP(r.Header, r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(WithClientIP(r.Context(), ip)))
	})
}

package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/flulance/flulance-backend-go/internal/handler/http/response"
	"github.com/flulance/flulance-backend-go/internal/pkg/ratelimit"
)

// RateLimit caps mutating requests per caller. The key is the identity
// when authenticated, otherwise the client IP. Safe methods pass through.
func RateLimit(limiter ratelimit.Limiter, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(r.Context(), rateLimitKey(r), limit, window) {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				response.TooManyRequests(w, "Too many requests, slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitKey(r *http.Request) string {
	if id, ok := IdentityFromContext(r.Context()); ok {
		return "user:" + id.UserID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

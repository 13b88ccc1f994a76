package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"zemo-rental-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "user_claims"

// ClaimsFromContext returns the authenticated caller's claims, if any.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.UserClaims)
	return claims, ok
}

// AuthMiddleware validates the bearer token and stashes the claims on the
// request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "missing bearer token"})
				return
			}
			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid or expired token"})
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimiter counts requests per user over a one-minute window.
type RateLimiter struct {
	counters *cache.Cache
	limit    int64
}

func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	return &RateLimiter{
		counters: cache.New(time.Minute, 2*time.Minute),
		limit:    int64(requestsPerMinute),
	}
}

// Allow records one request for key and reports whether it is within the
// window limit.
func (rl *RateLimiter) Allow(key string) bool {
	if err := rl.counters.Add(key, int64(1), cache.DefaultExpiration); err == nil {
		return rl.limit >= 1
	}
	n, err := rl.counters.IncrementInt64(key, 1)
	if err != nil {
		// Entry expired between Add and Increment; start a fresh window.
		rl.counters.Set(key, int64(1), cache.DefaultExpiration)
		return rl.limit >= 1
	}
	return n <= rl.limit
}

// RateLimitMiddleware rejects callers that exceed the per-user budget. It
// runs after auth so the key is the user, not the socket.
func RateLimitMiddleware(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr
			if claims, ok := ClaimsFromContext(r.Context()); ok {
				key = claims.UserID
			}
			if !rl.Allow(key) {
				writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

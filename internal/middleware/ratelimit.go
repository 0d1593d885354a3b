package middleware

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "middleware").Logger()

// RateLimiter caps attempts per client IP over a sliding window. The login
// route uses it to slow down credential guessing; the limit applies before
// the handler sees the request.
type RateLimiter struct {
	max      int
	window   time.Duration
	now      func() time.Time
	mu       sync.Mutex
	attempts map[string][]time.Time
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		max:      max,
		window:   window,
		now:      time.Now,
		attempts: make(map[string][]time.Time),
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)

	kept := rl.attempts[ip][:0]
	for _, t := range rl.attempts[ip] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= rl.max {
		rl.attempts[ip] = kept
		return false
	}

	rl.attempts[ip] = append(kept, now)
	return true
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			ip = forwarded
		}
		if !rl.allow(ip) {
			logger.Warn().
				Str("request_id", RequestIDFrom(r.Context())).
				Str("ip", ip).
				Str("path", r.URL.Path).
				Msg("rate limit exceeded")
			writeError(w, http.StatusTooManyRequests, "demasiados intentos, intente más tarde")
			return
		}
		next.ServeHTTP(w, r)
	})
}

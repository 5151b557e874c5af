package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// RateLimiter rejects requests beyond max per fixed window, counted per
// remote host. Rejected requests never reach the pipeline, so they have no
// partial side effects.
type RateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	buckets map[string]*windowCount
	now     func() time.Time
}

type windowCount struct {
	start time.Time
	count int
}

func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	return &RateLimiter{
		window:  window,
		max:     max,
		buckets: make(map[string]*windowCount),
		now:     time.Now,
	}
}

// Allow records one request from origin and reports whether it is within the
// window budget.
func (l *RateLimiter) Allow(origin string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[origin]
	if !ok || now.Sub(b.start) >= l.window {
		l.buckets[origin] = &windowCount{start: now, count: 1}
		return true
	}
	b.count++
	return b.count <= l.max
}

// Handler wraps next with the limiter.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !l.Allow(host) {
			writeError(w, http.StatusTooManyRequests, "Too many requests, please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

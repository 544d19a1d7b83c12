package handler

import (
	"net"
	"net/http"
	"sync"

	"incident-hub/common"

	"golang.org/x/time/rate"
)

// ipRateLimiter keeps one token bucket per client IP.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func (l *ipRateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}
	return limiter
}

// RateLimitMiddleware limits requests per client IP. Used on the login
// endpoint to damp credential-stuffing attempts.
func RateLimitMiddleware(limit rate.Limit, burst int, next http.HandlerFunc) http.HandlerFunc {
	limiters := &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !limiters.limiter(host).Allow() {
			common.NewAppError(http.StatusTooManyRequests, "Too many requests", nil).Send(w)
			return
		}
		next(w, r)
	}
}

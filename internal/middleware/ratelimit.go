// Package middleware provides HTTP middleware for the tasktrail server.
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// maxTrackedClients bounds the visitor table so an address-spraying
	// client cannot exhaust memory.
	maxTrackedClients = 100_000

	sweepInterval = 5 * time.Minute
	visitorTTL    = 10 * time.Minute
)

// visitor tracks one client IP's token bucket. Tokens are fractional so
// refill stays accurate at sub-second request spacing.
type visitor struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter applies a per-IP token bucket: ratePerSec sustained,
// burst peak.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     float64
	burst    float64
}

// NewRateLimiter creates a rate limiter and starts a sweeper goroutine
// that evicts idle visitors until ctx is cancelled.
func NewRateLimiter(ctx context.Context, ratePerSec, burst int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     float64(ratePerSec),
		burst:    float64(burst),
	}
	go rl.sweep(ctx)

	return rl
}

func (rl *RateLimiter) sweep(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, v := range rl.visitors {
				if now.Sub(v.lastSeen) > visitorTTL {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// take refills the visitor's bucket for the elapsed time and consumes
// one token if available. Callers must hold rl.mu.
func (rl *RateLimiter) take(ip string, now time.Time) (allowed, known bool) {
	v, ok := rl.visitors[ip]
	if !ok {
		if len(rl.visitors) >= maxTrackedClients {
			return false, false
		}

		rl.visitors[ip] = &visitor{tokens: rl.burst - 1, lastSeen: now}

		return true, true
	}

	v.tokens += now.Sub(v.lastSeen).Seconds() * rl.rate
	if v.tokens > rl.burst {
		v.tokens = rl.burst
	}

	v.lastSeen = now

	if v.tokens < 1 {
		return false, true
	}

	v.tokens--

	return true, true
}

// Handler enforces the limit per client IP. ClientIP is spoof-safe
// because the router disables proxy header trust.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rl.mu.Lock()
		allowed, known := rl.take(ip, time.Now())
		rl.mu.Unlock()

		if !known {
			respondError(c, http.StatusTooManyRequests, "rate_limited", "too many clients")

			return
		}

		if !allowed {
			respondError(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")

			return
		}

		c.Next()
	}
}

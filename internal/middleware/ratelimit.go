package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/studentbook/internal/response"
)

// RateLimiter implements a per-client-IP token bucket. Buckets refill in
// whole intervals; a client that drains its bucket waits for the next
// interval boundary.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*bucket
	capacity int
	interval time.Duration
}

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastSeen   time.Time
}

// NewRateLimiter creates a RateLimiter allowing capacity requests per
// interval and client IP.
func NewRateLimiter(capacity int, interval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients:  make(map[string]*bucket),
		capacity: capacity,
		interval: interval,
	}

	// Evict idle clients so the map does not grow unbounded.
	go func() {
		for range time.Tick(time.Minute) {
			rl.cleanup()
		}
	}()

	return rl
}

// Middleware returns a Gin middleware that rate-limits requests by IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.clients[ip]
	if !ok {
		b = &bucket{tokens: rl.capacity, lastRefill: now}
		rl.clients[ip] = b
	}
	b.lastSeen = now

	if elapsed := now.Sub(b.lastRefill); elapsed >= rl.interval {
		b.tokens = rl.capacity
		b.lastRefill = now
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, b := range rl.clients {
		if time.Since(b.lastSeen) > 3*time.Minute {
			delete(rl.clients, ip)
		}
	}
}

package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// RateLimiterConfig holds configuration for the per-tenant rate limiter
type RateLimiterConfig struct {
	RequestsPerSecond float64
	BurstSize         int
	CleanupInterval   time.Duration
	EntryTTL          time.Duration
}

// DefaultRateLimiterConfig returns the limits used when nothing is configured
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	}
}

// TenantRateLimiter keeps one token bucket per hospital so a busy tenant
// cannot starve the others.
type TenantRateLimiter struct {
	mu      sync.Mutex
	buckets map[uuid.UUID]*tenantBucket
	limit   rate.Limit
	burst   int
	ttl     time.Duration
}

type tenantBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewTenantRateLimiter creates the limiter and starts its cleanup loop.
func NewTenantRateLimiter(cfg RateLimiterConfig) *TenantRateLimiter {
	rl := &TenantRateLimiter{
		buckets: make(map[uuid.UUID]*tenantBucket),
		limit:   rate.Limit(cfg.RequestsPerSecond),
		burst:   cfg.BurstSize,
		ttl:     cfg.EntryTTL,
	}

	go rl.evictStale(cfg.CleanupInterval)

	return rl
}

func (rl *TenantRateLimiter) bucket(tenantID uuid.UUID) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[tenantID]
	if !ok {
		b = &tenantBucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[tenantID] = b
	}
	b.lastSeen = time.Now()
	return b.limiter
}

// evictStale drops buckets for tenants that have gone quiet, so the map
// doesn't grow without bound.
func (rl *TenantRateLimiter) evictStale(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-rl.ttl)
		rl.mu.Lock()
		for tenantID, b := range rl.buckets {
			if b.lastSeen.Before(cutoff) {
				delete(rl.buckets, tenantID)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware enforces the tenant's rate limit. Requests without a resolved
// tenant pass through; tenant-scoped routes reject those later anyway.
func (rl *TenantRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := GetTenantID(c)
		if tenantID == uuid.Nil {
			c.Next()
			return
		}

		limiter := rl.bucket(tenantID)
		if !limiter.Allow() {
			c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Rate limit exceeded. Please try again later.",
				"error":   "too_many_requests",
			})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))

		c.Next()
	}
}

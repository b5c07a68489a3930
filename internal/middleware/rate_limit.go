package middleware

import (
	"go-tracking/internal/shared/apperror"
	"go-tracking/internal/shared/response"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type keyedLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyRateLimiter hands out one token bucket per key.
type KeyRateLimiter struct {
	keys map[string]*keyedLimiter
	mu   sync.Mutex
	r    rate.Limit
	b    int
}

func NewKeyRateLimiter(r rate.Limit, b int) *KeyRateLimiter {
	return &KeyRateLimiter{
		keys: make(map[string]*keyedLimiter),
		r:    r,
		b:    b,
	}
}

func (k *KeyRateLimiter) GetLimiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	entry, exists := k.keys[key]
	if !exists {
		entry = &keyedLimiter{limiter: rate.NewLimiter(k.r, k.b)}
		k.keys[key] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// Prune drops keys idle for longer than ttl and returns how many were removed.
func (k *KeyRateLimiter) Prune(ttl time.Duration) int {
	k.mu.Lock()
	defer k.mu.Unlock()

	removed := 0
	cutoff := time.Now().Add(-ttl)
	for key, entry := range k.keys {
		if entry.lastSeen.Before(cutoff) {
			delete(k.keys, key)
			removed++
		}
	}
	return removed
}

func (k *KeyRateLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.keys)
}

func RateLimitByIP(limiter *KeyRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			response.AbortWithError(c, apperror.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

// RateLimitByUser must run after AuthMiddleware; anonymous calls pass through.
func RateLimitByUser(limiter *KeyRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(KeyUserID)
		if userID == "" {
			c.Next()
			return
		}
		if !limiter.GetLimiter(userID).Allow() {
			response.AbortWithError(c, apperror.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

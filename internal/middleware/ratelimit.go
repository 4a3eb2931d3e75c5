package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"shopping-list-api/internal/config"
	"shopping-list-api/internal/logger"
	"shopping-list-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

// NewRateLimiter creates a new RateLimiter. Idle limiters are evicted until
// ctx is cancelled.
func NewRateLimiter(ctx context.Context, rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}

	go rl.cleanup(ctx)

	return rl
}

// getLimiter returns the bucket for key, creating it on first use.
func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[ip]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists = rl.limiters[ip]
	if exists {
		return limiter
	}

	limiter = rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[ip] = limiter
	return limiter
}

// cleanup periodically forgets clients that have gone quiet.
func (rl *RateLimiter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evictIdle(time.Now())
		}
	}
}

// evictIdle drops limiters whose bucket has refilled completely.
func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, limiter := range rl.limiters {
		if limiter.TokensAt(now) >= float64(rl.burst) {
			delete(rl.limiters, ip)
		}
	}
}

// allow takes a token for key. When none is available it returns how long
// the client should wait instead, without consuming anything.
func (rl *RateLimiter) allow(key string, now time.Time) (bool, time.Duration) {
	reservation := rl.getLimiter(key).ReserveN(now, 1)
	if !reservation.OK() {
		return false, time.Second
	}

	delay := reservation.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	reservation.CancelAt(now)
	return false, delay
}

// RateLimitMiddleware limits each client IP to the configured rate and tells
// rejected clients when to retry.
func RateLimitMiddleware(ctx context.Context, cfg config.RateLimitConfig) gin.HandlerFunc {
	limiter := NewRateLimiter(ctx, cfg.GeneralRPS, cfg.GeneralBurst)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		ok, wait := limiter.allow(ip, time.Now())
		if !ok {
			retryAfter := int(math.Ceil(wait.Seconds()))
			logger.WithRequestID(GetRequestID(c)).Warn("Rate limit exceeded",
				zap.String("ip", ip),
				zap.String("path", c.Request.URL.Path),
				zap.Int("retry_after_seconds", retryAfter),
				zap.String("event", "rate_limited"),
			)

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			utils.ErrorResponseWithCode(c, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

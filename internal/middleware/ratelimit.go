package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/festeja/backend/pkg/redis"
	"github.com/festeja/backend/pkg/response"
)

// RateLimiter throttles requests using a sliding window stored in a Redis
// sorted set, one set per (scope, key) pair scored by request timestamp.
type RateLimiter struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewRateLimiter creates a limiter backed by the shared Redis client.
func NewRateLimiter(rdb *redis.Client, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{rdb: rdb, logger: logger}
}

// Allow records one hit for key under scope and reports whether the caller is
// still within limit hits per window. Redis errors fail open: a broken
// limiter must not take the API down with it.
func (rl *RateLimiter) Allow(c *gin.Context, scope, key string, limit int, window time.Duration) bool {
	ctx := c.Request.Context()
	redisKey := fmt.Sprintf("ratelimit:%s:%s", scope, key)
	now := time.Now()
	cutoff := now.Add(-window)

	pipe := rl.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", cutoff.UnixNano()))
	count := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		rl.logger.Warn("rate limiter unavailable, allowing request",
			zap.String("scope", scope), zap.Error(err))
		return true
	}
	if count.Val() >= int64(limit) {
		return false
	}

	member := goredis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()}
	pipe = rl.rdb.TxPipeline()
	pipe.ZAdd(ctx, redisKey, member)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		rl.logger.Warn("rate limiter record failed",
			zap.String("scope", scope), zap.Error(err))
	}
	return true
}

// ByIP limits anonymous traffic per client IP.
func (rl *RateLimiter) ByIP(scope string, limit int, window time.Duration, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c, scope, c.ClientIP(), limit, window) {
			response.TooManyRequests(c, msg)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ByUser limits authenticated traffic per user ID; it must run after JWT.
func (rl *RateLimiter) ByUser(scope string, limit int, window time.Duration, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if id, ok := c.Get(ContextUserID); ok {
			key = fmt.Sprintf("%v", id)
		}
		if !rl.Allow(c, scope, key, limit, window) {
			response.TooManyRequests(c, msg)
			c.Abort()
			return
		}
		c.Next()
	}
}

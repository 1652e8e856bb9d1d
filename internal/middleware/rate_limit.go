package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/desejolivre/chat-backend/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig configures the rate limiter
type RateLimitConfig struct {
	RequestsPerMinute int
	KeyPrefix         string
}

// DefaultRateLimitConfig returns default rate limit configuration
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: 120,
		KeyPrefix:         "api:ratelimit:",
	}
}

// rateLimitScript is an atomic Lua script for sliding window rate limiting
var rateLimitScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local window_start = now - window

redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)
local count = redis.call('ZCARD', key)

if count < limit then
    redis.call('ZADD', key, now, now .. ':' .. math.random(1000000))
    redis.call('EXPIRE', key, math.ceil(window / 1000) + 1)
    return 1
else
    return 0
end
`)

// RateLimit returns a gin middleware that rate limits by client IP using a
// Redis sliding window. With no Redis client it becomes a no-op.
func RateLimit(redisClient *redis.Client, cfg RateLimitConfig) gin.HandlerFunc {
	window := int64(time.Minute / time.Millisecond)

	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		key := cfg.KeyPrefix + c.ClientIP()
		now := time.Now().UnixMilli()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 200*time.Millisecond)
		defer cancel()

		allowed, err := rateLimitScript.Run(ctx, redisClient,
			[]string{key}, cfg.RequestsPerMinute, window, now).Int()
		if err != nil {
			// Redis trouble never blocks traffic
			c.Next()
			return
		}

		if allowed == 0 {
			common.ErrorResponse(c, http.StatusTooManyRequests, T(c, "error.too_many_requests"))
			c.Abort()
			return
		}

		c.Next()
	}
}

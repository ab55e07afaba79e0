package middleware

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"user-auth-api/internal/config"
	"user-auth-api/pkg/logger"
)

// RateLimiterMiddleware throttles the unauthenticated auth endpoints with a
// per-client-IP sliding window kept in redis. With no redis client configured
// it passes every request through.
type RateLimiterMiddleware struct {
	RedisClient *redis.Client
	KeyPrefix   string
	Logger      logger.Logger
}

func NewRateLimiterMiddleware(
	redisClient *redis.Client,
	cfg *config.Config,
	logger logger.Logger,
) *RateLimiterMiddleware {
	keyPrefix := "cache:" + cfg.App.Name + ":mid:rl"
	return &RateLimiterMiddleware{
		RedisClient: redisClient,
		KeyPrefix:   keyPrefix,
		Logger:      logger,
	}
}

// Sliding window implemented as a sorted set per client: members are request
// timestamps, stale entries are trimmed before counting. The script runs
// atomically so concurrent requests cannot overshoot the limit.
const slidingWindowScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window_start = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local window_ttl = tonumber(ARGV[4])
local member = ARGV[5]

redis.call('ZREMRANGEBYSCORE', key, 0, window_start)

local count = redis.call('ZCARD', key)

if count >= limit then
    return 0
end

redis.call('ZADD', key, now, member)
redis.call('EXPIRE', key, window_ttl)
return 1
`

func (rl *RateLimiterMiddleware) Handle(limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.RedisClient == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", rl.KeyPrefix, c.ClientIP())
		now := time.Now().UnixMilli()
		windowStart := now - window.Milliseconds()
		ttlSeconds := int64(math.Ceil(window.Seconds()))

		member := fmt.Sprintf("%d:%d", now, rand.Intn(10000))

		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		res, err := rl.RedisClient.Eval(ctx, slidingWindowScript, []string{key},
			now, windowStart, limit, ttlSeconds, member).Result()
		if err != nil {
			// Fail open: a broken limiter should not take down login.
			rl.Logger.Error("redis rate limiter error",
				zap.String("key", key),
				zap.Int64("limit", limit),
				zap.Duration("window", window),
				zap.Error(err))
			c.Next()
			return
		}

		if result, ok := res.(int64); !ok || result == 0 {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "too many requests",
			})
			return
		}

		c.Next()
	}
}

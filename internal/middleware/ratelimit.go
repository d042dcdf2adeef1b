package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const rateLimitPrefix = "manancial:ratelimit"

// NewLimiter allows perMinute requests per client. With a redis client the
// counters are shared by every instance, otherwise they live in process.
func NewLimiter(perMinute int64, rdb *redis.Client) (*limiter.Limiter, error) {
	rate := limiter.Rate{Period: time.Minute, Limit: perMinute}
	if rdb == nil {
		return limiter.New(limitermemory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix}), rate), nil
	}
	store, err := limiterredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: rateLimitPrefix})
	if err != nil {
		return nil, err
	}
	return limiter.New(store, rate), nil
}

// RateLimit throttles each client IP. Routes listed in exempt (gin route patterns,
// e.g. "/health") are never counted. Requests pass when the limiter store fails.
func RateLimit(l *limiter.Limiter, exempt ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(exempt))
	for _, route := range exempt {
		skip[route] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.FullPath()]; ok {
			c.Next()
			return
		}

		ip := c.ClientIP()
		logger := GetLoggerFromCtx(c.Request.Context())

		limitCtx, err := l.Get(c.Request.Context(), ip)
		if err != nil {
			logger.Error("Rate limit store unavailable", slog.String("ip", ip), slog.String("error", err.Error()))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(limitCtx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(limitCtx.Remaining, 10))

		if limitCtx.Reached {
			retry := max(limitCtx.Reset-time.Now().Unix(), 1)
			c.Header("Retry-After", strconv.FormatInt(retry, 10))
			logger.Warn("Rate limit exceeded", slog.String("ip", ip), slog.Int64("limit", limitCtx.Limit))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}

		c.Next()
	}
}

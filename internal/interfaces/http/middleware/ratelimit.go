package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/locationgenius/dashboard/internal/shared/constants"
	"github.com/locationgenius/dashboard/internal/shared/logger"
	"github.com/locationgenius/dashboard/internal/shared/utils"
)

// RateLimiter is a Redis fixed-window counter shared by every instance.
// Callers are keyed by user ID when authenticated, by client IP otherwise.
type RateLimiter struct {
	redisClient *redis.Client
	name        string
	limit       int
	window      time.Duration
	logger      logger.Interface
	now         func() time.Time
}

// NewRateLimiter allows limit requests per window for the named bucket.
// Windows shorter than a second are raised to one second.
func NewRateLimiter(redisClient *redis.Client, name string, limit int, window time.Duration, log logger.Interface) *RateLimiter {
	if window < time.Second {
		window = time.Second
	}
	return &RateLimiter{
		redisClient: redisClient,
		name:        name,
		limit:       limit,
		window:      window,
		logger:      log,
		now:         time.Now,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := "ip:" + c.ClientIP()
		if userID := c.GetString(constants.ContextKeyUserID); userID != "" {
			subject = "user:" + userID
		}

		windowBucket, remaining := rl.bucket(rl.now())
		key := fmt.Sprintf("ratelimit:%s:%s:%d", rl.name, subject, windowBucket)

		ctx := c.Request.Context()

		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			// fail open when Redis is unavailable
			rl.logger.Warnw("rate limiter unavailable", "bucket", rl.name, "error", err)
			c.Next()
			return
		}

		if count == 1 {
			rl.redisClient.Expire(ctx, key, rl.window+time.Second)
		}

		if count > int64(rl.limit) {
			rl.logger.Warnw("rate limit exceeded", "bucket", rl.name, "subject", subject, "count", count)
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(remaining)))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

// bucket returns the fixed window containing now and the time left in it.
func (rl *RateLimiter) bucket(now time.Time) (int64, time.Duration) {
	windowMs := rl.window.Milliseconds()
	nowMs := now.UnixMilli()
	return nowMs / windowMs, rl.window - time.Duration(nowMs%windowMs)*time.Millisecond
}

func retryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

package ratelimit

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Limiter is a fixed-window rate limiter backed by Redis, injected into
// the booking routes. A nil *Limiter is a no-op, so tests and
// deployments without Redis simply skip limiting.
type Limiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func New(rdb *redis.Client, limit int, window time.Duration, prefix string) *Limiter {
	if rdb == nil {
		return nil
	}
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	if prefix == "" {
		prefix = "rl"
	}
	return &Limiter{rdb: rdb, limit: limit, window: window, prefix: prefix}
}

// Middleware limits requests per client IP. Redis failures fail open:
// losing rate limiting is preferable to refusing bookings.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		key := l.prefix + ":" + c.ClientIP()

		res, err := fixedWindowScript.Run(
			c.Request.Context(),
			l.rdb,
			[]string{key},
			l.window.Milliseconds(),
		).Int64()
		if err != nil {
			log.Println("rate limiter error:", err)
			c.Next()
			return
		}

		if res > int64(l.limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error_code": "rate_limited",
				"message":    "Too many requests, try again shortly.",
			})
			return
		}

		c.Next()
	}
}

package middleware

import (
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/mom-service/errors"
	"github.com/johnquangdev/mom-service/pkg/ratelimit"
)

// RateLimit limits requests per authenticated user, or per client IP for
// anonymous callers.
func RateLimit(limiter *ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ip:" + c.RealIP()
			if id, ok := c.Get(UserIDKey).(uuid.UUID); ok {
				key = "user:" + id.String()
			}

			allowed, wait := limiter.Allow(key)
			if !allowed {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return errors.ErrRateLimited(wait)
			}
			return next(c)
		}
	}
}

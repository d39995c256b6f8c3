package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// LoginRateLimiter abstracts the Redis-backed per-IP limiter.
type LoginRateLimiter interface {
	Allow(ctx context.Context, ip string) (ok bool, message string, err error)
}

// RateLimitLogin throttles the login path per client IP. When the limiter
// backend fails the request is let through: availability of login beats
// strictness of the throttle.
func RateLimitLogin(limiter LoginRateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, message, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Str("ip", c.RealIP()).Msg("login rate limiter unavailable")
				return next(c)
			}
			if !ok {
				return echo.NewHTTPError(http.StatusTooManyRequests, message)
			}
			return next(c)
		}
	}
}

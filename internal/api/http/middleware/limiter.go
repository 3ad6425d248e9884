package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
)

// NewLimiter rate limits by client IP with in-memory sliding windows.
// The demo server runs as a single instance, so no shared storage is needed.
func NewLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               20,
		Expiration:        30 * time.Second,
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}

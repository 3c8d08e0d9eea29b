package http

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/trackassure/compliance-api/internal/application/dto"
	"golang.org/x/time/rate"
)

// LoginRateLimit throttles login attempts per client IP. Each backend probe
// costs a network round-trip, so a single abusive client could multiply
// load on all four backends without this.
func LoginRateLimit(perMinute, burst int) fiber.Handler {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = perMinute
	}
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		mu.Lock()
		lim, ok := limiters[ip]
		if !ok {
			lim = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst)
			limiters[ip] = lim
		}
		mu.Unlock()
		if !lim.Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "too many login attempts, retry later",
			})
		}
		return c.Next()
	}
}

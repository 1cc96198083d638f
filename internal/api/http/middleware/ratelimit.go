package middleware

import (
	"context"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/ratelimit"
)

// RateLimiter decides whether a key may perform another request.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Decision, error)
}

// RateLimit rejects clients that exceeded their limit on a route.
// Limiter failures let the request through.
type RateLimit struct {
	limiter RateLimiter
	scope   string
	logger  *logger.Logger
}

// NewRateLimit creates a RateLimit middleware. scope separates the
// counters of different routes sharing one limiter.
func NewRateLimit(limiter RateLimiter, scope string, logger *logger.Logger) *RateLimit {
	return &RateLimit{limiter: limiter, scope: scope, logger: logger}
}

// Handle counts the request against the client IP.
func (m *RateLimit) Handle(c *fiber.Ctx) error {
	key := m.scope + ":" + c.IP()

	decision, err := m.limiter.Allow(c.UserContext(), key)
	if err != nil {
		m.logger.Warn("RateLimit middleware: limiter unavailable, allowing request",
			"key", key,
			"error", err.Error())
		return c.Next()
	}

	reset := strconv.Itoa(int(math.Ceil(decision.ResetIn.Seconds())))
	c.Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	c.Set("X-RateLimit-Reset", reset)

	if !decision.Allowed {
		m.logger.Info("RateLimit middleware: request rejected",
			"key", key,
			"limit", decision.Limit)
		c.Set(fiber.HeaderRetryAfter, reset)
		return model.ErrRateLimited
	}

	return c.Next()
}

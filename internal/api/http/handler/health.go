package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/contacts-server/internal/logger"
)

// Check reports the health of a single dependency.
type Check func(ctx context.Context) error

// Health reports liveness of the server and its dependencies.
type Health struct {
	checks  map[string]Check
	timeout time.Duration
	logger  *logger.Logger
}

func NewHealth(checks map[string]Check, logger *logger.Logger) *Health {
	return &Health{
		checks:  checks,
		timeout: 2 * time.Second,
		logger:  logger,
	}
}

// Handle returns 200 when every check passes and 503 otherwise.
func (h *Health) Handle(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	status := fiber.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("Health handler: dependency check failed",
				"dependency", name,
				"error", err.Error())
			results[name] = err.Error()
			status = fiber.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	body := fiber.Map{"status": "ok", "checks": results}
	if status != fiber.StatusOK {
		body["status"] = "degraded"
	}
	return c.Status(status).JSON(body)
}

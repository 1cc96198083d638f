package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/contacts-server/internal/logger"
)

// Logging logs every HTTP request and its outcome.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, duration and status for each request.
// It runs the error handler itself so the logged status is final.
func (l *Logging) Handle(c *fiber.Ctx) error {
	start := time.Now()

	err := c.Next()
	if err != nil {
		if handleErr := c.App().ErrorHandler(c, err); handleErr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	status := c.Response().StatusCode()
	attrs := []any{
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
	}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}

	if status >= fiber.StatusInternalServerError {
		l.logger.Error("HTTP request failed", attrs...)
	} else {
		l.logger.Info("HTTP request completed", attrs...)
	}

	return nil
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

// Error carries the status and client facing detail of a failed request.
type Error struct {
	Status int
	Detail string
	Err    error
}

// NewError wraps err with an explicit status and detail.
func NewError(status int, detail string, err error) *Error {
	return &Error{Status: status, Detail: detail, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Detail
	}
	return e.Detail + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorHandler renders every error returned by a handler or middleware
// as {"detail": "..."}.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, detail := resolveError(err)

		if status == fiber.StatusUnauthorized {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP handler: request failed",
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"error", err.Error())
		}

		return c.Status(status).JSON(fiber.Map{"detail": detail})
	}
}

func resolveError(err error) (int, string) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr.Detail
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	switch {
	case errors.Is(err, model.ErrValidation):
		return fiber.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, model.ErrMissingToken):
		return fiber.StatusUnauthorized, "Not authenticated"
	case errors.Is(err, model.ErrInvalidToken),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrInvalidTokenPurpose):
		return fiber.StatusUnauthorized, "Invalid token"
	case errors.Is(err, model.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, model.ErrEmailNotVerified):
		return fiber.StatusUnauthorized, "Email not verified"
	case errors.Is(err, model.ErrForbidden):
		return fiber.StatusForbidden, "Not enough permissions"
	case errors.Is(err, model.ErrNotFound):
		return fiber.StatusNotFound, "Not found"
	case errors.Is(err, model.ErrConflict):
		return fiber.StatusConflict, "Already exists"
	case errors.Is(err, model.ErrRateLimited):
		return fiber.StatusTooManyRequests, "Rate limit exceeded"
	default:
		return fiber.StatusInternalServerError, "internal server error"
	}
}

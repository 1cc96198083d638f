package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/contacts-server/internal/api/http/handler"
	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/service"
)

// RequireRole rejects authenticated callers whose role does not satisfy
// required with 403 and detail. It must run after Authenticate.
func RequireRole(required model.Role, detail string, contextManager model.ContextManager) fiber.Handler {
	if detail == "" {
		detail = "Not enough permissions"
	}
	return func(c *fiber.Ctx) error {
		user, ok := contextManager.GetUserFromContext(c.UserContext())
		if !ok {
			return model.ErrMissingToken
		}
		if _, err := service.RequireRole(user, required); err != nil {
			return handler.NewError(fiber.StatusForbidden, detail, err)
		}
		return c.Next()
	}
}

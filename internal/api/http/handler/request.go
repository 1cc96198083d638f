package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/contacts-server/internal/model"
)

// bind fills out from the query string and, when present, from a JSON,
// urlencoded or multipart body. Body values win over query values.
func bind(c *fiber.Ctx, out interface{}) error {
	if err := c.QueryParser(out); err != nil {
		return NewError(fiber.StatusUnprocessableEntity, "invalid query parameters", err)
	}
	if len(c.Body()) == 0 || len(c.Request().Header.ContentType()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return NewError(fiber.StatusUnprocessableEntity, "invalid request body", err)
	}
	return nil
}

func idParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, NewError(fiber.StatusUnprocessableEntity, name+" must be a positive integer", err)
	}
	return id, nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewError(fiber.StatusUnprocessableEntity, field+" is required", model.ErrValidation)
	}
	return nil
}

func message(text string) fiber.Map {
	return fiber.Map{"message": text}
}

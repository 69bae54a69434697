package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"codeberg.org/snonux/slangify/internal/boundary"
)

// ErrorHandler renders every error as {"error": message}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Default status code
	code := fiber.StatusInternalServerError
	msg := err.Error()

	var be *boundary.Error
	var fe *fiber.Error
	switch {
	case errors.As(err, &be):
		if be.Kind == boundary.InvalidInput {
			code = fiber.StatusBadRequest
		}
		msg = be.Error()
	case errors.As(err, &fe):
		code = fe.Code
	default:
		msg = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error": msg,
	})
}

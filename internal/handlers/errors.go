package handlers

import (
	"errors"

	"ludoteca/internal/logging"
	"ludoteca/internal/services"

	"github.com/gofiber/fiber/v2"
)

// writeError maps a service error to a fixed client-facing response. The
// raw error is only logged.
func writeError(c *fiber.Ctx, err error, internalMessage string) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		body := fiber.Map{"message": validationErr.Reason}
		if len(validationErr.Fields) > 0 {
			body["errors"] = validationErr.Fields
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case errors.Is(err, services.ErrDuplicate):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Email is already registered"})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "You do not have permission to modify this game"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Resource not found"})
	case errors.Is(err, services.ErrUpstream):
		logging.Error().Err(err).Str("path", c.Path()).Msg("catalog request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not reach the game catalog"})
	default:
		logging.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg(internalMessage)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": internalMessage})
	}
}

func badBody(c *fiber.Ctx, err error) error {
	logging.Debug().Err(err).Str("path", c.Path()).Msg("invalid request body")
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
	})
}

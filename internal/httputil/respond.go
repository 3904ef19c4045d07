package httputil

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/billo-wallet/billo/internal/validate"
)

// genericAlert is the user-facing message for storage and other
// unexpected failures. The cause is logged, never shown.
const genericAlert = "Something went wrong. Please try again."

// Validation writes the inline field→message map with a 400 status.
func Validation(c *fiber.Ctx, fields validate.Errors) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"errors": fields})
}

// Message writes a status with a single user-facing error message.
func Message(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// Alert logs the failure and surfaces the generic blocking alert.
func Alert(c *fiber.Ctx, logger *slog.Logger, err error) error {
	logger.Error("operation failed", "path", c.Path(), "error", err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": genericAlert})
}

// Fail maps an error to a response: validation maps become inline field
// errors, anything else degrades to the generic alert.
func Fail(c *fiber.Ctx, logger *slog.Logger, err error) error {
	var fields validate.Errors
	if errors.As(err, &fields) {
		return Validation(c, fields)
	}
	return Alert(c, logger, err)
}

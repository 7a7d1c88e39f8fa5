package response

import (
	stderrors "errors"

	apperrors "clinic/internal/errors"
	"clinic/internal/validation"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *fiber.Ctx) error {
	return Error(c, fiber.StatusForbidden, apperrors.ErrForbidden.Message)
}

func ValidationError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// FromError writes err as a JSON error response. Domain errors keep their
// status and code; anything else becomes an opaque 500.
func FromError(c *fiber.Ctx, err error) error {
	var fields validation.Errors
	if stderrors.As(err, &fields) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  apperrors.ErrValidation.Message,
			"code":   apperrors.ErrValidation.Code,
			"fields": fields,
		})
	}

	de, ok := apperrors.As(err)
	if !ok {
		return ServerError(c, "internal server error")
	}

	message := err.Error()
	if de.Status == fiber.StatusForbidden {
		message = apperrors.ErrForbidden.Message
	}
	return c.Status(de.Status).JSON(fiber.Map{
		"error": message,
		"code":  de.Code,
	})
}

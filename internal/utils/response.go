package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// FieldError itemizes a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SendMessage sends a `{message}` payload with the given status code.
func SendMessage(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(fiber.Map{"message": message})
}

// SendValidationErrors sends a 400 with itemized field errors.
func SendValidationErrors(c *fiber.Ctx, errs validator.ValidationErrors) error {
	fields := make([]FieldError, 0, len(errs))
	for _, err := range errs {
		fields = append(fields, FieldError{
			Field:   err.Field(),
			Message: validationMessage(err),
		})
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fields})
}

func validationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + err.Param() + " characters"
	case "max":
		return "must be at most " + err.Param() + " characters"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + err.Param()
	case "gte":
		return "must be at least " + err.Param()
	case "datetime":
		return "must be a valid timestamp"
	default:
		return "is invalid"
	}
}

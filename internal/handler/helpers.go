package handler

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/opencampus/portal/internal/middleware"
	"github.com/opencampus/portal/internal/service"
	"github.com/opencampus/portal/internal/utils"
)

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value := c.Params(name)
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

// respondError maps service errors onto the API error contract: sentinel
// not-found errors to 404, access denials to 403, rule violations and
// validation failures to 400, anything else to a logged 500.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors
	var ruleErr service.RuleError

	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		return utils.SendMessage(c, fiber.StatusNotFound, "Assignment not found")
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendMessage(c, fiber.StatusNotFound, "Submission not found")
	case errors.Is(err, service.ErrSubmissionFileMissing):
		return utils.SendMessage(c, fiber.StatusNotFound, "File not found on server")
	case errors.Is(err, service.ErrAccessDenied):
		return utils.SendMessage(c, fiber.StatusForbidden, "Access denied")
	case errors.Is(err, service.ErrUserExists):
		return utils.SendMessage(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendMessage(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &ruleErr):
		return utils.SendMessage(c, fiber.StatusBadRequest, ruleErr.Message)
	case errors.As(err, &validationErrors):
		return utils.SendValidationErrors(c, validationErrors)
	default:
		logger.Error().Err(err).Str("correlation_id", middleware.GetCorrelationID(c)).Msg("internal server error")
		return utils.SendMessage(c, fiber.StatusInternalServerError, "internal server error")
	}
}

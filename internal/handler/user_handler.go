package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/opencampus/portal/internal/dto"
	"github.com/opencampus/portal/internal/middleware"
	"github.com/opencampus/portal/internal/models"
	"github.com/opencampus/portal/internal/service"
	"github.com/opencampus/portal/internal/utils"
)

// UserHandler wires account listing and profile endpoints.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register attaches user endpoints to the router group.
func (h *UserHandler) Register(router fiber.Router) {
	router.Get("/students", middleware.RequireRole(models.RoleTeacher), h.listStudents)
	router.Get("/teachers", h.listTeachers)
	router.Put("/profile", h.updateProfile)
}

func (h *UserHandler) listStudents(c *fiber.Ctx) error {
	students, err := h.service.ListStudents(c.Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"students": students})
}

func (h *UserHandler) listTeachers(c *fiber.Ctx) error {
	teachers, err := h.service.ListTeachers(c.Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"teachers": teachers})
}

func (h *UserHandler) updateProfile(c *fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return utils.SendMessage(c, fiber.StatusUnauthorized, "Authentication required")
	}

	var payload dto.ProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendMessage(c, fiber.StatusBadRequest, "invalid request body")
	}

	updated, err := h.service.UpdateProfile(c.Context(), user, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    updated,
	})
}

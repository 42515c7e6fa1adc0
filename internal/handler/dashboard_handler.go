package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/opencampus/portal/internal/middleware"
	"github.com/opencampus/portal/internal/models"
	"github.com/opencampus/portal/internal/service"
	"github.com/opencampus/portal/internal/utils"
)

// DashboardHandler serves per-role summary endpoints.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches dashboard endpoints to the router group.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/student", middleware.RequireRole(models.RoleStudent), h.student)
	router.Get("/teacher", middleware.RequireRole(models.RoleTeacher), h.teacher)
}

func (h *DashboardHandler) student(c *fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return utils.SendMessage(c, fiber.StatusUnauthorized, "Authentication required")
	}

	dashboard, err := h.service.StudentDashboard(c.Context(), user)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"dashboard": dashboard})
}

func (h *DashboardHandler) teacher(c *fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return utils.SendMessage(c, fiber.StatusUnauthorized, "Authentication required")
	}

	dashboard, err := h.service.TeacherDashboard(c.Context(), user)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"dashboard": dashboard})
}

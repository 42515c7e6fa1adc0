package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/opencampus/portal/internal/dto"
	"github.com/opencampus/portal/internal/middleware"
	"github.com/opencampus/portal/internal/models"
	"github.com/opencampus/portal/internal/service"
	"github.com/opencampus/portal/internal/utils"
)

// AssignmentHandler wires assignment and submission HTTP routes.
type AssignmentHandler struct {
	assignments service.AssignmentService
	submissions service.SubmissionService
	logger      zerolog.Logger
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(assignments service.AssignmentService, submissions service.SubmissionService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		assignments: assignments,
		submissions: submissions,
		logger:      logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches assignment endpoints to the router group. The group is
// expected to run behind the Authenticate gate.
func (h *AssignmentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", middleware.RequireRole(models.RoleTeacher), h.create)
	router.Get("/submissions/:submissionId/download", h.download)
	router.Put("/submissions/:submissionId/evaluate", middleware.RequireRole(models.RoleTeacher), h.evaluate)
	router.Get("/:id", h.get)
	router.Post("/:id/submit", middleware.RequireRole(models.RoleStudent), h.submit)
	router.Get("/:id/submissions", middleware.RequireRole(models.RoleTeacher), h.listSubmissions)
}

func (h *AssignmentHandler) create(c *fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return utils.SendMessage(c, fiber.StatusUnauthorized, "Authentication required")
	}

	var payload dto.AssignmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendMessage(c, fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.assignments.Create(c.Context(), user, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Assignment created successfully",
		"assignment": assignment,
	})
}

func (h *AssignmentHandler) list(c *fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return utils.SendMessage(c, fiber.StatusUnauthorized, "Authentication required")
	}

	assignments, err := h.assignments.ListForUser(c.Context(), user)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"assignments": assignments})
}

func (h *AssignmentHandler) get(c *fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return utils.SendMessage(c, fiber.StatusUnauthorized, "Authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendMessage(c, fiber.StatusBadRequest, err.Error())
	}

	assignment, err := h.assignments.GetForUser(c.Context(), user, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"assignment": assignment})
}

func (h *AssignmentHandler) submit(c *fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return utils.SendMessage(c, fiber.StatusUnauthorized, "Authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendMessage(c, fiber.StatusBadRequest, err.Error())
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendMessage(c, fiber.StatusBadRequest, "Please upload a file")
	}

	receipt, err := h.submissions.Submit(c.Context(), user, id, file)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Assignment submitted successfully",
		"submission": receipt,
	})
}

func (h *AssignmentHandler) listSubmissions(c *fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return utils.SendMessage(c, fiber.StatusUnauthorized, "Authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendMessage(c, fiber.StatusBadRequest, err.Error())
	}

	submissions, err := h.submissions.ListForAssignment(c.Context(), user, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"submissions": submissions})
}

func (h *AssignmentHandler) evaluate(c *fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return utils.SendMessage(c, fiber.StatusUnauthorized, "Authentication required")
	}

	id, err := parseUintParam(c, "submissionId")
	if err != nil {
		return utils.SendMessage(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.EvaluateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendMessage(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.submissions.Evaluate(c.Context(), user, id, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Submission evaluated successfully",
		"submission": result,
	})
}

func (h *AssignmentHandler) download(c *fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return utils.SendMessage(c, fiber.StatusUnauthorized, "Authentication required")
	}

	id, err := parseUintParam(c, "submissionId")
	if err != nil {
		return utils.SendMessage(c, fiber.StatusBadRequest, err.Error())
	}

	file, err := h.submissions.Download(c.Context(), user, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.Set(fiber.HeaderContentType, "application/octet-stream")

	return c.SendStream(file.Reader, int(file.FileSize))
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/opencampus/portal/internal/dto"
	"github.com/opencampus/portal/internal/models"
	"github.com/opencampus/portal/internal/repository"
)

// ErrAssignmentNotFound indicates the requested assignment does not exist.
var ErrAssignmentNotFound = errors.New("assignment not found")

// AssignmentService exposes assignment domain use cases.
type AssignmentService interface {
	Create(ctx context.Context, teacher models.User, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error)
	ListForUser(ctx context.Context, user models.User) ([]dto.AssignmentResponse, error)
	GetForUser(ctx context.Context, user models.User, id uint) (dto.AssignmentResponse, error)
}

type assignmentService struct {
	assignments    repository.AssignmentRepository
	submissions    repository.SubmissionRepository
	validator      *validator.Validate
	sanitizer      *bluemonday.Policy
	minDescription int
	logger         zerolog.Logger
}

// NewAssignmentService builds a new assignment service. minDescription is the
// configured description length threshold.
func NewAssignmentService(assignments repository.AssignmentRepository, submissions repository.SubmissionRepository, validate *validator.Validate, minDescription int, logger zerolog.Logger) AssignmentService {
	if minDescription <= 0 {
		minDescription = 10
	}

	return &assignmentService{
		assignments:    assignments,
		submissions:    submissions,
		validator:      validate,
		sanitizer:      bluemonday.StrictPolicy(),
		minDescription: minDescription,
		logger:         logger.With().Str("component", "assignment_service").Logger(),
	}
}

func (s *assignmentService) Create(ctx context.Context, teacher models.User, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	description := strings.TrimSpace(payload.Description)
	if utf8.RuneCountInString(description) < s.minDescription {
		return dto.AssignmentResponse{}, ruleErrorf("description must be at least %d characters", s.minDescription)
	}

	dueDate, err := time.Parse(time.RFC3339, payload.DueDate)
	if err != nil {
		return dto.AssignmentResponse{}, fmt.Errorf("invalid due date: %w", err)
	}

	assignment := models.Assignment{
		Title:        strings.TrimSpace(payload.Title),
		Description:  description,
		TeacherID:    teacher.ID,
		DueDate:      dueDate,
		MaxMarks:     payload.MaxMarks,
		Subject:      strings.TrimSpace(payload.Subject),
		Instructions: strings.TrimSpace(s.sanitizer.Sanitize(payload.Instructions)),
		IsActive:     true,
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment.Teacher = teacher

	s.logger.Info().Uint("assignment_id", assignment.ID).Uint("teacher_id", teacher.ID).Msg("assignment created")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) ListForUser(ctx context.Context, user models.User) ([]dto.AssignmentResponse, error) {
	filter := repository.AssignmentFilter{ActiveOnly: true}
	if user.IsTeacher() {
		teacherID := user.ID
		filter.TeacherID = &teacherID
	}

	assignments, err := s.assignments.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		response := dto.NewAssignmentResponse(assignment)
		if user.IsStudent() {
			if err := s.annotate(ctx, &response, assignment.ID, user.ID); err != nil {
				return nil, err
			}
		}
		responses = append(responses, response)
	}

	return responses, nil
}

func (s *assignmentService) GetForUser(ctx context.Context, user models.User, id uint) (dto.AssignmentResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	response := dto.NewAssignmentResponse(assignment)
	if user.IsStudent() {
		if err := s.annotate(ctx, &response, assignment.ID, user.ID); err != nil {
			return dto.AssignmentResponse{}, err
		}
	}

	return response, nil
}

// annotate attaches the acting student's own submission to the response. The
// lookup is re-derived per assignment rather than cached.
func (s *assignmentService) annotate(ctx context.Context, response *dto.AssignmentResponse, assignmentID, studentID uint) error {
	submission, err := s.submissions.GetByAssignmentAndStudent(ctx, assignmentID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Submission = nil
			return nil
		}
		return err
	}

	response.Submission = dto.NewSubmissionStatus(submission)
	return nil
}

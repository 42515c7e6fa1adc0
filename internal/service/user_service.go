package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/opencampus/portal/internal/dto"
	"github.com/opencampus/portal/internal/models"
	"github.com/opencampus/portal/internal/repository"
)

// UserService exposes account listing and profile updates.
type UserService interface {
	ListStudents(ctx context.Context) ([]dto.UserResponse, error)
	ListTeachers(ctx context.Context) ([]dto.UserResponse, error)
	UpdateProfile(ctx context.Context, user models.User, payload dto.ProfileUpdateRequest) (dto.UserResponse, error)
}

type userService struct {
	users     repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(users repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		users:     users,
		validator: validate,
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) ListStudents(ctx context.Context) ([]dto.UserResponse, error) {
	students, err := s.users.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	return dto.NewUserResponseSlice(students), nil
}

func (s *userService) ListTeachers(ctx context.Context) ([]dto.UserResponse, error) {
	teachers, err := s.users.ListByRole(ctx, models.RoleTeacher)
	if err != nil {
		return nil, err
	}

	return dto.NewUserResponseSlice(teachers), nil
}

func (s *userService) UpdateProfile(ctx context.Context, user models.User, payload dto.ProfileUpdateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	user.FullName = strings.TrimSpace(payload.FullName)
	user.Department = strings.TrimSpace(payload.Department)

	// Only students carry a student identifier.
	if user.IsStudent() && strings.TrimSpace(payload.StudentID) != "" {
		user.StudentID = strings.TrimSpace(payload.StudentID)
	}

	if err := s.users.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("profile updated")

	return dto.NewUserResponse(user), nil
}

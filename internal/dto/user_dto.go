package dto

import (
	"time"

	"github.com/opencampus/portal/internal/models"
)

// UserResponse is the serialized account representation. The password hash is
// never part of it.
type UserResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	FullName   string    `json:"fullName"`
	Department string    `json:"department"`
	StudentID  string    `json:"studentId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ProfileUpdateRequest updates mutable profile fields. StudentID is honoured
// only when the acting user holds the student role.
type ProfileUpdateRequest struct {
	FullName   string `json:"fullName" validate:"required,min=2"`
	Department string `json:"department" validate:"omitempty,max=255"`
	StudentID  string `json:"studentId" validate:"omitempty,max=64"`
}

// NewUserResponse converts a model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:         model.ID,
		Username:   model.Username,
		Email:      model.Email,
		Role:       model.Role,
		FullName:   model.FullName,
		Department: model.Department,
		StudentID:  model.StudentID,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

// NewUserResponseSlice converts a slice of models into DTOs.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}

	return responses
}

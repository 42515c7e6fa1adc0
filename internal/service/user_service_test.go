package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/portal/internal/dto"
	"github.com/opencampus/portal/internal/models"
)

func newUserFixture(t *testing.T) (*memoryUserRepo, UserService) {
	t.Helper()
	users := newMemoryUserRepo()
	seed := []models.User{
		{Username: "zoe", FullName: "Zoe Park", Role: models.RoleStudent, StudentID: "S-010"},
		{Username: "amir", FullName: "Amir Khan", Role: models.RoleStudent, StudentID: "S-011"},
		{Username: "prof", FullName: "Pat Teacher", Role: models.RoleTeacher},
	}
	for i := range seed {
		require.NoError(t, users.Create(context.Background(), &seed[i]))
	}

	return users, NewUserService(users, validator.New(), testLogger())
}

func TestUserServiceListStudents(t *testing.T) {
	_, svc := newUserFixture(t)

	students, err := svc.ListStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	// Ordered by full name.
	require.Equal(t, "Amir Khan", students[0].FullName)
	require.Equal(t, "Zoe Park", students[1].FullName)
}

func TestUserServiceListTeachers(t *testing.T) {
	_, svc := newUserFixture(t)

	teachers, err := svc.ListTeachers(context.Background())
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	require.Equal(t, "prof", teachers[0].Username)
}

func TestUserServiceUpdateProfile(t *testing.T) {
	users, svc := newUserFixture(t)

	student, err := users.GetByUsername(context.Background(), "zoe")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), student, dto.ProfileUpdateRequest{
		FullName:   " Zoe Parker ",
		Department: "Mathematics",
		StudentID:  "S-020",
	})
	require.NoError(t, err)
	require.Equal(t, "Zoe Parker", updated.FullName)
	require.Equal(t, "Mathematics", updated.Department)
	require.Equal(t, "S-020", updated.StudentID)
}

func TestUserServiceUpdateProfileIgnoresStudentIDForTeachers(t *testing.T) {
	users, svc := newUserFixture(t)

	teacher, err := users.GetByUsername(context.Background(), "prof")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), teacher, dto.ProfileUpdateRequest{
		FullName:  "Pat Teacher",
		StudentID: "S-999",
	})
	require.NoError(t, err)
	require.Empty(t, updated.StudentID)
}

func TestUserServiceUpdateProfileValidation(t *testing.T) {
	users, svc := newUserFixture(t)

	student, err := users.GetByUsername(context.Background(), "zoe")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), student, dto.ProfileUpdateRequest{FullName: "Z"})
	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
}

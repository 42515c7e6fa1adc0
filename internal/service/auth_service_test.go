package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/opencampus/portal/internal/dto"
	"github.com/opencampus/portal/internal/models"
)

func newAuthFixture() (*memoryUserRepo, AuthService) {
	users := newMemoryUserRepo()
	svc := NewAuthService(users, validator.New(), "test-secret", time.Hour, testLogger())
	return users, svc
}

func registerPayload() dto.RegisterRequest {
	return dto.RegisterRequest{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "secret123",
		Role:     models.RoleStudent,
		FullName: "Jane Doe",
	}
}

func TestAuthServiceRegister(t *testing.T) {
	users, svc := newAuthFixture()

	response, err := svc.Register(context.Background(), registerPayload())
	require.NoError(t, err)
	require.Equal(t, "Account registered successfully", response.Message)
	require.NotEmpty(t, response.Token)
	require.Equal(t, "jdoe", response.User.Username)
	require.Equal(t, models.RoleStudent, response.User.Role)

	stored, err := users.GetByUsername(context.Background(), "jdoe")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", stored.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
}

func TestAuthServiceRegisterNormalizesUsername(t *testing.T) {
	users, svc := newAuthFixture()

	payload := registerPayload()
	payload.Username = "  JDoe "
	payload.Email = "JDoe@Example.com"

	_, err := svc.Register(context.Background(), payload)
	require.NoError(t, err)

	stored, err := users.GetByUsername(context.Background(), "jdoe")
	require.NoError(t, err)
	require.Equal(t, "jdoe@example.com", stored.Email)
}

func TestAuthServiceRegisterDuplicate(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.Register(context.Background(), registerPayload())
	require.NoError(t, err)

	payload := registerPayload()
	payload.Email = "other@example.com"
	_, err = svc.Register(context.Background(), payload)
	require.ErrorIs(t, err, ErrUserExists)
}

func TestAuthServiceRegisterIgnoresStudentIDForTeachers(t *testing.T) {
	users, svc := newAuthFixture()

	payload := registerPayload()
	payload.Role = models.RoleTeacher
	payload.StudentID = "S-100"

	_, err := svc.Register(context.Background(), payload)
	require.NoError(t, err)

	stored, err := users.GetByUsername(context.Background(), "jdoe")
	require.NoError(t, err)
	require.Empty(t, stored.StudentID)
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	_, svc := newAuthFixture()

	payload := registerPayload()
	payload.Role = "admin"

	_, err := svc.Register(context.Background(), payload)
	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
}

func TestAuthServiceLogin(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.Register(context.Background(), registerPayload())
	require.NoError(t, err)

	response, err := svc.Login(context.Background(), dto.LoginRequest{Username: "jdoe", Password: "secret123"})
	require.NoError(t, err)
	require.Equal(t, "Login successful", response.Message)
	require.NotEmpty(t, response.Token)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.Register(context.Background(), registerPayload())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "jdoe", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceLoginUnknownUser(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "secret123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceTokenClaims(t *testing.T) {
	_, svc := newAuthFixture()

	response, err := svc.Register(context.Background(), registerPayload())
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(response.Token, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(*tokenClaims)
	require.True(t, ok)
	require.Equal(t, models.RoleStudent, claims.Role)
	require.Equal(t, "1", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
}

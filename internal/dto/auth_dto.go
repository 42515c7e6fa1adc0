package dto

// RegisterRequest describes the payload for creating an account.
type RegisterRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=64"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Role       string `json:"role" validate:"required,oneof=student teacher"`
	FullName   string `json:"fullName" validate:"required,min=2"`
	Department string `json:"department" validate:"omitempty,max=255"`
	StudentID  string `json:"studentId" validate:"omitempty,max=64"`
}

// LoginRequest describes the credential payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the issued bearer token and the account record.
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

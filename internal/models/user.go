package models

import "time"

// Roles a portal account can hold.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// User represents a portal account. The password column stores a bcrypt hash
// and is never serialized.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"size:64;not null;uniqueIndex" json:"username"`
	Email      string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	Role       string    `gorm:"size:16;not null;index" json:"role"`
	FullName   string    `gorm:"size:255;not null" json:"full_name"`
	Department string    `gorm:"size:255" json:"department"`
	StudentID  string    `gorm:"size:64" json:"student_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsStudent reports whether the account holds the student role.
func (u User) IsStudent() bool {
	return u.Role == RoleStudent
}

// IsTeacher reports whether the account holds the teacher role.
func (u User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

package models

import "time"

// Assignment represents a gradable task authored by a teacher.
type Assignment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	TeacherID    uint      `gorm:"not null;index" json:"teacher_id"`
	Teacher      User      `json:"teacher"`
	DueDate      time.Time `gorm:"not null" json:"due_date"`
	MaxMarks     int       `gorm:"not null" json:"max_marks"`
	Subject      string    `gorm:"size:128;not null" json:"subject"`
	Instructions string    `gorm:"type:text" json:"instructions"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Submissions  []Submission
}

// IsPastDue returns true when the assignment deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}

// OwnedBy reports whether the assignment belongs to the given teacher.
func (a Assignment) OwnedBy(teacherID uint) bool {
	return a.TeacherID == teacherID
}

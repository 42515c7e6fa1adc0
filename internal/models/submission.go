package models

import "time"

// Submission represents a student's single file upload against one assignment.
// The composite unique index enforces at most one submission per
// (assignment, student) pair; the service-level duplicate check is advisory
// and this index is the backstop for racing submits.
type Submission struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	AssignmentID  uint       `gorm:"not null;uniqueIndex:idx_assignment_student" json:"assignment_id"`
	StudentID     uint       `gorm:"not null;uniqueIndex:idx_assignment_student" json:"student_id"`
	FilePath      string     `gorm:"size:512;not null" json:"file_path"`
	FileName      string     `gorm:"size:255;not null" json:"file_name"`
	FileSize      int64      `gorm:"not null" json:"file_size"`
	SubmittedAt   time.Time  `gorm:"not null" json:"submitted_at"`
	Marks         *int       `json:"marks"`
	Feedback      string     `gorm:"type:text" json:"feedback"`
	Comment       string     `gorm:"type:text" json:"comment"`
	IsEvaluated   bool       `gorm:"not null;default:false" json:"is_evaluated"`
	EvaluatedAt   *time.Time `json:"evaluated_at"`
	EvaluatedByID *uint      `json:"evaluated_by_id"`
	EvaluatedBy   *User      `gorm:"foreignKey:EvaluatedByID" json:"evaluated_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Assignment    Assignment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignment"`
	Student       User       `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}

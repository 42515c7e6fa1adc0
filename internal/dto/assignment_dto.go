package dto

import (
	"time"

	"github.com/opencampus/portal/internal/models"
)

// AssignmentCreateRequest describes the payload for creating a new assignment.
// The description minimum is enforced in the service against the configured
// threshold, so the tag only requires presence.
type AssignmentCreateRequest struct {
	Title        string `json:"title" validate:"required,min=3"`
	Description  string `json:"description" validate:"required"`
	DueDate      string `json:"dueDate" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	MaxMarks     int    `json:"maxMarks" validate:"required,gte=1"`
	Subject      string `json:"subject" validate:"required,min=2"`
	Instructions string `json:"instructions" validate:"omitempty"`
}

// TeacherLite summarizes the owning teacher in assignment responses.
type TeacherLite struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
}

// SubmissionStatus annotates an assignment with the acting student's own
// submission. A nil value means the student has not submitted yet.
type SubmissionStatus struct {
	ID          uint      `json:"id"`
	SubmittedAt time.Time `json:"submittedAt"`
	Marks       *int      `json:"marks"`
	Feedback    string    `json:"feedback"`
	Comment     string    `json:"comment"`
	IsEvaluated bool      `json:"isEvaluated"`
	FileName    string    `json:"fileName"`
}

// AssignmentResponse is the serialized representation returned to API clients.
type AssignmentResponse struct {
	ID           uint              `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Teacher      TeacherLite       `json:"teacher"`
	DueDate      time.Time         `json:"dueDate"`
	MaxMarks     int               `json:"maxMarks"`
	Subject      string            `json:"subject"`
	Instructions string            `json:"instructions"`
	IsActive     bool              `json:"isActive"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	Submission   *SubmissionStatus `json:"submission"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	response := AssignmentResponse{
		ID:           model.ID,
		Title:        model.Title,
		Description:  model.Description,
		DueDate:      model.DueDate,
		MaxMarks:     model.MaxMarks,
		Subject:      model.Subject,
		Instructions: model.Instructions,
		IsActive:     model.IsActive,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}

	if model.Teacher.ID != 0 {
		response.Teacher = TeacherLite{
			ID:       model.Teacher.ID,
			FullName: model.Teacher.FullName,
			Username: model.Teacher.Username,
		}
	} else {
		response.Teacher = TeacherLite{ID: model.TeacherID}
	}

	return response
}

// NewSubmissionStatus builds the per-student annotation from a submission.
func NewSubmissionStatus(model models.Submission) *SubmissionStatus {
	return &SubmissionStatus{
		ID:          model.ID,
		SubmittedAt: model.SubmittedAt,
		Marks:       model.Marks,
		Feedback:    model.Feedback,
		Comment:     model.Comment,
		IsEvaluated: model.IsEvaluated,
		FileName:    model.FileName,
	}
}

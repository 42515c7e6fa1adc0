package dto

import (
	"time"

	"github.com/opencampus/portal/internal/models"
)

// EvaluateRequest is the grading payload. Marks is validated against the
// parent assignment's maximum in the service.
type EvaluateRequest struct {
	Marks    *int    `json:"marks" validate:"required,gte=0"`
	Feedback *string `json:"feedback" validate:"omitempty"`
	Comment  *string `json:"comment" validate:"omitempty"`
}

// StudentLite summarizes a student without exposing full profile data.
type StudentLite struct {
	ID        uint   `json:"id"`
	FullName  string `json:"fullName"`
	Username  string `json:"username"`
	StudentID string `json:"studentId"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	ID           uint        `json:"id"`
	AssignmentID uint        `json:"assignmentId"`
	StudentID    uint        `json:"studentId"`
	FileName     string      `json:"fileName"`
	FileSize     int64       `json:"fileSize"`
	SubmittedAt  time.Time   `json:"submittedAt"`
	Marks        *int        `json:"marks"`
	Feedback     string      `json:"feedback"`
	Comment      string      `json:"comment"`
	IsEvaluated  bool        `json:"isEvaluated"`
	EvaluatedAt  *time.Time  `json:"evaluatedAt"`
	Student      StudentLite `json:"student"`
}

// SubmissionReceipt is the minimal acknowledgement returned on upload.
type SubmissionReceipt struct {
	ID          uint      `json:"id"`
	FileName    string    `json:"fileName"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// EvaluationResult is returned after grading a submission.
type EvaluationResult struct {
	ID          uint       `json:"id"`
	Marks       *int       `json:"marks"`
	Feedback    string     `json:"feedback"`
	Comment     string     `json:"comment"`
	IsEvaluated bool       `json:"isEvaluated"`
	EvaluatedAt *time.Time `json:"evaluatedAt"`
}

// NewSubmissionResponse converts a Submission model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	response := SubmissionResponse{
		ID:           model.ID,
		AssignmentID: model.AssignmentID,
		StudentID:    model.StudentID,
		FileName:     model.FileName,
		FileSize:     model.FileSize,
		SubmittedAt:  model.SubmittedAt,
		Marks:        model.Marks,
		Feedback:     model.Feedback,
		Comment:      model.Comment,
		IsEvaluated:  model.IsEvaluated,
		EvaluatedAt:  model.EvaluatedAt,
	}

	if model.Student.ID != 0 {
		response.Student = StudentLite{
			ID:        model.Student.ID,
			FullName:  model.Student.FullName,
			Username:  model.Student.Username,
			StudentID: model.Student.StudentID,
		}
	}

	return response
}

// NewSubmissionResponseSlice converts submission models into DTOs.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return responses
}

// NewSubmissionReceipt builds the upload acknowledgement.
func NewSubmissionReceipt(model models.Submission) SubmissionReceipt {
	return SubmissionReceipt{
		ID:          model.ID,
		FileName:    model.FileName,
		SubmittedAt: model.SubmittedAt,
	}
}

// NewEvaluationResult builds the grading acknowledgement.
func NewEvaluationResult(model models.Submission) EvaluationResult {
	return EvaluationResult{
		ID:          model.ID,
		Marks:       model.Marks,
		Feedback:    model.Feedback,
		Comment:     model.Comment,
		IsEvaluated: model.IsEvaluated,
		EvaluatedAt: model.EvaluatedAt,
	}
}

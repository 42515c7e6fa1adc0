package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/opencampus/portal/internal/authz"
	"github.com/opencampus/portal/internal/dto"
	"github.com/opencampus/portal/internal/models"
	"github.com/opencampus/portal/internal/repository"
	"github.com/opencampus/portal/internal/storage"
)

// ErrSubmissionNotFound indicates a submission could not be found.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrAccessDenied indicates the acting user may not operate on the resource.
var ErrAccessDenied = errors.New("access denied")

// ErrSubmissionFileMissing indicates the stored file is gone from disk even
// though the submission record exists.
var ErrSubmissionFileMissing = errors.New("submission file not found on server")

var allowedExtensions = map[string]struct{}{
	".jpeg": {}, ".jpg": {}, ".png": {}, ".gif": {},
	".pdf": {}, ".doc": {}, ".docx": {}, ".txt": {},
	".zip": {}, ".rar": {},
}

var allowedMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
	"application/zip",
	"application/x-zip-compressed",
	"application/x-rar-compressed",
	"application/x-rar",
}

// DownloadFile is a stored submission file ready for streaming to the caller.
type DownloadFile struct {
	Reader   io.ReadCloser
	FileName string
	FileSize int64
}

// SubmissionService orchestrates submission workflows.
type SubmissionService interface {
	Submit(ctx context.Context, student models.User, assignmentID uint, file *multipart.FileHeader) (dto.SubmissionReceipt, error)
	ListForAssignment(ctx context.Context, teacher models.User, assignmentID uint) ([]dto.SubmissionResponse, error)
	Evaluate(ctx context.Context, teacher models.User, submissionID uint, payload dto.EvaluateRequest) (dto.EvaluationResult, error)
	Download(ctx context.Context, user models.User, submissionID uint) (DownloadFile, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	store       storage.Store
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	maxBytes    int64
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(submissions repository.SubmissionRepository, assignments repository.AssignmentRepository, store storage.Store, validate *validator.Validate, maxBytes int64, logger zerolog.Logger) SubmissionService {
	if maxBytes <= 0 {
		maxBytes = 10 * 1024 * 1024
	}

	return &submissionService{
		submissions: submissions,
		assignments: assignments,
		store:       store,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		maxBytes:    maxBytes,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		tracer:      otel.Tracer("github.com/opencampus/portal/internal/service/submission"),
		now:         time.Now,
	}
}

func (s *submissionService) Submit(ctx context.Context, student models.User, assignmentID uint, file *multipart.FileHeader) (dto.SubmissionReceipt, error) {
	if file == nil {
		return dto.SubmissionReceipt{}, RuleError{Message: "Please upload a file"}
	}

	spanCtx, span := s.tracer.Start(ctx, "submissions.submit", trace.WithAttributes(
		attribute.Int64("assignment.id", int64(assignmentID)),
		attribute.Int64("student.id", int64(student.ID)),
	))
	defer span.End()
	ctx = spanCtx

	if file.Size > s.maxBytes {
		return dto.SubmissionReceipt{}, ruleErrorf("File size too large. Maximum size is %dMB.", s.maxBytes/(1024*1024))
	}

	if err := validateFileType(file); err != nil {
		return dto.SubmissionReceipt{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionReceipt{}, ErrAssignmentNotFound
		}
		return dto.SubmissionReceipt{}, err
	}

	if !assignment.IsActive {
		return dto.SubmissionReceipt{}, RuleError{Message: "Assignment is no longer active"}
	}

	if assignment.IsPastDue(s.now()) {
		return dto.SubmissionReceipt{}, RuleError{Message: "Assignment submission deadline has passed"}
	}

	// Advisory duplicate check; the unique index on (assignment_id,
	// student_id) is the backstop for a racing second submit, which then
	// fails the insert without a retry.
	_, err = s.submissions.GetByAssignmentAndStudent(ctx, assignment.ID, student.ID)
	if err == nil {
		return dto.SubmissionReceipt{}, RuleError{Message: "You have already submitted this assignment"}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SubmissionReceipt{}, err
	}

	reader, err := file.Open()
	if err != nil {
		return dto.SubmissionReceipt{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	stored, err := s.store.Save(ctx, file.Filename, reader)
	if err != nil {
		return dto.SubmissionReceipt{}, fmt.Errorf("failed to store file: %w", err)
	}

	submission := models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    student.ID,
		FilePath:     stored.Path,
		FileName:     file.Filename,
		FileSize:     stored.Size,
		SubmittedAt:  s.now(),
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.SubmissionReceipt{}, err
	}

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Uint("assignment_id", assignment.ID).
		Uint("student_id", student.ID).
		Msg("submission created")

	return dto.NewSubmissionReceipt(submission), nil
}

func (s *submissionService) ListForAssignment(ctx context.Context, teacher models.User, assignmentID uint) ([]dto.SubmissionResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	if !authz.CanAssignment(teacher, assignment, authz.ListSubmissions) {
		return nil, ErrAccessDenied
	}

	submissions, err := s.submissions.ListByAssignment(ctx, assignment.ID)
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

func (s *submissionService) Evaluate(ctx context.Context, teacher models.User, submissionID uint, payload dto.EvaluateRequest) (dto.EvaluationResult, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EvaluationResult{}, err
	}

	spanCtx, span := s.tracer.Start(ctx, "submissions.evaluate", trace.WithAttributes(
		attribute.Int64("submission.id", int64(submissionID)),
		attribute.Int64("teacher.id", int64(teacher.ID)),
	))
	defer span.End()
	ctx = spanCtx

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EvaluationResult{}, ErrSubmissionNotFound
		}
		return dto.EvaluationResult{}, err
	}

	if !authz.CanSubmission(teacher, submission, authz.Evaluate) {
		return dto.EvaluationResult{}, ErrAccessDenied
	}

	marks := *payload.Marks
	if marks > submission.Assignment.MaxMarks {
		return dto.EvaluationResult{}, ruleErrorf("Marks cannot exceed maximum marks (%d)", submission.Assignment.MaxMarks)
	}

	feedback := ""
	if payload.Feedback != nil {
		feedback = strings.TrimSpace(s.sanitizer.Sanitize(*payload.Feedback))
	}

	comment := ""
	if payload.Comment != nil {
		comment = strings.TrimSpace(s.sanitizer.Sanitize(*payload.Comment))
	}

	evaluatedAt := s.now()
	evaluatedBy := teacher.ID

	submission.Marks = &marks
	submission.Feedback = feedback
	submission.Comment = comment
	submission.IsEvaluated = true
	submission.EvaluatedAt = &evaluatedAt
	submission.EvaluatedByID = &evaluatedBy

	if err := s.submissions.Update(ctx, &submission); err != nil {
		return dto.EvaluationResult{}, err
	}

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Uint("teacher_id", teacher.ID).
		Int("marks", marks).
		Msg("submission evaluated")

	return dto.NewEvaluationResult(submission), nil
}

func (s *submissionService) Download(ctx context.Context, user models.User, submissionID uint) (DownloadFile, error) {
	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DownloadFile{}, ErrSubmissionNotFound
		}
		return DownloadFile{}, err
	}

	if !authz.CanSubmission(user, submission, authz.Download) {
		return DownloadFile{}, ErrAccessDenied
	}

	reader, err := s.store.Open(submission.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrFileMissing) {
			return DownloadFile{}, ErrSubmissionFileMissing
		}
		return DownloadFile{}, err
	}

	return DownloadFile{
		Reader:   reader,
		FileName: submission.FileName,
		FileSize: submission.FileSize,
	}, nil
}

func validateFileType(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return RuleError{Message: "Invalid file type. Only images, documents, and archives are allowed."}
	}

	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("failed to detect file type: %w", err)
	}

	for _, allowed := range allowedMimeTypes {
		if mime.Is(allowed) {
			return nil
		}
	}

	return RuleError{Message: "Invalid file type. Only images, documents, and archives are allowed."}
}

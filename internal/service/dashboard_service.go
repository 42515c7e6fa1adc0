package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/opencampus/portal/internal/dto"
	"github.com/opencampus/portal/internal/models"
	"github.com/opencampus/portal/internal/repository"
)

// DashboardService produces per-role summary counts, cached in Redis. Cache
// reads and writes are best-effort: Redis being unavailable degrades to
// direct repository reads.
type DashboardService interface {
	StudentDashboard(ctx context.Context, student models.User) (dto.StudentDashboardResponse, error)
	TeacherDashboard(ctx context.Context, teacher models.User) (dto.TeacherDashboardResponse, error)
}

type dashboardService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(assignments repository.AssignmentRepository, submissions repository.SubmissionRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		assignments: assignments,
		submissions: submissions,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
		now:         time.Now,
	}
}

func (s *dashboardService) StudentDashboard(ctx context.Context, student models.User) (dto.StudentDashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:student:%d", student.ID)

	var cached dto.StudentDashboardResponse
	if s.readCache(ctx, cacheKey, &cached) {
		return cached, nil
	}

	assignments, err := s.assignments.List(ctx, repository.AssignmentFilter{ActiveOnly: true})
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	submissions, err := s.submissions.ListByStudent(ctx, student.ID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	response := s.buildStudentResponse(assignments, submissions)
	s.writeCache(ctx, cacheKey, response)

	return response, nil
}

func (s *dashboardService) TeacherDashboard(ctx context.Context, teacher models.User) (dto.TeacherDashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:teacher:%d", teacher.ID)

	var cached dto.TeacherDashboardResponse
	if s.readCache(ctx, cacheKey, &cached) {
		return cached, nil
	}

	teacherID := teacher.ID
	assignments, err := s.assignments.List(ctx, repository.AssignmentFilter{TeacherID: &teacherID, ActiveOnly: true})
	if err != nil {
		return dto.TeacherDashboardResponse{}, err
	}

	submissions, err := s.submissions.ListByTeacher(ctx, teacher.ID)
	if err != nil {
		return dto.TeacherDashboardResponse{}, err
	}

	response := dto.TeacherDashboardResponse{Assignments: len(assignments)}
	for _, submission := range submissions {
		response.Submissions++
		if submission.IsEvaluated {
			response.Evaluated++
		} else {
			response.AwaitingGrading++
		}
	}

	s.writeCache(ctx, cacheKey, response)

	return response, nil
}

func (s *dashboardService) buildStudentResponse(assignments []models.Assignment, submissions []models.Submission) dto.StudentDashboardResponse {
	now := s.now()
	submissionByAssignment := make(map[uint]models.Submission, len(submissions))
	for _, submission := range submissions {
		submissionByAssignment[submission.AssignmentID] = submission
	}

	response := dto.StudentDashboardResponse{}
	var marksTotal int
	var markedCount int

	for _, assignment := range assignments {
		response.TotalAssignments++
		submission, submitted := submissionByAssignment[assignment.ID]

		if !submitted {
			response.Pending++
			if assignment.IsPastDue(now) {
				response.Overdue++
			}
			continue
		}

		response.Submitted++
		if submission.IsEvaluated {
			response.Evaluated++
			if submission.Marks != nil {
				marksTotal += *submission.Marks
				markedCount++
			}
		}
	}

	if markedCount > 0 {
		response.AverageMarks = float64(marksTotal) / float64(markedCount)
	}

	return response
}

func (s *dashboardService) readCache(ctx context.Context, key string, target interface{}) bool {
	if s.cache == nil {
		return false
	}

	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to read dashboard cache")
		}
		return false
	}

	if err := json.Unmarshal([]byte(cached), target); err != nil {
		return false
	}

	s.logger.Debug().Str("key", key).Msg("dashboard cache hit")
	return true
}

func (s *dashboardService) writeCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to store dashboard cache")
	}
}

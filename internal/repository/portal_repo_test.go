package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/opencampus/portal/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Assignment{}, &models.Submission{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
		Role:     role,
		FullName: "User " + username,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedAssignment(t *testing.T, db *gorm.DB, teacherID uint, active bool, createdAt time.Time) models.Assignment {
	t.Helper()
	assignment := models.Assignment{
		Title:       "Assignment",
		Description: "Work through the exercises.",
		TeacherID:   teacherID,
		DueDate:     time.Now().Add(72 * time.Hour),
		MaxMarks:    100,
		IsActive:    active,
	}
	assignment.CreatedAt = createdAt
	require.NoError(t, db.Create(&assignment).Error)
	return assignment
}

func seedSubmission(t *testing.T, db *gorm.DB, assignmentID, studentID uint, submittedAt time.Time) models.Submission {
	t.Helper()
	submission := models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		FilePath:     "/tmp/file",
		FileName:     "file.txt",
		FileSize:     12,
		SubmittedAt:  submittedAt,
	}
	require.NoError(t, db.Create(&submission).Error)
	return submission
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := seedUser(t, db, "zoe", models.RoleStudent)
	seedUser(t, db, "amir", models.RoleStudent)
	seedUser(t, db, "prof", models.RoleTeacher)

	fetched, err := repo.GetByUsername(ctx, "zoe")
	require.NoError(t, err)
	require.Equal(t, created.ID, fetched.ID)

	_, err = repo.GetByUsername(ctx, "ghost")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	exists, err := repo.ExistsByUsernameOrEmail(ctx, "nobody", "zoe@example.com")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, "nobody", "nobody@example.com")
	require.NoError(t, err)
	require.False(t, exists)

	students, err := repo.ListByRole(ctx, models.RoleStudent)
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.Equal(t, "User amir", students[0].FullName, "expected full name ordering")
}

func TestAssignmentRepositoryListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAssignmentRepository(db)
	ctx := context.Background()

	teacher := seedUser(t, db, "prof", models.RoleTeacher)
	other := seedUser(t, db, "rival", models.RoleTeacher)

	older := seedAssignment(t, db, teacher.ID, true, time.Now().Add(-2*time.Hour))
	newer := seedAssignment(t, db, teacher.ID, true, time.Now().Add(-1*time.Hour))
	seedAssignment(t, db, teacher.ID, false, time.Now())
	seedAssignment(t, db, other.ID, true, time.Now())

	teacherID := teacher.ID
	listed, err := repo.List(ctx, AssignmentFilter{TeacherID: &teacherID, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, newer.ID, listed[0].ID, "expected newest first")
	require.Equal(t, older.ID, listed[1].ID)
	require.Equal(t, "prof", listed[0].Teacher.Username, "expected teacher preloaded")

	all, err := repo.List(ctx, AssignmentFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestSubmissionRepositoryUniquePerStudent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewSubmissionRepository(db)

	teacher := seedUser(t, db, "prof", models.RoleTeacher)
	student := seedUser(t, db, "sam", models.RoleStudent)
	assignment := seedAssignment(t, db, teacher.ID, true, time.Now())

	first := models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    student.ID,
		FilePath:     "/tmp/a",
		FileName:     "a.txt",
		SubmittedAt:  time.Now(),
	}
	require.NoError(t, repo.Create(ctx, &first))

	duplicate := models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    student.ID,
		FilePath:     "/tmp/b",
		FileName:     "b.txt",
		SubmittedAt:  time.Now(),
	}
	require.Error(t, repo.Create(ctx, &duplicate), "expected composite unique index violation")
}

func TestSubmissionRepositoryQueries(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewSubmissionRepository(db)

	teacher := seedUser(t, db, "prof", models.RoleTeacher)
	rival := seedUser(t, db, "rival", models.RoleTeacher)
	sam := seedUser(t, db, "sam", models.RoleStudent)
	lee := seedUser(t, db, "lee", models.RoleStudent)

	owned := seedAssignment(t, db, teacher.ID, true, time.Now())
	foreign := seedAssignment(t, db, rival.ID, true, time.Now())

	older := seedSubmission(t, db, owned.ID, sam.ID, time.Now().Add(-2*time.Hour))
	newer := seedSubmission(t, db, owned.ID, lee.ID, time.Now().Add(-1*time.Hour))
	seedSubmission(t, db, foreign.ID, sam.ID, time.Now())

	byAssignment, err := repo.ListByAssignment(ctx, owned.ID)
	require.NoError(t, err)
	require.Len(t, byAssignment, 2)
	require.Equal(t, newer.ID, byAssignment[0].ID, "expected newest submission first")
	require.Equal(t, "lee", byAssignment[0].Student.Username, "expected student preloaded")
	require.Equal(t, "prof", byAssignment[0].Assignment.Teacher.Username, "expected nested teacher preloaded")

	byStudent, err := repo.ListByStudent(ctx, sam.ID)
	require.NoError(t, err)
	require.Len(t, byStudent, 2)

	byTeacher, err := repo.ListByTeacher(ctx, teacher.ID)
	require.NoError(t, err)
	require.Len(t, byTeacher, 2)

	found, err := repo.GetByAssignmentAndStudent(ctx, owned.ID, sam.ID)
	require.NoError(t, err)
	require.Equal(t, older.ID, found.ID)

	_, err = repo.GetByAssignmentAndStudent(ctx, owned.ID, 999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	marks := 80
	found.Marks = &marks
	found.IsEvaluated = true
	require.NoError(t, repo.Update(ctx, &found))

	updated, err := repo.GetByID(ctx, found.ID)
	require.NoError(t, err)
	require.True(t, updated.IsEvaluated)
	require.Equal(t, 80, *updated.Marks)
}

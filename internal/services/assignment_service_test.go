package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository/memory"
)

func newAssignmentFixture(t *testing.T) (*AssignmentService, *GamificationService) {
	t.Helper()
	gamification := NewGamificationService(memory.NewGamificationRepository())
	svc := NewAssignmentService(
		memory.NewAssignmentRepository(),
		memory.NewScheduleRepository(),
		memory.NewAttemptRepository(),
		gamification,
	)
	return svc, gamification
}

func createAssignment(t *testing.T, svc *AssignmentService, teacherID uuid.UUID) *models.Assignment {
	t.Helper()
	assignment, err := svc.CreateAssignment(teacherID, "Fractions Quiz", "Chapter 4", "math", 100, nil)
	require.NoError(t, err)
	return assignment
}

func TestCreateAssignmentValidation(t *testing.T) {
	svc, _ := newAssignmentFixture(t)

	_, err := svc.CreateAssignment(uuid.New(), "", "", "math", 100, nil)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "title")
}

func TestAssignmentOwnership(t *testing.T) {
	svc, _ := newAssignmentFixture(t)
	teacher := uuid.New()
	assignment := createAssignment(t, svc, teacher)

	newTitle := "Fractions Quiz v2"
	_, err := svc.UpdateAssignment(assignment.ID, uuid.New(), &newTitle, nil, nil)
	assert.ErrorIs(t, err, ErrNotAssignmentOwner)

	updated, err := svc.UpdateAssignment(assignment.ID, teacher, &newTitle, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)

	assert.ErrorIs(t, svc.DeleteAssignment(assignment.ID, uuid.New()), ErrNotAssignmentOwner)
	require.NoError(t, svc.DeleteAssignment(assignment.ID, teacher))
	_, err = svc.GetAssignment(assignment.ID)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestSubmitAttempt(t *testing.T) {
	svc, gamification := newAssignmentFixture(t)
	teacher := uuid.New()
	student := uuid.New()
	assignment := createAssignment(t, svc, teacher)

	_, err := svc.SubmitAttempt(student, assignment.ID, 150, 60000)
	assert.ErrorIs(t, err, ErrScoreOutOfRange)

	_, err = svc.SubmitAttempt(student, uuid.New(), 50, 60000)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)

	attempt, err := svc.SubmitAttempt(student, assignment.ID, 85, 60000)
	require.NoError(t, err)
	assert.Equal(t, 85, attempt.Score)
	assert.Equal(t, 100, attempt.MaxScore)

	// The score is credited as points.
	stats, err := gamification.GetStats(student)
	require.NoError(t, err)
	assert.Equal(t, 85, stats.Points)
	assert.Equal(t, 1, stats.TotalAttempts)

	attempts, err := svc.ListAttempts(student, 10)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
}

func TestSubmitAttemptClosesScheduleWindow(t *testing.T) {
	svc, _ := newAssignmentFixture(t)
	teacher := uuid.New()
	student := uuid.New()
	assignment := createAssignment(t, svc, teacher)

	now := time.Now()
	schedule, err := svc.CreateSchedule(student, assignment.ID, now, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Nil(t, schedule.CompletedAt)

	upcoming, err := svc.ListUpcoming(student)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)

	_, err = svc.SubmitAttempt(student, assignment.ID, 70, 30000)
	require.NoError(t, err)

	upcoming, err = svc.ListUpcoming(student)
	require.NoError(t, err)
	assert.Empty(t, upcoming, "submitting an attempt completes the open window")

	schedules, err := svc.ListSchedules(student)
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.NotNil(t, schedules[0].CompletedAt)
}

func TestCreateScheduleRejectsInvertedWindow(t *testing.T) {
	svc, _ := newAssignmentFixture(t)
	assignment := createAssignment(t, svc, uuid.New())

	now := time.Now()
	_, err := svc.CreateSchedule(uuid.New(), assignment.ID, now, now.Add(-time.Hour))
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

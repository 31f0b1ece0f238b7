package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
)

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrScheduleNotFound   = errors.New("schedule not found")
	ErrNotAssignmentOwner = errors.New("only the owning teacher can modify this assignment")
	ErrScoreOutOfRange    = errors.New("score exceeds the assignment maximum")
)

type AssignmentService struct {
	assignments  repository.AssignmentRepository
	schedules    repository.ScheduleRepository
	attempts     repository.AttemptRepository
	gamification *GamificationService
	now          func() time.Time
}

func NewAssignmentService(assignments repository.AssignmentRepository, schedules repository.ScheduleRepository, attempts repository.AttemptRepository, gamification *GamificationService) *AssignmentService {
	return &AssignmentService{
		assignments:  assignments,
		schedules:    schedules,
		attempts:     attempts,
		gamification: gamification,
		now:          time.Now,
	}
}

func (s *AssignmentService) CreateAssignment(teacherID uuid.UUID, title, description, subject string, maxScore int, dueAt *time.Time) (*models.Assignment, error) {
	fields := map[string]string{}
	if title == "" {
		fields["title"] = "title is required"
	}
	if maxScore <= 0 {
		maxScore = 100
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	assignment := models.Assignment{
		ID:          uuid.New(),
		TeacherID:   teacherID,
		Title:       title,
		Description: description,
		Subject:     subject,
		MaxScore:    maxScore,
		DueAt:       dueAt,
	}
	if err := s.assignments.Create(&assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	return &assignment, nil
}

func (s *AssignmentService) GetAssignment(id uuid.UUID) (*models.Assignment, error) {
	assignment, err := s.assignments.GetByID(id)
	if err != nil {
		return nil, ErrAssignmentNotFound
	}
	return assignment, nil
}

// ListOwnAssignments returns everything the teacher has authored.
func (s *AssignmentService) ListOwnAssignments(teacherID uuid.UUID) ([]models.Assignment, error) {
	return s.assignments.ListByTeacher(teacherID)
}

// ListAssignmentAttempts returns every attempt at an assignment, best score
// first. Owner only.
func (s *AssignmentService) ListAssignmentAttempts(assignmentID, teacherID uuid.UUID) ([]models.Attempt, error) {
	assignment, err := s.assignments.GetByID(assignmentID)
	if err != nil {
		return nil, ErrAssignmentNotFound
	}
	if assignment.TeacherID != teacherID {
		return nil, ErrNotAssignmentOwner
	}
	return s.attempts.ListByAssignment(assignmentID)
}

func (s *AssignmentService) ListAssignments(subject string, limit, offset int) ([]models.Assignment, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.assignments.List(subject, limit, offset)
}

func (s *AssignmentService) UpdateAssignment(id, teacherID uuid.UUID, title, description *string, dueAt *time.Time) (*models.Assignment, error) {
	assignment, err := s.assignments.GetByID(id)
	if err != nil {
		return nil, ErrAssignmentNotFound
	}
	if assignment.TeacherID != teacherID {
		return nil, ErrNotAssignmentOwner
	}
	if title != nil {
		assignment.Title = *title
	}
	if description != nil {
		assignment.Description = *description
	}
	if dueAt != nil {
		assignment.DueAt = dueAt
	}
	if err := s.assignments.Update(assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}
	return assignment, nil
}

func (s *AssignmentService) DeleteAssignment(id, teacherID uuid.UUID) error {
	assignment, err := s.assignments.GetByID(id)
	if err != nil {
		return ErrAssignmentNotFound
	}
	if assignment.TeacherID != teacherID {
		return ErrNotAssignmentOwner
	}
	return s.assignments.Delete(id)
}

// CreateSchedule books a working window for an assignment on the user's
// own calendar.
func (s *AssignmentService) CreateSchedule(userID, assignmentID uuid.UUID, startsAt, endsAt time.Time) (*models.Schedule, error) {
	if !endsAt.After(startsAt) {
		return nil, &ValidationError{Fields: map[string]string{"ends_at": "window must end after it starts"}}
	}
	if _, err := s.assignments.GetByID(assignmentID); err != nil {
		return nil, ErrAssignmentNotFound
	}

	schedule := models.Schedule{
		ID:           uuid.New(),
		UserID:       userID,
		AssignmentID: assignmentID,
		StartsAt:     startsAt,
		EndsAt:       endsAt,
	}
	if err := s.schedules.Create(&schedule); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}
	return &schedule, nil
}

func (s *AssignmentService) ListSchedules(userID uuid.UUID) ([]models.Schedule, error) {
	return s.schedules.ListByUser(userID)
}

// DeleteSchedule removes a window from the user's own calendar.
func (s *AssignmentService) DeleteSchedule(id, userID uuid.UUID) error {
	schedule, err := s.schedules.GetByID(id)
	if err != nil {
		return ErrScheduleNotFound
	}
	if schedule.UserID != userID {
		return ErrScheduleNotFound
	}
	return s.schedules.Delete(id)
}

func (s *AssignmentService) ListUpcoming(userID uuid.UUID) ([]models.Schedule, error) {
	return s.schedules.ListUpcoming(userID, s.now())
}

// SubmitAttempt records a completed run, marks any open schedule window for
// the assignment done, and credits the score as gamification points.
func (s *AssignmentService) SubmitAttempt(userID, assignmentID uuid.UUID, score, durationMs int) (*models.Attempt, error) {
	assignment, err := s.assignments.GetByID(assignmentID)
	if err != nil {
		return nil, ErrAssignmentNotFound
	}
	if score < 0 || score > assignment.MaxScore {
		return nil, ErrScoreOutOfRange
	}

	now := s.now()
	attempt := models.Attempt{
		ID:           uuid.New(),
		UserID:       userID,
		AssignmentID: assignmentID,
		Score:        score,
		MaxScore:     assignment.MaxScore,
		DurationMs:   durationMs,
		CompletedAt:  now,
	}
	if err := s.attempts.Create(&attempt); err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	s.completeOpenSchedule(userID, assignmentID, now)

	if _, err := s.gamification.RecordActivity(userID, score); err != nil {
		slog.Warn("failed to credit attempt points", "user_id", userID, "error", err)
	}
	return &attempt, nil
}

func (s *AssignmentService) ListAttempts(userID uuid.UUID, limit int) ([]models.Attempt, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.attempts.ListByUser(userID, limit)
}

// CountAttempts counts from the attempt rows themselves, not the derived
// stats record.
func (s *AssignmentService) CountAttempts(userID uuid.UUID) (int64, error) {
	return s.attempts.CountByUser(userID)
}

func (s *AssignmentService) completeOpenSchedule(userID, assignmentID uuid.UUID, when time.Time) {
	schedules, err := s.schedules.ListByUser(userID)
	if err != nil {
		return
	}
	for _, schedule := range schedules {
		if schedule.AssignmentID == assignmentID && schedule.CompletedAt == nil {
			if err := s.schedules.MarkCompleted(schedule.ID, when); err != nil {
				slog.Warn("failed to close schedule window", "schedule_id", schedule.ID, "error", err)
			}
			return
		}
	}
}

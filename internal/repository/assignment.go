package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
)

type AssignmentRepository interface {
	Create(assignment *models.Assignment) error
	GetByID(id uuid.UUID) (*models.Assignment, error)
	List(subject string, limit, offset int) ([]models.Assignment, int64, error)
	ListByTeacher(teacherID uuid.UUID) ([]models.Assignment, error)
	Update(assignment *models.Assignment) error
	Delete(id uuid.UUID) error
}

type ScheduleRepository interface {
	Create(schedule *models.Schedule) error
	GetByID(id uuid.UUID) (*models.Schedule, error)
	ListByUser(userID uuid.UUID) ([]models.Schedule, error)
	// ListUpcoming returns open schedule windows ending after the given time.
	ListUpcoming(userID uuid.UUID, after time.Time) ([]models.Schedule, error)
	MarkCompleted(id uuid.UUID, when time.Time) error
	Delete(id uuid.UUID) error
}

type AttemptRepository interface {
	Create(attempt *models.Attempt) error
	ListByUser(userID uuid.UUID, limit int) ([]models.Attempt, error)
	ListByAssignment(assignmentID uuid.UUID) ([]models.Attempt, error)
	CountByUser(userID uuid.UUID) (int64, error)
}

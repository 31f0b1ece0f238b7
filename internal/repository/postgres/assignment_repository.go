package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
	"gorm.io/gorm"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(assignment *models.Assignment) error {
	if err := r.db.Create(assignment).Error; err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) GetByID(id uuid.UUID) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.First(&assignment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return &assignment, nil
}

func (r *AssignmentRepository) List(subject string, limit, offset int) ([]models.Assignment, int64, error) {
	var assignments []models.Assignment
	var total int64

	query := r.db.Model(&models.Assignment{})
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}
	query.Count(&total)

	err := query.Order("due_at ASC NULLS LAST, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&assignments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, total, nil
}

func (r *AssignmentRepository) ListByTeacher(teacherID uuid.UUID) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.Where("teacher_id = ?", teacherID).Order("created_at DESC").Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("list assignments by teacher: %w", err)
	}
	return assignments, nil
}

func (r *AssignmentRepository) Update(assignment *models.Assignment) error {
	result := r.db.Model(&models.Assignment{}).Where("id = ?", assignment.ID).Updates(map[string]interface{}{
		"title":       assignment.Title,
		"description": assignment.Description,
		"subject":     assignment.Subject,
		"max_score":   assignment.MaxScore,
		"due_at":      assignment.DueAt,
	})
	if result.Error != nil {
		return fmt.Errorf("update assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AssignmentRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Assignment{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(schedule *models.Schedule) error {
	if err := r.db.Create(schedule).Error; err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) GetByID(id uuid.UUID) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := r.db.First(&schedule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	return &schedule, nil
}

func (r *ScheduleRepository) ListByUser(userID uuid.UUID) ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := r.db.Where("user_id = ?", userID).Order("starts_at ASC").Find(&schedules).Error
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}

func (r *ScheduleRepository) ListUpcoming(userID uuid.UUID, after time.Time) ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := r.db.Where("user_id = ? AND ends_at > ? AND completed_at IS NULL", userID, after).
		Order("starts_at ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, fmt.Errorf("list upcoming schedules: %w", err)
	}
	return schedules, nil
}

func (r *ScheduleRepository) MarkCompleted(id uuid.UUID, when time.Time) error {
	result := r.db.Model(&models.Schedule{}).
		Where("id = ? AND completed_at IS NULL", id).
		Update("completed_at", when)
	if result.Error != nil {
		return fmt.Errorf("mark schedule completed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ScheduleRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Schedule{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete schedule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type AttemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

func (r *AttemptRepository) Create(attempt *models.Attempt) error {
	if err := r.db.Create(attempt).Error; err != nil {
		return fmt.Errorf("create attempt: %w", err)
	}
	return nil
}

func (r *AttemptRepository) ListByUser(userID uuid.UUID, limit int) ([]models.Attempt, error) {
	var attempts []models.Attempt
	query := r.db.Where("user_id = ?", userID).Order("completed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&attempts).Error; err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return attempts, nil
}

func (r *AttemptRepository) ListByAssignment(assignmentID uuid.UUID) ([]models.Attempt, error) {
	var attempts []models.Attempt
	err := r.db.Where("assignment_id = ?", assignmentID).Order("score DESC").Find(&attempts).Error
	if err != nil {
		return nil, fmt.Errorf("list attempts by assignment: %w", err)
	}
	return attempts, nil
}

func (r *AttemptRepository) CountByUser(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Attempt{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return count, nil
}

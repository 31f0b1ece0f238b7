package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
)

type AssignmentRepository struct {
	mu          sync.RWMutex
	assignments map[uuid.UUID]models.Assignment
}

func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{assignments: make(map[uuid.UUID]models.Assignment)}
}

func (r *AssignmentRepository) Create(assignment *models.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	assignment.CreatedAt = time.Now()
	r.assignments[assignment.ID] = *assignment
	return nil
}

func (r *AssignmentRepository) GetByID(id uuid.UUID) (*models.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	assignment, ok := r.assignments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &assignment, nil
}

func (r *AssignmentRepository) List(subject string, limit, offset int) ([]models.Assignment, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []models.Assignment
	for _, assignment := range r.assignments {
		if subject == "" || assignment.Subject == subject {
			all = append(all, assignment)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (r *AssignmentRepository) ListByTeacher(teacherID uuid.UUID) ([]models.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Assignment
	for _, assignment := range r.assignments {
		if assignment.TeacherID == teacherID {
			out = append(out, assignment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *AssignmentRepository) Update(assignment *models.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.assignments[assignment.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Title = assignment.Title
	existing.Description = assignment.Description
	existing.Subject = assignment.Subject
	existing.MaxScore = assignment.MaxScore
	existing.DueAt = assignment.DueAt
	existing.UpdatedAt = time.Now()
	r.assignments[assignment.ID] = existing
	return nil
}

func (r *AssignmentRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assignments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.assignments, id)
	return nil
}

type ScheduleRepository struct {
	mu        sync.RWMutex
	schedules map[uuid.UUID]models.Schedule
}

func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{schedules: make(map[uuid.UUID]models.Schedule)}
}

func (r *ScheduleRepository) Create(schedule *models.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if schedule.ID == uuid.Nil {
		schedule.ID = uuid.New()
	}
	schedule.CreatedAt = time.Now()
	r.schedules[schedule.ID] = *schedule
	return nil
}

func (r *ScheduleRepository) GetByID(id uuid.UUID) (*models.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	schedule, ok := r.schedules[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &schedule, nil
}

func (r *ScheduleRepository) ListByUser(userID uuid.UUID) ([]models.Schedule, error) {
	return r.list(func(s models.Schedule) bool { return s.UserID == userID })
}

func (r *ScheduleRepository) ListUpcoming(userID uuid.UUID, after time.Time) ([]models.Schedule, error) {
	return r.list(func(s models.Schedule) bool {
		return s.UserID == userID && s.EndsAt.After(after) && s.CompletedAt == nil
	})
}

func (r *ScheduleRepository) list(match func(models.Schedule) bool) ([]models.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Schedule
	for _, schedule := range r.schedules {
		if match(schedule) {
			out = append(out, schedule)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (r *ScheduleRepository) MarkCompleted(id uuid.UUID, when time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	schedule, ok := r.schedules[id]
	if !ok || schedule.CompletedAt != nil {
		return repository.ErrNotFound
	}
	schedule.CompletedAt = &when
	r.schedules[id] = schedule
	return nil
}

func (r *ScheduleRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.schedules[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.schedules, id)
	return nil
}

type AttemptRepository struct {
	mu       sync.RWMutex
	attempts []models.Attempt
}

func NewAttemptRepository() *AttemptRepository {
	return &AttemptRepository{}
}

func (r *AttemptRepository) Create(attempt *models.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}
	attempt.CreatedAt = time.Now()
	r.attempts = append(r.attempts, *attempt)
	return nil
}

func (r *AttemptRepository) ListByUser(userID uuid.UUID, limit int) ([]models.Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Attempt
	for _, attempt := range r.attempts {
		if attempt.UserID == userID {
			out = append(out, attempt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *AttemptRepository) ListByAssignment(assignmentID uuid.UUID) ([]models.Attempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Attempt
	for _, attempt := range r.attempts {
		if attempt.AssignmentID == assignmentID {
			out = append(out, attempt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func (r *AttemptRepository) CountByUser(userID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, attempt := range r.attempts {
		if attempt.UserID == userID {
			count++
		}
	}
	return count, nil
}

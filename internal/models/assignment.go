package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Assignment struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TeacherID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"teacher_id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Subject     string         `gorm:"size:50;index" json:"subject"`
	MaxScore    int            `gorm:"default:100" json:"max_score"`
	DueAt       *time.Time     `gorm:"index" json:"due_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Teacher     User           `gorm:"foreignKey:TeacherID" json:"-"`
}

// Schedule is a per-user window in which an assignment should be worked.
type Schedule struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	AssignmentID uuid.UUID  `gorm:"type:uuid;not null;index" json:"assignment_id"`
	StartsAt     time.Time  `gorm:"not null" json:"starts_at"`
	EndsAt       time.Time  `gorm:"not null" json:"ends_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	User         User       `gorm:"foreignKey:UserID" json:"-"`
	Assignment   Assignment `gorm:"foreignKey:AssignmentID" json:"-"`
}

// Attempt records one completed run at an assignment.
type Attempt struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	AssignmentID uuid.UUID  `gorm:"type:uuid;not null;index" json:"assignment_id"`
	Score        int        `gorm:"not null" json:"score"`
	MaxScore     int        `gorm:"not null" json:"max_score"`
	DurationMs   int        `json:"duration_ms"`
	CompletedAt  time.Time  `gorm:"not null;index" json:"completed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	User         User       `gorm:"foreignKey:UserID" json:"-"`
	Assignment   Assignment `gorm:"foreignKey:AssignmentID" json:"-"`
}

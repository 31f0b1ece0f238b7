package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAssignmentRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Subject     string     `json:"subject"`
	MaxScore    int        `json:"max_score"`
	DueAt       *time.Time `json:"due_at,omitempty"`
}

type UpdateAssignmentRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
}

type SubmitAttemptRequest struct {
	AssignmentID uuid.UUID `json:"assignment_id"`
	Score        int       `json:"score"`
	DurationMs   int       `json:"duration_ms"`
}

type CreateScheduleRequest struct {
	AssignmentID uuid.UUID `json:"assignment_id"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
}

type RegisterDeviceRequest struct {
	Platform  string                 `json:"platform"`
	PushToken string                 `json:"push_token"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type SaveLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

package dto

import "github.com/google/uuid"

type CreateSessionRequest struct {
	AssignmentID uuid.UUID              `json:"assignment_id"`
	Settings     map[string]interface{} `json:"settings,omitempty"`
}

type JoinSessionRequest struct {
	Code string `json:"code"`
}

type SubmitScoreRequest struct {
	Score int `json:"score"`
}

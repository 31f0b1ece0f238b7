package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	SessionWaiting  = "waiting"
	SessionActive   = "active"
	SessionFinished = "finished"
)

// GameSession is a live multiplayer round over an assignment, joined by code.
type GameSession struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code         string         `gorm:"size:8;not null;uniqueIndex" json:"code"`
	HostID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"host_id"`
	AssignmentID uuid.UUID      `gorm:"type:uuid;not null;index" json:"assignment_id"`
	Status       string         `gorm:"size:10;not null;default:'waiting';index" json:"status"`
	Settings     datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"settings"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	FinishedAt   *time.Time     `json:"finished_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	Host         User           `gorm:"foreignKey:HostID" json:"-"`
	Assignment   Assignment     `gorm:"foreignKey:AssignmentID" json:"-"`
}

type GamePlayer struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index:idx_game_players_session_user,unique" json:"session_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_game_players_session_user,unique" json:"user_id"`
	Score     int       `gorm:"default:0" json:"score"`
	JoinedAt  time.Time `json:"joined_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

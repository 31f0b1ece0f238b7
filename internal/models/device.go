package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Device is a registered mobile device for a user (push token registry).
type Device struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Platform  string         `gorm:"size:20;not null" json:"platform"`
	PushToken string         `gorm:"size:255;uniqueIndex" json:"push_token"`
	Metadata  datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata"`
	LastSeen  time.Time      `json:"last_seen"`
	CreatedAt time.Time      `json:"created_at"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
}

// LastLocation is the most recent reported location for a user, one row each.
type LastLocation struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
}

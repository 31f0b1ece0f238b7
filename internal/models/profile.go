package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the display profile attached to a user. A user without a row
// reads back as an empty profile, never as an error.
type Profile struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Bio        string    `gorm:"size:500" json:"bio"`
	GradeLevel string    `gorm:"size:20" json:"grade_level"`
	AvatarURL  string    `gorm:"size:500" json:"avatar_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
}

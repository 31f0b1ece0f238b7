package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProgressStat is the gamification record for a user: points, day streak
// and earned badges. Users without a row read back as zero-value stats.
type ProgressStat struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Points        int            `gorm:"default:0" json:"points"`
	CurrentStreak int            `gorm:"default:0" json:"current_streak"`
	LongestStreak int            `gorm:"default:0" json:"longest_streak"`
	TotalAttempts int            `gorm:"default:0" json:"total_attempts"`
	LastActivity  time.Time      `json:"last_activity"`
	Badges        datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"badges"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	User          User           `gorm:"foreignKey:UserID" json:"-"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetCode is a one-time numeric code bound to an email address.
// Verification flips Verified without consuming; the final reset sets
// ConsumedAt so the code can never be replayed.
type PasswordResetCode struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email      string     `gorm:"size:255;not null;index" json:"email"`
	CodeHash   string     `gorm:"size:64;not null;uniqueIndex" json:"-"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	Verified   bool       `gorm:"default:false" json:"verified"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
)

// RoleList is a set of role tags stored as a jsonb array.
type RoleList []string

func (r RoleList) Value() (driver.Value, error) {
	if r == nil {
		r = RoleList{}
	}
	return json.Marshal(r)
}

func (r *RoleList) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*r = RoleList{}
		return nil
	default:
		return fmt.Errorf("unsupported roles column type %T", value)
	}
	return json.Unmarshal(raw, r)
}

func (r RoleList) Has(role string) bool {
	for _, tag := range r {
		if tag == role {
			return true
		}
	}
	return false
}

type User struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email            string         `gorm:"size:255;uniqueIndex" json:"email"`
	Phone            *string        `gorm:"size:32;index" json:"phone,omitempty"`
	Password         string         `gorm:"not null" json:"-"`
	Roles            RoleList       `gorm:"type:jsonb;default:'[\"STUDENT\"]'" json:"roles"`
	DisplayName      string         `gorm:"size:100" json:"display_name"`
	AvatarURL        string         `gorm:"size:500" json:"avatar_url"`
	EmailConfirmedAt *time.Time     `json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	FriendshipPending  = "PENDING"
	FriendshipAccepted = "ACCEPTED"
	FriendshipBlocked  = "BLOCKED"
)

// Friendship is an edge between two users. Storage is directed
// (requester -> addressee) but at most one row may exist per unordered pair;
// the pair_key column normalizes the pair so a unique index can enforce it.
type Friendship struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index" json:"requester_id"`
	AddresseeID uuid.UUID `gorm:"type:uuid;not null;index" json:"addressee_id"`
	PairKey     string    `gorm:"size:80;not null;uniqueIndex" json:"-"`
	Status      string    `gorm:"size:10;not null;default:'PENDING';index" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Requester   User      `gorm:"foreignKey:RequesterID" json:"-"`
	Addressee   User      `gorm:"foreignKey:AddresseeID" json:"-"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// PairKeyFor builds the order-independent key for a user pair.
func PairKeyFor(a, b uuid.UUID) string {
	if a.String() < b.String() {
		return a.String() + ":" + b.String()
	}
	return b.String() + ":" + a.String()
}

// OtherUserID returns the counterpart of userID on this edge.
func (f *Friendship) OtherUserID(userID uuid.UUID) uuid.UUID {
	if f.RequesterID == userID {
		return f.AddresseeID
	}
	return f.RequesterID
}

// FriendshipWithUser is a friendship joined with the resolved counterpart
// profile. Composed by queries, never stored.
type FriendshipWithUser struct {
	Friendship
	User UserSummary `json:"user"`
}

type UserSummary struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
}

func SummaryOf(u *User) UserSummary {
	return UserSummary{ID: u.ID, DisplayName: u.DisplayName, AvatarURL: u.AvatarURL}
}

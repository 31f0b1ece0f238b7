package repository

import (
	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
)

type FriendshipRepository interface {
	// Create inserts a new edge. Returns ErrDuplicate when any edge already
	// exists for the unordered user pair.
	Create(friendship *models.Friendship) error
	GetByID(id uuid.UUID) (*models.Friendship, error)
	GetByPair(a, b uuid.UUID) (*models.Friendship, error)

	// ListFriends returns ACCEPTED edges touching the user, with the
	// counterpart profile resolved.
	ListFriends(userID uuid.UUID) ([]models.FriendshipWithUser, error)
	// ListReceived returns PENDING edges where the user is addressee.
	ListReceived(userID uuid.UUID) ([]models.FriendshipWithUser, error)
	// ListSent returns PENDING edges where the user is requester.
	ListSent(userID uuid.UUID) ([]models.FriendshipWithUser, error)
	// ListEdges returns every edge touching the user regardless of status.
	ListEdges(userID uuid.UUID) ([]models.Friendship, error)

	UpdateStatus(id uuid.UUID, status string) error
	Delete(id uuid.UUID) error
}

package postgres

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
	"gorm.io/gorm"
)

type FriendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

func (r *FriendshipRepository) Create(friendship *models.Friendship) error {
	friendship.PairKey = models.PairKeyFor(friendship.RequesterID, friendship.AddresseeID)
	if err := r.db.Create(friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("create friendship: %w", err)
	}
	return nil
}

func (r *FriendshipRepository) GetByID(id uuid.UUID) (*models.Friendship, error) {
	var friendship models.Friendship
	err := r.db.Preload("Requester").Preload("Addressee").First(&friendship, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get friendship: %w", err)
	}
	return &friendship, nil
}

func (r *FriendshipRepository) GetByPair(a, b uuid.UUID) (*models.Friendship, error) {
	var friendship models.Friendship
	err := r.db.First(&friendship, "pair_key = ?", models.PairKeyFor(a, b)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get friendship by pair: %w", err)
	}
	return &friendship, nil
}

func (r *FriendshipRepository) ListFriends(userID uuid.UUID) ([]models.FriendshipWithUser, error) {
	return r.listResolved(userID, "status = ? AND (requester_id = ? OR addressee_id = ?)",
		models.FriendshipAccepted, userID, userID)
}

func (r *FriendshipRepository) ListReceived(userID uuid.UUID) ([]models.FriendshipWithUser, error) {
	return r.listResolved(userID, "status = ? AND addressee_id = ?",
		models.FriendshipPending, userID)
}

func (r *FriendshipRepository) ListSent(userID uuid.UUID) ([]models.FriendshipWithUser, error) {
	return r.listResolved(userID, "status = ? AND requester_id = ?",
		models.FriendshipPending, userID)
}

func (r *FriendshipRepository) listResolved(userID uuid.UUID, query string, args ...interface{}) ([]models.FriendshipWithUser, error) {
	var edges []models.Friendship
	err := r.db.Preload("Requester").Preload("Addressee").
		Where(query, args...).
		Order("created_at DESC").
		Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("list friendships: %w", err)
	}

	out := make([]models.FriendshipWithUser, 0, len(edges))
	for _, edge := range edges {
		other := edge.Requester
		if edge.RequesterID == userID {
			other = edge.Addressee
		}
		out = append(out, models.FriendshipWithUser{
			Friendship: edge,
			User:       models.SummaryOf(&other),
		})
	}
	return out, nil
}

func (r *FriendshipRepository) ListEdges(userID uuid.UUID) ([]models.Friendship, error) {
	var edges []models.Friendship
	err := r.db.Where("requester_id = ? OR addressee_id = ?", userID, userID).Find(&edges).Error
	if err != nil {
		return nil, fmt.Errorf("list edges: %w", err)
	}
	return edges, nil
}

func (r *FriendshipRepository) UpdateStatus(id uuid.UUID, status string) error {
	result := r.db.Model(&models.Friendship{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("update friendship status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *FriendshipRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Friendship{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete friendship: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

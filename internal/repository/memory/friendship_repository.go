package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
)

type FriendshipRepository struct {
	mu    sync.RWMutex
	edges map[uuid.UUID]models.Friendship
	users *UserRepository
}

// NewFriendshipRepository resolves counterpart users through the given user
// repository, mirroring the join the postgres adapter performs.
func NewFriendshipRepository(users *UserRepository) *FriendshipRepository {
	return &FriendshipRepository{
		edges: make(map[uuid.UUID]models.Friendship),
		users: users,
	}
}

func (r *FriendshipRepository) Create(friendship *models.Friendship) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	pairKey := models.PairKeyFor(friendship.RequesterID, friendship.AddresseeID)
	for _, edge := range r.edges {
		if edge.PairKey == pairKey {
			return repository.ErrDuplicate
		}
	}
	if friendship.ID == uuid.Nil {
		friendship.ID = uuid.New()
	}
	friendship.PairKey = pairKey
	now := time.Now()
	friendship.CreatedAt = now
	friendship.UpdatedAt = now
	r.edges[friendship.ID] = *friendship
	return nil
}

func (r *FriendshipRepository) GetByID(id uuid.UUID) (*models.Friendship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	edge, ok := r.edges[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &edge, nil
}

func (r *FriendshipRepository) GetByPair(a, b uuid.UUID) (*models.Friendship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pairKey := models.PairKeyFor(a, b)
	for _, edge := range r.edges {
		if edge.PairKey == pairKey {
			e := edge
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *FriendshipRepository) ListFriends(userID uuid.UUID) ([]models.FriendshipWithUser, error) {
	return r.listResolved(userID, func(e models.Friendship) bool {
		return e.Status == models.FriendshipAccepted &&
			(e.RequesterID == userID || e.AddresseeID == userID)
	})
}

func (r *FriendshipRepository) ListReceived(userID uuid.UUID) ([]models.FriendshipWithUser, error) {
	return r.listResolved(userID, func(e models.Friendship) bool {
		return e.Status == models.FriendshipPending && e.AddresseeID == userID
	})
}

func (r *FriendshipRepository) ListSent(userID uuid.UUID) ([]models.FriendshipWithUser, error) {
	return r.listResolved(userID, func(e models.Friendship) bool {
		return e.Status == models.FriendshipPending && e.RequesterID == userID
	})
}

func (r *FriendshipRepository) listResolved(userID uuid.UUID, match func(models.Friendship) bool) ([]models.FriendshipWithUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.FriendshipWithUser, 0)
	for _, edge := range r.edges {
		if !match(edge) {
			continue
		}
		summary := models.UserSummary{ID: edge.OtherUserID(userID)}
		if r.users != nil {
			if other, err := r.users.GetByID(summary.ID); err == nil {
				summary = models.SummaryOf(other)
			}
		}
		out = append(out, models.FriendshipWithUser{Friendship: edge, User: summary})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *FriendshipRepository) ListEdges(userID uuid.UUID) ([]models.Friendship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Friendship
	for _, edge := range r.edges {
		if edge.RequesterID == userID || edge.AddresseeID == userID {
			out = append(out, edge)
		}
	}
	return out, nil
}

func (r *FriendshipRepository) UpdateStatus(id uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	edge, ok := r.edges[id]
	if !ok {
		return repository.ErrNotFound
	}
	edge.Status = status
	edge.UpdatedAt = time.Now()
	r.edges[id] = edge
	return nil
}

func (r *FriendshipRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.edges[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.edges, id)
	return nil
}

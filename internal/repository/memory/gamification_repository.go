package memory

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
)

type GamificationRepository struct {
	mu    sync.RWMutex
	stats map[uuid.UUID]models.ProgressStat
}

func NewGamificationRepository() *GamificationRepository {
	return &GamificationRepository{stats: make(map[uuid.UUID]models.ProgressStat)}
}

func (r *GamificationRepository) GetStats(userID uuid.UUID) (*models.ProgressStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats, ok := r.stats[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &stats, nil
}

func (r *GamificationRepository) SaveStats(stats *models.ProgressStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats.ID == uuid.Nil {
		stats.ID = uuid.New()
	}
	r.stats[stats.UserID] = *stats
	return nil
}

func (r *GamificationRepository) TopByPoints(limit int) ([]models.ProgressStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.ProgressStat, 0, len(r.stats))
	for _, stats := range r.stats {
		out = append(out, stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

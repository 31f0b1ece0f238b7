package postgres

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
	"gorm.io/gorm"
)

type GamificationRepository struct {
	db *gorm.DB
}

func NewGamificationRepository(db *gorm.DB) *GamificationRepository {
	return &GamificationRepository{db: db}
}

func (r *GamificationRepository) GetStats(userID uuid.UUID) (*models.ProgressStat, error) {
	var stats models.ProgressStat
	if err := r.db.First(&stats, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get progress stats: %w", err)
	}
	return &stats, nil
}

func (r *GamificationRepository) SaveStats(stats *models.ProgressStat) error {
	var existing models.ProgressStat
	err := r.db.First(&existing, "user_id = ?", stats.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if stats.ID == uuid.Nil {
			stats.ID = uuid.New()
		}
		return r.db.Create(stats).Error
	}
	if err != nil {
		return fmt.Errorf("save progress stats: %w", err)
	}
	stats.ID = existing.ID
	return r.db.Model(&existing).Updates(map[string]interface{}{
		"points":         stats.Points,
		"current_streak": stats.CurrentStreak,
		"longest_streak": stats.LongestStreak,
		"total_attempts": stats.TotalAttempts,
		"last_activity":  stats.LastActivity,
		"badges":         stats.Badges,
	}).Error
}

func (r *GamificationRepository) TopByPoints(limit int) ([]models.ProgressStat, error) {
	var stats []models.ProgressStat
	err := r.db.Preload("User").Order("points DESC").Limit(limit).Find(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("top by points: %w", err)
	}
	return stats, nil
}

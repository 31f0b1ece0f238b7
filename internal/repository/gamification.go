package repository

import (
	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
)

type GamificationRepository interface {
	// GetStats returns ErrNotFound for users with no record yet; callers
	// treat that as zero-value stats.
	GetStats(userID uuid.UUID) (*models.ProgressStat, error)
	SaveStats(stats *models.ProgressStat) error
	TopByPoints(limit int) ([]models.ProgressStat, error)
}

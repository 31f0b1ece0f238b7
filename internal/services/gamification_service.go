package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
)

type GamificationService struct {
	stats repository.GamificationRepository
	now   func() time.Time
}

func NewGamificationService(stats repository.GamificationRepository) *GamificationService {
	return &GamificationService{stats: stats, now: time.Now}
}

// GetStats returns the user's progress record, or zero-value stats for a
// user who has never recorded activity.
func (s *GamificationService) GetStats(userID uuid.UUID) (*models.ProgressStat, error) {
	stats, err := s.stats.GetStats(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &models.ProgressStat{UserID: userID, Badges: []byte("[]")}, nil
		}
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	return stats, nil
}

// RecordActivity adds points for a completed attempt and advances the day
// streak. A second activity on the same calendar day keeps the streak as
// is, activity on the next day extends it, and any gap resets it to 1.
func (s *GamificationService) RecordActivity(userID uuid.UUID, points int) (*models.ProgressStat, error) {
	stats, err := s.stats.GetStats(userID)
	if errors.Is(err, repository.ErrNotFound) {
		stats = &models.ProgressStat{
			ID:     uuid.New(),
			UserID: userID,
			Badges: []byte("[]"),
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	now := s.now()
	today := dayOf(now)
	lastDay := dayOf(stats.LastActivity)

	switch {
	case stats.LastActivity.IsZero() || today.Sub(lastDay) > 24*time.Hour:
		stats.CurrentStreak = 1
	case today.Equal(lastDay.Add(24 * time.Hour)):
		stats.CurrentStreak++
	}
	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}

	stats.Points += points
	stats.TotalAttempts++
	stats.LastActivity = now

	if err := s.stats.SaveStats(stats); err != nil {
		return nil, fmt.Errorf("failed to save stats: %w", err)
	}
	return stats, nil
}

// Leaderboard returns the top users by points, capped at 100 entries.
func (s *GamificationService) Leaderboard(limit int) ([]models.ProgressStat, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.stats.TopByPoints(limit)
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

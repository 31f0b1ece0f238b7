package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreaderapp/sreader-server/internal/repository/memory"
)

func newGamificationFixture(t *testing.T) *GamificationService {
	t.Helper()
	return NewGamificationService(memory.NewGamificationRepository())
}

func TestGetStatsDefaultsToZero(t *testing.T) {
	svc := newGamificationFixture(t)
	userID := uuid.New()

	stats, err := svc.GetStats(userID)
	require.NoError(t, err)
	assert.Equal(t, userID, stats.UserID)
	assert.Zero(t, stats.Points)
	assert.Zero(t, stats.CurrentStreak)
}

func TestRecordActivityStreak(t *testing.T) {
	svc := newGamificationFixture(t)
	userID := uuid.New()

	day := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }

	stats, err := svc.RecordActivity(userID, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, stats.Points)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 1, stats.TotalAttempts)

	// Second activity the same day: points accrue, streak holds.
	svc.now = func() time.Time { return day.Add(5 * time.Hour) }
	stats, err = svc.RecordActivity(userID, 30)
	require.NoError(t, err)
	assert.Equal(t, 80, stats.Points)
	assert.Equal(t, 1, stats.CurrentStreak)

	// Next calendar day extends the streak.
	svc.now = func() time.Time { return day.AddDate(0, 0, 1) }
	stats, err = svc.RecordActivity(userID, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CurrentStreak)
	assert.Equal(t, 2, stats.LongestStreak)

	// A missed day resets the streak but keeps the watermark.
	svc.now = func() time.Time { return day.AddDate(0, 0, 3) }
	stats, err = svc.RecordActivity(userID, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 2, stats.LongestStreak)
}

func TestLeaderboardOrdersByPoints(t *testing.T) {
	svc := newGamificationFixture(t)

	low := uuid.New()
	high := uuid.New()
	_, err := svc.RecordActivity(low, 10)
	require.NoError(t, err)
	_, err = svc.RecordActivity(high, 90)
	require.NoError(t, err)

	entries, err := svc.Leaderboard(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, high, entries[0].UserID)
	assert.Equal(t, low, entries[1].UserID)
}

package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository/memory"
)

func newMultiplayerFixture(t *testing.T) (*MultiplayerService, uuid.UUID) {
	t.Helper()
	assignments := memory.NewAssignmentRepository()
	assignment := models.Assignment{ID: uuid.New(), TeacherID: uuid.New(), Title: "Speed Round", MaxScore: 100}
	require.NoError(t, assignments.Create(&assignment))

	gamification := NewGamificationService(memory.NewGamificationRepository())
	svc := NewMultiplayerService(memory.NewMultiplayerRepository(), assignments, gamification, nil)
	return svc, assignment.ID
}

func TestCreateSessionSeatsHost(t *testing.T) {
	svc, assignmentID := newMultiplayerFixture(t)
	host := uuid.New()

	session, err := svc.CreateSession(host, assignmentID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.SessionWaiting, session.Status)
	assert.Len(t, session.Code, 6)

	_, players, err := svc.GetSession(session.ID)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, host, players[0].UserID)
}

func TestJoinSessionByCode(t *testing.T) {
	svc, assignmentID := newMultiplayerFixture(t)
	host := uuid.New()
	player := uuid.New()

	session, err := svc.CreateSession(host, assignmentID, nil)
	require.NoError(t, err)

	_, err = svc.JoinSession("NOSUCH", player)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	joined, err := svc.JoinSession(session.Code, player)
	require.NoError(t, err)
	assert.Equal(t, session.ID, joined.ID)

	// Joining twice is idempotent.
	_, err = svc.JoinSession(session.Code, player)
	require.NoError(t, err)

	_, players, err := svc.GetSession(session.ID)
	require.NoError(t, err)
	assert.Len(t, players, 2)
}

func TestSessionLifecycle(t *testing.T) {
	svc, assignmentID := newMultiplayerFixture(t)
	host := uuid.New()
	player := uuid.New()

	session, err := svc.CreateSession(host, assignmentID, map[string]interface{}{"rounds": 3})
	require.NoError(t, err)
	_, err = svc.JoinSession(session.Code, player)
	require.NoError(t, err)

	// Scores are rejected before the round starts.
	assert.ErrorIs(t, svc.SubmitScore(session.ID, player, 40), ErrSessionNotActive)

	_, err = svc.StartSession(session.ID, player)
	assert.ErrorIs(t, err, ErrNotSessionHost)

	started, err := svc.StartSession(session.ID, host)
	require.NoError(t, err)
	assert.Equal(t, models.SessionActive, started.Status)
	assert.NotNil(t, started.StartedAt)

	// Latecomers cannot join a running round.
	_, err = svc.JoinSession(session.Code, uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotOpen)

	require.NoError(t, svc.SubmitScore(session.ID, player, 40))
	require.NoError(t, svc.SubmitScore(session.ID, host, 90))
	assert.ErrorIs(t, svc.SubmitScore(session.ID, uuid.New(), 10), ErrNotSessionPlayer)

	finished, players, err := svc.FinishSession(session.ID, host)
	require.NoError(t, err)
	assert.Equal(t, models.SessionFinished, finished.Status)
	require.Len(t, players, 2)
	assert.Equal(t, host, players[0].UserID, "standings are ordered by score")

	// Player scores are credited as points.
	stats, err := svc.gamification.GetStats(player)
	require.NoError(t, err)
	assert.Equal(t, 40, stats.Points)

	_, _, err = svc.FinishSession(session.ID, host)
	assert.ErrorIs(t, err, ErrSessionNotActive)
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreaderapp/sreader-server/internal/config"
	"github.com/sreaderapp/sreader-server/internal/repository/memory"
)

func TestGetDashboard(t *testing.T) {
	users := memory.NewUserRepository()
	friendships := memory.NewFriendshipRepository(users)
	tokens := memory.NewTokenRepository()
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
		ResetCodeTTL:     15 * time.Minute,
	}

	authService := NewAuthService(users, tokens, &captureMailer{}, cfg)
	userService := NewUserService(users)
	friendshipService := NewFriendshipService(friendships, users)
	gamificationService := NewGamificationService(memory.NewGamificationRepository())
	assignmentService := NewAssignmentService(
		memory.NewAssignmentRepository(),
		memory.NewScheduleRepository(),
		memory.NewAttemptRepository(),
		gamificationService,
	)
	svc := NewDashboardService(userService, authService, friendshipService, assignmentService, gamificationService)

	alice := addStudent(t, users, "alice")
	bob := addStudent(t, users, "bob")
	carol := addStudent(t, users, "carol")

	// One accepted friendship, one incoming request.
	edge, err := friendshipService.SendFriendRequest(alice, bob)
	require.NoError(t, err)
	_, err = friendshipService.AcceptRequest(edge.ID, bob)
	require.NoError(t, err)
	_, err = friendshipService.SendFriendRequest(carol, alice)
	require.NoError(t, err)

	// One open schedule window and one completed attempt.
	teacher := addStudent(t, users, "teacher")
	assignment, err := assignmentService.CreateAssignment(teacher, "Reading", "", "reading", 100, nil)
	require.NoError(t, err)
	_, err = assignmentService.CreateSchedule(alice, assignment.ID, time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = assignmentService.SubmitAttempt(alice, assignment.ID, 75, 45000)
	require.NoError(t, err)

	dashboard, err := svc.GetDashboard(alice)
	require.NoError(t, err)

	assert.Equal(t, alice, dashboard.User.ID)
	assert.NotNil(t, dashboard.Profile)
	assert.Equal(t, 1, dashboard.FriendCount)
	assert.Equal(t, 1, dashboard.PendingRequests)
	assert.Zero(t, dashboard.UpcomingCount, "the attempt closed the open window")
	require.Len(t, dashboard.RecentAttempts, 1)
	assert.EqualValues(t, 1, dashboard.TotalAttempts)
	assert.Equal(t, 75, dashboard.Stats.Points)
}

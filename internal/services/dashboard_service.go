package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
)

// Dashboard is the aggregated home-screen payload: who the user is, how
// they are doing, and what needs their attention.
type Dashboard struct {
	User            *models.User         `json:"user"`
	Profile         *models.Profile      `json:"profile"`
	Stats           *models.ProgressStat `json:"stats"`
	FriendCount     int                  `json:"friend_count"`
	PendingRequests int                  `json:"pending_requests"`
	UpcomingCount   int                  `json:"upcoming_count"`
	TotalAttempts   int64                `json:"total_attempts"`
	RecentAttempts  []models.Attempt     `json:"recent_attempts"`
}

type DashboardService struct {
	users        *UserService
	auth         *AuthService
	friendships  *FriendshipService
	assignments  *AssignmentService
	gamification *GamificationService
}

func NewDashboardService(users *UserService, auth *AuthService, friendships *FriendshipService, assignments *AssignmentService, gamification *GamificationService) *DashboardService {
	return &DashboardService{
		users:        users,
		auth:         auth,
		friendships:  friendships,
		assignments:  assignments,
		gamification: gamification,
	}
}

// GetDashboard assembles the home screen in one call so the client does
// not fan out five requests on launch.
func (s *DashboardService) GetDashboard(userID uuid.UUID) (*Dashboard, error) {
	user, err := s.users.GetUser(userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.auth.GetProfile(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	stats, err := s.gamification.GetStats(userID)
	if err != nil {
		return nil, err
	}

	friends, err := s.friendships.ListFriends(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load friends: %w", err)
	}
	pending, err := s.friendships.ListPendingRequests(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending requests: %w", err)
	}

	upcoming, err := s.assignments.ListUpcoming(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	attempts, err := s.assignments.ListAttempts(userID, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}
	totalAttempts, err := s.assignments.CountAttempts(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count attempts: %w", err)
	}

	return &Dashboard{
		User:            user,
		Profile:         profile,
		Stats:           stats,
		FriendCount:     len(friends),
		PendingRequests: len(pending),
		UpcomingCount:   len(upcoming),
		TotalAttempts:   totalAttempts,
		RecentAttempts:  attempts,
	}, nil
}

package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository"
)

var (
	ErrSelfFriend         = errors.New("cannot send a friend request to yourself")
	ErrFriendshipExists   = errors.New("a friendship or open request already exists for this pair")
	ErrFriendshipNotFound = errors.New("friendship not found")
	ErrNotParticipant     = errors.New("you are not part of this friendship")
	ErrNotAddressee       = errors.New("only the addressee can respond to this request")
	ErrNotRequester       = errors.New("only the requester can cancel this request")
	ErrAlreadyResolved    = errors.New("friend request already resolved")
	ErrWrongStatus        = errors.New("friendship is not in the required state")
)

// FriendshipService owns the friend graph state machine:
//
//	(none) --send--> PENDING --accept--> ACCEPTED --unfriend--> (deleted)
//	                    |--decline/cancel--> (deleted)
//	 any state --block--> BLOCKED (terminal)
type FriendshipService struct {
	friendships repository.FriendshipRepository
	users       repository.UserRepository
}

func NewFriendshipService(friendships repository.FriendshipRepository, users repository.UserRepository) *FriendshipService {
	return &FriendshipService{friendships: friendships, users: users}
}

// ListStudents returns users carrying the student role, excluding the user
// themselves and anyone they already have an edge with (friend, pending in
// either direction, or blocked).
func (s *FriendshipService) ListStudents(excludeUserID uuid.UUID) ([]models.User, error) {
	students, err := s.users.ListStudents()
	if err != nil {
		return nil, fmt.Errorf("failed to load students: %w", err)
	}

	edges, err := s.friendships.ListEdges(excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load friendships: %w", err)
	}

	linked := make(map[uuid.UUID]bool, len(edges))
	for _, edge := range edges {
		linked[edge.OtherUserID(excludeUserID)] = true
	}

	out := make([]models.User, 0, len(students))
	for _, student := range students {
		if student.ID == excludeUserID || linked[student.ID] {
			continue
		}
		out = append(out, student)
	}
	return out, nil
}

// SendFriendRequest creates a PENDING edge from requester to addressee.
// Exactly one edge may exist per unordered pair, so a reciprocal or repeat
// request fails with ErrFriendshipExists.
func (s *FriendshipService) SendFriendRequest(fromUserID, toUserID uuid.UUID) (*models.FriendshipWithUser, error) {
	if fromUserID == toUserID {
		return nil, ErrSelfFriend
	}

	target, err := s.users.GetByID(toUserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if _, err := s.friendships.GetByPair(fromUserID, toUserID); err == nil {
		return nil, ErrFriendshipExists
	}

	friendship := models.Friendship{
		ID:          uuid.New(),
		RequesterID: fromUserID,
		AddresseeID: toUserID,
		Status:      models.FriendshipPending,
	}
	if err := s.friendships.Create(&friendship); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrFriendshipExists
		}
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	return &models.FriendshipWithUser{
		Friendship: friendship,
		User:       models.SummaryOf(target),
	}, nil
}

func (s *FriendshipService) ListFriends(userID uuid.UUID) ([]models.FriendshipWithUser, error) {
	return s.friendships.ListFriends(userID)
}

func (s *FriendshipService) ListPendingRequests(userID uuid.UUID) ([]models.FriendshipWithUser, error) {
	return s.friendships.ListReceived(userID)
}

func (s *FriendshipService) ListSentRequests(userID uuid.UUID) ([]models.FriendshipWithUser, error) {
	return s.friendships.ListSent(userID)
}

// AcceptRequest transitions a PENDING edge to ACCEPTED. Only the addressee
// may accept. The accepted edge is returned with the counterpart resolved so
// callers can move it between lists without another round trip.
func (s *FriendshipService) AcceptRequest(friendshipID, userID uuid.UUID) (*models.FriendshipWithUser, error) {
	friendship, err := s.friendships.GetByID(friendshipID)
	if err != nil {
		return nil, ErrFriendshipNotFound
	}
	if friendship.AddresseeID != userID {
		return nil, ErrNotAddressee
	}
	if friendship.Status != models.FriendshipPending {
		return nil, ErrAlreadyResolved
	}

	if err := s.friendships.UpdateStatus(friendshipID, models.FriendshipAccepted); err != nil {
		return nil, fmt.Errorf("failed to accept request: %w", err)
	}

	friendship.Status = models.FriendshipAccepted
	summary := models.UserSummary{ID: friendship.RequesterID}
	if requester, err := s.users.GetByID(friendship.RequesterID); err == nil {
		summary = models.SummaryOf(requester)
	}
	return &models.FriendshipWithUser{
		Friendship: *friendship,
		User:       summary,
	}, nil
}

// DeclineRequest deletes a PENDING edge. Only the addressee may decline.
func (s *FriendshipService) DeclineRequest(friendshipID, userID uuid.UUID) error {
	friendship, err := s.friendships.GetByID(friendshipID)
	if err != nil {
		return ErrFriendshipNotFound
	}
	if friendship.AddresseeID != userID {
		return ErrNotAddressee
	}
	if friendship.Status != models.FriendshipPending {
		return ErrAlreadyResolved
	}
	return s.friendships.Delete(friendshipID)
}

// CancelRequest deletes a PENDING edge from the requester side.
func (s *FriendshipService) CancelRequest(friendshipID, userID uuid.UUID) error {
	friendship, err := s.friendships.GetByID(friendshipID)
	if err != nil {
		return ErrFriendshipNotFound
	}
	if friendship.RequesterID != userID {
		return ErrNotRequester
	}
	if friendship.Status != models.FriendshipPending {
		return ErrAlreadyResolved
	}
	return s.friendships.Delete(friendshipID)
}

// RemoveFriend deletes an ACCEPTED edge. Either side may unfriend.
func (s *FriendshipService) RemoveFriend(friendshipID, userID uuid.UUID) error {
	friendship, err := s.friendships.GetByID(friendshipID)
	if err != nil {
		return ErrFriendshipNotFound
	}
	if friendship.RequesterID != userID && friendship.AddresseeID != userID {
		return ErrNotParticipant
	}
	if friendship.Status != models.FriendshipAccepted {
		return ErrWrongStatus
	}
	return s.friendships.Delete(friendshipID)
}

// BlockUser transitions any edge to BLOCKED. Block is terminal and
// supersedes whatever relationship existed before.
func (s *FriendshipService) BlockUser(friendshipID, userID uuid.UUID) error {
	friendship, err := s.friendships.GetByID(friendshipID)
	if err != nil {
		return ErrFriendshipNotFound
	}
	if friendship.RequesterID != userID && friendship.AddresseeID != userID {
		return ErrNotParticipant
	}
	if friendship.Status == models.FriendshipBlocked {
		return nil
	}
	return s.friendships.UpdateStatus(friendshipID, models.FriendshipBlocked)
}

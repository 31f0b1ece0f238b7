package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository/memory"
)

func newFriendshipFixture(t *testing.T) (*FriendshipService, *memory.UserRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	friendships := memory.NewFriendshipRepository(users)
	return NewFriendshipService(friendships, users), users
}

func addStudent(t *testing.T, users *memory.UserRepository, name string) uuid.UUID {
	t.Helper()
	user := models.User{
		ID:          uuid.New(),
		Email:       name + "@example.com",
		DisplayName: name,
		Roles:       models.RoleList{models.RoleStudent},
	}
	require.NoError(t, users.Create(&user))
	return user.ID
}

func TestSendFriendRequest(t *testing.T) {
	svc, users := newFriendshipFixture(t)
	alice := addStudent(t, users, "alice")
	bob := addStudent(t, users, "bob")

	edge, err := svc.SendFriendRequest(alice, bob)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipPending, edge.Status)
	assert.Equal(t, bob, edge.User.ID, "returned edge carries the counterpart")

	sent, err := svc.ListSentRequests(alice)
	require.NoError(t, err)
	require.Len(t, sent, 1)

	received, err := svc.ListPendingRequests(bob)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, alice, received[0].User.ID)
}

func TestSendFriendRequestRejectsSelf(t *testing.T) {
	svc, users := newFriendshipFixture(t)
	alice := addStudent(t, users, "alice")

	_, err := svc.SendFriendRequest(alice, alice)
	assert.ErrorIs(t, err, ErrSelfFriend)
}

func TestSendFriendRequestUnknownTarget(t *testing.T) {
	svc, users := newFriendshipFixture(t)
	alice := addStudent(t, users, "alice")

	_, err := svc.SendFriendRequest(alice, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestOneEdgePerPair(t *testing.T) {
	svc, users := newFriendshipFixture(t)
	alice := addStudent(t, users, "alice")
	bob := addStudent(t, users, "bob")

	_, err := svc.SendFriendRequest(alice, bob)
	require.NoError(t, err)

	_, err = svc.SendFriendRequest(alice, bob)
	assert.ErrorIs(t, err, ErrFriendshipExists, "repeat request must be rejected")

	_, err = svc.SendFriendRequest(bob, alice)
	assert.ErrorIs(t, err, ErrFriendshipExists, "reciprocal request must be rejected")
}

func TestAcceptRequest(t *testing.T) {
	svc, users := newFriendshipFixture(t)
	alice := addStudent(t, users, "alice")
	bob := addStudent(t, users, "bob")

	edge, err := svc.SendFriendRequest(alice, bob)
	require.NoError(t, err)

	// Only the addressee may accept.
	_, err = svc.AcceptRequest(edge.ID, alice)
	assert.ErrorIs(t, err, ErrNotAddressee)

	accepted, err := svc.AcceptRequest(edge.ID, bob)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipAccepted, accepted.Status)
	assert.Equal(t, alice, accepted.User.ID, "accepted edge carries the requester")

	// A resolved request cannot be accepted again.
	_, err = svc.AcceptRequest(edge.ID, bob)
	assert.ErrorIs(t, err, ErrAlreadyResolved)

	for _, userID := range []uuid.UUID{alice, bob} {
		friends, err := svc.ListFriends(userID)
		require.NoError(t, err)
		assert.Len(t, friends, 1, "both sides see the friendship")

		received, err := svc.ListPendingRequests(userID)
		require.NoError(t, err)
		assert.Empty(t, received)
	}
}

func TestDeclineRequest(t *testing.T) {
	svc, users := newFriendshipFixture(t)
	alice := addStudent(t, users, "alice")
	bob := addStudent(t, users, "bob")

	edge, err := svc.SendFriendRequest(alice, bob)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeclineRequest(edge.ID, alice), ErrNotAddressee)
	require.NoError(t, svc.DeclineRequest(edge.ID, bob))

	received, err := svc.ListPendingRequests(bob)
	require.NoError(t, err)
	assert.Empty(t, received)

	sent, err := svc.ListSentRequests(alice)
	require.NoError(t, err)
	assert.Empty(t, sent)

	// The pair is free for a new request after decline.
	_, err = svc.SendFriendRequest(bob, alice)
	assert.NoError(t, err)
}

func TestCancelRequest(t *testing.T) {
	svc, users := newFriendshipFixture(t)
	alice := addStudent(t, users, "alice")
	bob := addStudent(t, users, "bob")

	edge, err := svc.SendFriendRequest(alice, bob)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.CancelRequest(edge.ID, bob), ErrNotRequester)
	require.NoError(t, svc.CancelRequest(edge.ID, alice))

	sent, err := svc.ListSentRequests(alice)
	require.NoError(t, err)
	assert.Empty(t, sent)
}

func TestRemoveFriend(t *testing.T) {
	svc, users := newFriendshipFixture(t)
	alice := addStudent(t, users, "alice")
	bob := addStudent(t, users, "bob")
	carol := addStudent(t, users, "carol")

	edge, err := svc.SendFriendRequest(alice, bob)
	require.NoError(t, err)

	// Unfriending requires an accepted edge.
	assert.ErrorIs(t, svc.RemoveFriend(edge.ID, alice), ErrWrongStatus)

	_, err = svc.AcceptRequest(edge.ID, bob)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RemoveFriend(edge.ID, carol), ErrNotParticipant)
	require.NoError(t, svc.RemoveFriend(edge.ID, bob))

	friends, err := svc.ListFriends(alice)
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestBlockUser(t *testing.T) {
	svc, users := newFriendshipFixture(t)
	alice := addStudent(t, users, "alice")
	bob := addStudent(t, users, "bob")

	edge, err := svc.SendFriendRequest(alice, bob)
	require.NoError(t, err)

	require.NoError(t, svc.BlockUser(edge.ID, bob))

	// Blocked edges leave every visible list.
	friends, err := svc.ListFriends(alice)
	require.NoError(t, err)
	assert.Empty(t, friends)
	received, err := svc.ListPendingRequests(bob)
	require.NoError(t, err)
	assert.Empty(t, received)

	// Block is terminal.
	_, err = svc.AcceptRequest(edge.ID, bob)
	assert.ErrorIs(t, err, ErrAlreadyResolved)
	require.NoError(t, svc.BlockUser(edge.ID, bob), "blocking twice is a no-op")

	// The pair stays occupied, so no fresh request can bypass the block.
	_, err = svc.SendFriendRequest(alice, bob)
	assert.ErrorIs(t, err, ErrFriendshipExists)
}

func TestListStudentsExcludesLinkedUsers(t *testing.T) {
	svc, users := newFriendshipFixture(t)
	alice := addStudent(t, users, "alice")
	friend := addStudent(t, users, "friend")
	pendingOut := addStudent(t, users, "pending-out")
	pendingIn := addStudent(t, users, "pending-in")
	blocked := addStudent(t, users, "blocked")
	stranger := addStudent(t, users, "stranger")

	edge, err := svc.SendFriendRequest(alice, friend)
	require.NoError(t, err)
	_, err = svc.AcceptRequest(edge.ID, friend)
	require.NoError(t, err)

	_, err = svc.SendFriendRequest(alice, pendingOut)
	require.NoError(t, err)
	_, err = svc.SendFriendRequest(pendingIn, alice)
	require.NoError(t, err)

	blockedEdge, err := svc.SendFriendRequest(alice, blocked)
	require.NoError(t, err)
	require.NoError(t, svc.BlockUser(blockedEdge.ID, alice))

	students, err := svc.ListStudents(alice)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, stranger, students[0].ID)
}

package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreaderapp/sreader-server/internal/models"
	"github.com/sreaderapp/sreader-server/internal/repository/memory"
	"github.com/sreaderapp/sreader-server/internal/services"
)

// claimsFor injects the JWT claims the auth middleware would have parsed.
func claimsFor(userID uuid.UUID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": userID.String(),
		}))
		return c.Next()
	}
}

func newFriendshipTestApp(t *testing.T, userID uuid.UUID) (*fiber.App, *services.FriendshipService, *memory.UserRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	svc := services.NewFriendshipService(memory.NewFriendshipRepository(users), users)
	h := NewFriendshipHandler(svc)

	app := fiber.New()
	app.Use(claimsFor(userID))
	app.Put("/requests/:id/accept", h.AcceptRequest)
	app.Delete("/requests/:id/decline", h.DeclineRequest)
	app.Delete("/requests/:id", h.CancelRequest)
	app.Delete("/friends/:id", h.RemoveFriend)
	app.Put("/friends/:id/block", h.BlockUser)
	return app, svc, users
}

func TestFriendshipRoutesRejectMalformedID(t *testing.T) {
	app, _, _ := newFriendshipTestApp(t, uuid.New())

	requests := []*struct {
		method string
		path   string
	}{
		{fiber.MethodPut, "/requests/not-a-uuid/accept"},
		{fiber.MethodDelete, "/requests/not-a-uuid/decline"},
		{fiber.MethodDelete, "/requests/not-a-uuid"},
		{fiber.MethodDelete, "/friends/not-a-uuid"},
		{fiber.MethodPut, "/friends/not-a-uuid/block"},
	}
	for _, r := range requests {
		resp, err := app.Test(httptest.NewRequest(r.method, r.path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode,
			"%s %s must reject a malformed id, not fall through to the service", r.method, r.path)
	}
}

func TestFriendshipRoutesUnknownIDIsNotFound(t *testing.T) {
	app, _, _ := newFriendshipTestApp(t, uuid.New())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPut, "/requests/"+uuid.NewString()+"/accept", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAcceptRequestOverHTTP(t *testing.T) {
	bob := uuid.New()
	app, svc, users := newFriendshipTestApp(t, bob)

	alice := models.User{ID: uuid.New(), Email: "alice@example.com", DisplayName: "alice", Roles: models.RoleList{models.RoleStudent}}
	require.NoError(t, users.Create(&alice))
	bobUser := models.User{ID: bob, Email: "bob@example.com", DisplayName: "bob", Roles: models.RoleList{models.RoleStudent}}
	require.NoError(t, users.Create(&bobUser))

	edge, err := svc.SendFriendRequest(alice.ID, bob)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPut, "/requests/"+edge.ID.String()+"/accept", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	friends, err := svc.ListFriends(bob)
	require.NoError(t, err)
	assert.Len(t, friends, 1)
}

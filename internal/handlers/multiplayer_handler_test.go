package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreaderapp/sreader-server/internal/repository/memory"
	"github.com/sreaderapp/sreader-server/internal/services"
	"github.com/sreaderapp/sreader-server/internal/ws"
)

func newSessionTestApp(t *testing.T, userID uuid.UUID) *fiber.App {
	t.Helper()
	svc := services.NewMultiplayerService(
		memory.NewMultiplayerRepository(),
		memory.NewAssignmentRepository(),
		services.NewGamificationService(memory.NewGamificationRepository()),
		ws.NewHub(),
	)
	h := NewMultiplayerHandler(svc, ws.NewHub())

	app := fiber.New()
	app.Use(claimsFor(userID))
	app.Put("/sessions/:id/start", h.StartSession)
	app.Put("/sessions/:id/score", h.SubmitScore)
	app.Put("/sessions/:id/finish", h.FinishSession)
	return app
}

func TestSessionRoutesRejectMalformedID(t *testing.T) {
	app := newSessionTestApp(t, uuid.New())

	for _, path := range []string{
		"/sessions/not-a-uuid/start",
		"/sessions/not-a-uuid/score",
		"/sessions/not-a-uuid/finish",
	} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPut, path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestSessionRoutesUnknownIDIsNotFound(t *testing.T) {
	app := newSessionTestApp(t, uuid.New())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPut, "/sessions/"+uuid.NewString()+"/start", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

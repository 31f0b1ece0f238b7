package handlers

import (
	"errors"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/authctx"
	"github.com/sreaderapp/sreader-server/internal/dto"
	"github.com/sreaderapp/sreader-server/internal/services"
	"github.com/sreaderapp/sreader-server/internal/ws"
)

type MultiplayerHandler struct {
	multiplayerService *services.MultiplayerService
	hub                *ws.Hub
}

func NewMultiplayerHandler(multiplayerService *services.MultiplayerService, hub *ws.Hub) *MultiplayerHandler {
	return &MultiplayerHandler{multiplayerService: multiplayerService, hub: hub}
}

func (h *MultiplayerHandler) CreateSession(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	session, err := h.multiplayerService.CreateSession(userID, req.AssignmentID, req.Settings)
	if err != nil {
		if errors.Is(err, services.ErrAssignmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

func (h *MultiplayerHandler) GetSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid session id",
		})
	}

	session, players, err := h.multiplayerService.GetSession(id)
	if err != nil {
		return sessionError(c, err)
	}

	return c.JSON(fiber.Map{
		"session":   session,
		"players":   players,
		"connected": h.hub.SessionClientCount(session.ID.String()),
	})
}

func (h *MultiplayerHandler) JoinSession(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.JoinSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	session, err := h.multiplayerService.JoinSession(req.Code, userID)
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(session)
}

func (h *MultiplayerHandler) StartSession(c *fiber.Ctx) error {
	userID, sessionID, err := sessionParams(c)
	if err != nil {
		return err
	}

	session, err := h.multiplayerService.StartSession(sessionID, userID)
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(session)
}

func (h *MultiplayerHandler) SubmitScore(c *fiber.Ctx) error {
	userID, sessionID, err := sessionParams(c)
	if err != nil {
		return err
	}

	var req dto.SubmitScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.multiplayerService.SubmitScore(sessionID, userID, req.Score); err != nil {
		return sessionError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Score recorded"})
}

func (h *MultiplayerHandler) FinishSession(c *fiber.Ctx) error {
	userID, sessionID, err := sessionParams(c)
	if err != nil {
		return err
	}

	session, players, err := h.multiplayerService.FinishSession(sessionID, userID)
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(fiber.Map{"session": session, "players": players})
}

// SessionSocket upgrades the connection and streams session events until
// the client hangs up.
func (h *MultiplayerHandler) SessionSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		sessionID, _ := conn.Locals("session_id").(string)
		userID, _ := conn.Locals("user_id").(string)
		if sessionID == "" {
			conn.Close()
			return
		}

		client := ws.NewClient(h.hub, conn, sessionID, userID)
		h.hub.Register(client)

		go client.WritePump()
		client.ReadLoop()
	})
}

// SocketUpgrade validates the session before the websocket handshake and
// stashes the identifiers where the socket handler can reach them.
func (h *MultiplayerHandler) SocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid session id",
		})
	}
	if _, _, err := h.multiplayerService.GetSession(sessionID); err != nil {
		return sessionError(c, err)
	}

	c.Locals("session_id", sessionID.String())
	c.Locals("user_id", userID.String())
	return c.Next()
}

// sessionParams extracts the caller and the :id path param, returning a
// *fiber.Error for the app error handler on failure.
func sessionParams(c *fiber.Ctx) (userID, sessionID uuid.UUID, err error) {
	userID, err = authctx.GetUserID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.ErrUnauthorized
	}
	sessionID, err = uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}
	return userID, sessionID, nil
}

func sessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrNotSessionHost),
		errors.Is(err, services.ErrNotSessionPlayer):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrSessionNotOpen),
		errors.Is(err, services.ErrSessionNotActive):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}

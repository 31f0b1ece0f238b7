package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/authctx"
	"github.com/sreaderapp/sreader-server/internal/dto"
	"github.com/sreaderapp/sreader-server/internal/services"
)

type FriendshipHandler struct {
	friendshipService *services.FriendshipService
}

func NewFriendshipHandler(friendshipService *services.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendshipService: friendshipService}
}

// ListStudents returns students the caller could still send a request to.
func (h *FriendshipHandler) ListStudents(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	students, err := h.friendshipService.ListStudents(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load students",
		})
	}

	return c.JSON(fiber.Map{"students": students})
}

func (h *FriendshipHandler) ListFriends(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	friends, err := h.friendshipService.ListFriends(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load friends",
		})
	}
	received, err := h.friendshipService.ListPendingRequests(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load requests",
		})
	}
	sent, err := h.friendshipService.ListSentRequests(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load requests",
		})
	}

	return c.JSON(dto.FriendListsResponse{
		Friends:  friends,
		Received: received,
		Sent:     sent,
	})
}

func (h *FriendshipHandler) SendRequest(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SendFriendRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	edge, err := h.friendshipService.SendFriendRequest(userID, req.ToUserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfFriend):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrFriendshipExists):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to send friend request",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(edge)
}

func (h *FriendshipHandler) AcceptRequest(c *fiber.Ctx) error {
	userID, friendshipID, err := friendshipParams(c)
	if err != nil {
		return err
	}

	edge, err := h.friendshipService.AcceptRequest(friendshipID, userID)
	if err != nil {
		return friendshipError(c, err)
	}
	return c.JSON(edge)
}

func (h *FriendshipHandler) DeclineRequest(c *fiber.Ctx) error {
	userID, friendshipID, err := friendshipParams(c)
	if err != nil {
		return err
	}

	if err := h.friendshipService.DeclineRequest(friendshipID, userID); err != nil {
		return friendshipError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request declined"})
}

func (h *FriendshipHandler) CancelRequest(c *fiber.Ctx) error {
	userID, friendshipID, err := friendshipParams(c)
	if err != nil {
		return err
	}

	if err := h.friendshipService.CancelRequest(friendshipID, userID); err != nil {
		return friendshipError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Request cancelled"})
}

func (h *FriendshipHandler) RemoveFriend(c *fiber.Ctx) error {
	userID, friendshipID, err := friendshipParams(c)
	if err != nil {
		return err
	}

	if err := h.friendshipService.RemoveFriend(friendshipID, userID); err != nil {
		return friendshipError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Friend removed"})
}

func (h *FriendshipHandler) BlockUser(c *fiber.Ctx) error {
	userID, friendshipID, err := friendshipParams(c)
	if err != nil {
		return err
	}

	if err := h.friendshipService.BlockUser(friendshipID, userID); err != nil {
		return friendshipError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User blocked"})
}

// friendshipParams extracts the caller and the :id path param. The returned
// error is a *fiber.Error carrying the status, so callers can return it
// directly and let the app error handler render it.
func friendshipParams(c *fiber.Ctx) (userID, friendshipID uuid.UUID, err error) {
	userID, err = authctx.GetUserID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.ErrUnauthorized
	}
	friendshipID, err = uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid friendship id")
	}
	return userID, friendshipID, nil
}

func friendshipError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrFriendshipNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrNotAddressee),
		errors.Is(err, services.ErrNotRequester),
		errors.Is(err, services.ErrNotParticipant):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrAlreadyResolved),
		errors.Is(err, services.ErrWrongStatus):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

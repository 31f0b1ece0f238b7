package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sreaderapp/sreader-server/internal/authctx"
	"github.com/sreaderapp/sreader-server/internal/dto"
	"github.com/sreaderapp/sreader-server/internal/services"
)

type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

func (h *AssignmentHandler) Create(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	assignment, err := h.assignmentService.CreateAssignment(userID, req.Title, req.Description, req.Subject, req.MaxScore, req.DueAt)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": vErr.Error(), "fields": vErr.Fields,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create assignment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(assignment)
}

func (h *AssignmentHandler) List(c *fiber.Ctx) error {
	assignments, total, err := h.assignmentService.ListAssignments(
		c.Query("subject"),
		c.QueryInt("limit", 20),
		c.QueryInt("offset", 0),
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load assignments",
		})
	}

	return c.JSON(fiber.Map{"assignments": assignments, "total": total})
}

func (h *AssignmentHandler) ListMine(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	assignments, err := h.assignmentService.ListOwnAssignments(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load assignments",
		})
	}
	return c.JSON(fiber.Map{"assignments": assignments})
}

func (h *AssignmentHandler) ListAssignmentAttempts(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid assignment id",
		})
	}

	attempts, err := h.assignmentService.ListAssignmentAttempts(id, userID)
	if err != nil {
		return assignmentError(c, err)
	}
	return c.JSON(fiber.Map{"attempts": attempts})
}

func (h *AssignmentHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid assignment id",
		})
	}

	assignment, err := h.assignmentService.GetAssignment(id)
	if err != nil {
		return assignmentError(c, err)
	}
	return c.JSON(assignment)
}

func (h *AssignmentHandler) Update(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid assignment id",
		})
	}

	var req dto.UpdateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	assignment, err := h.assignmentService.UpdateAssignment(id, userID, req.Title, req.Description, req.DueAt)
	if err != nil {
		return assignmentError(c, err)
	}
	return c.JSON(assignment)
}

func (h *AssignmentHandler) Delete(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid assignment id",
		})
	}

	if err := h.assignmentService.DeleteAssignment(id, userID); err != nil {
		return assignmentError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Assignment deleted"})
}

func (h *AssignmentHandler) CreateSchedule(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	schedule, err := h.assignmentService.CreateSchedule(userID, req.AssignmentID, req.StartsAt, req.EndsAt)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": vErr.Error(), "fields": vErr.Fields,
			})
		}
		return assignmentError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(schedule)
}

func (h *AssignmentHandler) DeleteSchedule(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid schedule id",
		})
	}

	if err := h.assignmentService.DeleteSchedule(id, userID); err != nil {
		if errors.Is(err, services.ErrScheduleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete schedule",
		})
	}
	return c.JSON(fiber.Map{"message": "Schedule removed"})
}

func (h *AssignmentHandler) ListSchedules(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	schedules, err := h.assignmentService.ListSchedules(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load schedules",
		})
	}
	return c.JSON(fiber.Map{"schedules": schedules})
}

func (h *AssignmentHandler) SubmitAttempt(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	attempt, err := h.assignmentService.SubmitAttempt(userID, req.AssignmentID, req.Score, req.DurationMs)
	if err != nil {
		if errors.Is(err, services.ErrScoreOutOfRange) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return assignmentError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(attempt)
}

func (h *AssignmentHandler) ListAttempts(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	attempts, err := h.assignmentService.ListAttempts(userID, c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load attempts",
		})
	}
	return c.JSON(fiber.Map{"attempts": attempts})
}

func assignmentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrAssignmentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrNotAssignmentOwner):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}

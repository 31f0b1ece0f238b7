package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sreaderapp/sreader-server/internal/authctx"
	"github.com/sreaderapp/sreader-server/internal/dto"
	"github.com/sreaderapp/sreader-server/internal/services"
)

type DashboardHandler struct {
	dashboardService    *services.DashboardService
	gamificationService *services.GamificationService
}

func NewDashboardHandler(dashboardService *services.DashboardService, gamificationService *services.GamificationService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, gamificationService: gamificationService}
}

func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	dashboard, err := h.dashboardService.GetDashboard(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load dashboard",
		})
	}

	return c.JSON(dashboard)
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	userID, err := authctx.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	stats, err := h.gamificationService.GetStats(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load stats",
		})
	}

	return c.JSON(stats)
}

func (h *DashboardHandler) Leaderboard(c *fiber.Ctx) error {
	entries, err := h.gamificationService.Leaderboard(c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load leaderboard",
		})
	}

	return c.JSON(fiber.Map{"leaderboard": entries})
}

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/optima-labs/optima-api/internal/dto"
	"github.com/optima-labs/optima-api/internal/services"
)

type AdminAnalyticsHandler struct {
	analytics *services.AdminAnalyticsService
}

func NewAdminAnalyticsHandler(analytics *services.AdminAnalyticsService) *AdminAnalyticsHandler {
	return &AdminAnalyticsHandler{analytics: analytics}
}

func (h *AdminAnalyticsHandler) UsageStats(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "30"))

	stats, err := h.analytics.GetAPIUsageStats(c.Context(), days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch usage stats",
		})
	}
	return c.JSON(stats)
}

func (h *AdminAnalyticsHandler) GrowthStats(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "30"))

	stats, err := h.analytics.GetUserGrowthStats(c.Context(), days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch growth stats",
		})
	}
	return c.JSON(stats)
}

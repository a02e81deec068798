package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/optima-labs/optima-api/internal/dto"
	"github.com/optima-labs/optima-api/internal/services"
)

type AdminActionsHandler struct {
	actions *services.AdminActionsService
}

func NewAdminActionsHandler(actions *services.AdminActionsService) *AdminActionsHandler {
	return &AdminActionsHandler{actions: actions}
}

func (h *AdminActionsHandler) ListActions(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	resp, err := h.actions.GetAdminActions(page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch admin actions",
		})
	}
	return c.JSON(resp)
}

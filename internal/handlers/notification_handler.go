package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/optima-labs/optima-api/internal/dto"
	"github.com/optima-labs/optima-api/internal/middleware"
	"github.com/optima-labs/optima-api/internal/services"
)

type NotificationHandler struct {
	notifications *services.NotificationService
	actions       *services.AdminActionsService
}

func NewNotificationHandler(notifications *services.NotificationService, actions *services.AdminActionsService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, actions: actions}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	notifications, err := h.notifications.List(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch notifications",
		})
	}
	return c.JSON(fiber.Map{"notifications": notifications})
}

func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	actor := middleware.AdminProfile(c)
	if actor == nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}

	var req dto.CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	notification, err := h.notifications.Create(req.Title, req.Message, req.Level, actor.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	h.actions.Log(actor.ID, "create_notification", nil, map[string]interface{}{
		"title": req.Title,
	})

	return c.Status(fiber.StatusCreated).JSON(notification)
}

package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/optima-labs/optima-api/internal/dto"
	"github.com/optima-labs/optima-api/internal/middleware"
	"github.com/optima-labs/optima-api/internal/services"
	"github.com/optima-labs/optima-api/internal/session"
)

type AdminSupportHandler struct {
	support *services.AdminSupportService
	actions *services.AdminActionsService
}

func NewAdminSupportHandler(support *services.AdminSupportService, actions *services.AdminActionsService) *AdminSupportHandler {
	return &AdminSupportHandler{support: support, actions: actions}
}

func (h *AdminSupportHandler) ListTickets(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	status := c.Query("status", "all")

	resp, err := h.support.GetTickets(page, limit, status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch tickets",
		})
	}
	return c.JSON(resp)
}

// CreateTicket is the one support endpoint open to regular users.
func (h *AdminSupportHandler) CreateTicket(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	ticket, err := h.support.CreateTicket(userID, req.Title, req.Description, req.Priority)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(ticket)
}

func (h *AdminSupportHandler) UpdateTicket(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid ticket ID",
		})
	}

	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	ticket, err := h.support.UpdateTicket(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTicketNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrInvalidStatus),
			errors.Is(err, services.ErrInvalidPriority),
			errors.Is(err, services.ErrAssigneeNotAdmin):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update ticket",
		})
	}

	if actor := middleware.AdminProfile(c); actor != nil {
		h.actions.Log(actor.ID, "update_ticket", nil, map[string]interface{}{
			"ticket_id": id.String(),
		})
	}

	return c.JSON(ticket)
}

func (h *AdminSupportHandler) ListTicketMessages(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid ticket ID",
		})
	}

	messages, err := h.support.GetTicketMessages(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch ticket messages",
		})
	}
	return c.JSON(fiber.Map{"messages": messages})
}

func (h *AdminSupportHandler) AddTicketMessage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid ticket ID",
		})
	}

	actor := middleware.AdminProfile(c)
	if actor == nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}

	var req dto.AddTicketMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	msg, err := h.support.AddTicketMessage(id, actor.ID, req.Message, req.IsInternal)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTicketNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrEmptyMessage):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to add message",
		})
	}

	h.actions.Log(actor.ID, "add_ticket_message", nil, map[string]interface{}{
		"ticket_id":   id.String(),
		"is_internal": req.IsInternal,
	})

	return c.Status(fiber.StatusCreated).JSON(msg)
}

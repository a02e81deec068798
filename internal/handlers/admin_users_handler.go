package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/optima-labs/optima-api/internal/dto"
	"github.com/optima-labs/optima-api/internal/middleware"
	"github.com/optima-labs/optima-api/internal/services"
)

type AdminUsersHandler struct {
	users   *services.AdminUserService
	actions *services.AdminActionsService
}

func NewAdminUsersHandler(users *services.AdminUserService, actions *services.AdminActionsService) *AdminUsersHandler {
	return &AdminUsersHandler{users: users, actions: actions}
}

func (h *AdminUsersHandler) ListUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	search := c.Query("search", "")

	resp, err := h.users.GetUsers(page, limit, search)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch users",
		})
	}
	return c.JSON(resp)
}

func (h *AdminUsersHandler) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	profile, err := h.users.GetUserByID(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch user",
		})
	}
	return c.JSON(profile)
}

func (h *AdminUsersHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	profile, err := h.users.UpdateUser(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		case errors.Is(err, services.ErrInvalidRole), errors.Is(err, services.ErrInvalidTier):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update user",
		})
	}

	if actor := middleware.AdminProfile(c); actor != nil {
		h.actions.Log(actor.ID, "update_user", &id, map[string]interface{}{
			"fields": updatedFields(&req),
		})
	}

	return c.JSON(profile)
}

func (h *AdminUsersHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	if err := h.users.DeleteUser(id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete user",
		})
	}

	if actor := middleware.AdminProfile(c); actor != nil {
		h.actions.Log(actor.ID, "delete_user", &id, nil)
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

func (h *AdminUsersHandler) UserStats(c *fiber.Ctx) error {
	stats, err := h.users.GetUserStats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch user stats",
		})
	}
	return c.JSON(stats)
}

func updatedFields(req *dto.UpdateUserRequest) []string {
	var fields []string
	if req.FullName != nil {
		fields = append(fields, "full_name")
	}
	if req.AvatarURL != nil {
		fields = append(fields, "avatar_url")
	}
	if req.Role != nil {
		fields = append(fields, "role")
	}
	if req.SubscriptionTier != nil {
		fields = append(fields, "subscription_tier")
	}
	if req.APICallsLimit != nil {
		fields = append(fields, "api_calls_limit")
	}
	return fields
}

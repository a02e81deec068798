package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/optima-labs/optima-api/internal/dto"
	"github.com/optima-labs/optima-api/internal/middleware"
	"github.com/optima-labs/optima-api/internal/services"
)

type AdminSettingsHandler struct {
	settings *services.AdminSettingsService
	actions  *services.AdminActionsService
}

func NewAdminSettingsHandler(settings *services.AdminSettingsService, actions *services.AdminActionsService) *AdminSettingsHandler {
	return &AdminSettingsHandler{settings: settings, actions: actions}
}

func (h *AdminSettingsHandler) ListSettings(c *fiber.Ctx) error {
	settings, err := h.settings.GetSettings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch settings",
		})
	}
	return c.JSON(fiber.Map{"settings": settings})
}

func (h *AdminSettingsHandler) UpdateSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	actor := middleware.AdminProfile(c)
	if actor == nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}

	var req dto.UpdateSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	setting, err := h.settings.UpdateSetting(key, req.Value, actor.ID)
	if err != nil {
		if errors.Is(err, services.ErrSettingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update setting",
		})
	}

	h.actions.Log(actor.ID, "update_setting", nil, map[string]interface{}{
		"key": key,
	})

	return c.JSON(setting)
}

func (h *AdminSettingsHandler) CreateSetting(c *fiber.Ctx) error {
	actor := middleware.AdminProfile(c)
	if actor == nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}

	var req dto.CreateSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	setting, err := h.settings.CreateSetting(req.Key, req.Value, req.Description, actor.ID)
	if err != nil {
		if errors.Is(err, services.ErrSettingExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	h.actions.Log(actor.ID, "create_setting", nil, map[string]interface{}{
		"key": req.Key,
	})

	return c.Status(fiber.StatusCreated).JSON(setting)
}

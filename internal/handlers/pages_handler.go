package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/optima-labs/optima-api/internal/dto"
	"github.com/optima-labs/optima-api/internal/middleware"
	"github.com/optima-labs/optima-api/internal/services"
)

// PagesHandler serves the thin shells behind the page guard. The real
// rendering lives in the web frontend; these endpoints exist so the guard's
// redirect targets respond and return the data each page hydrates from.
type PagesHandler struct {
	auth      *services.AuthService
	processes *services.ProcessService
	users     *services.AdminUserService
}

func NewPagesHandler(auth *services.AuthService, processes *services.ProcessService, users *services.AdminUserService) *PagesHandler {
	return &PagesHandler{auth: auth, processes: processes, users: users}
}

// Auth is the sign-in page the guard bounces anonymous visitors to.
func (h *PagesHandler) Auth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page":        "auth",
		"redirect_to": c.Query("redirectTo", "/dashboard"),
	})
}

func (h *PagesHandler) Dashboard(c *fiber.Ctx) error {
	userID, ok := middleware.SessionUserID(c)
	if !ok {
		return c.Redirect("/auth", fiber.StatusFound)
	}

	profile, err := h.auth.GetProfile(userID)
	if err != nil {
		return c.Redirect("/auth", fiber.StatusFound)
	}

	processList, err := h.processes.List(userID, 1, 20)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load dashboard",
		})
	}

	return c.JSON(fiber.Map{
		"page":      "dashboard",
		"profile":   profile,
		"processes": processList,
	})
}

func (h *PagesHandler) Admin(c *fiber.Ctx) error {
	stats, err := h.users.GetUserStats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load admin overview",
		})
	}

	return c.JSON(fiber.Map{
		"page":  "admin",
		"stats": stats,
	})
}

// AdminSystem only renders for super admins; the guard enforces that.
func (h *PagesHandler) AdminSystem(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"page": "admin_system",
	})
}

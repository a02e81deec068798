package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optima-labs/optima-api/internal/config"
	"github.com/optima-labs/optima-api/internal/dto"
	"github.com/optima-labs/optima-api/internal/models"
	"github.com/optima-labs/optima-api/internal/session"
)

// AdminRequired gates admin API routes. It checks, in order:
// 1. The X-Admin-Token escape hatch from config
// 2. Config-based admin email list
// 3. The caller's stored profile role
// Any failure to resolve the role denies access.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return requireRole(db, cfg, false)
}

// SuperAdminRequired additionally rejects plain admins. Used for the system
// settings write surface.
func SuperAdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return requireRole(db, cfg, true)
}

func requireRole(db *gorm.DB, cfg *config.Config, super bool) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			return c.Next()
		}

		claims, err := session.Claims(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if !super && contains(adminEmails, session.Email(c)) {
			return c.Next()
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var profile models.Profile
		if err := db.First(&profile, "id = ?", userID).Error; err != nil {
			// Fail closed: a role we cannot resolve is no role at all.
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}

		if super && !profile.Role.IsSuperAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Super admin access required",
			})
		}
		if !profile.Role.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}

		c.Locals("admin_profile", &profile)
		return c.Next()
	}
}

// AdminProfile returns the profile stored by AdminRequired, nil when the
// caller passed via a config override.
func AdminProfile(c *fiber.Ctx) *models.Profile {
	p, _ := c.Locals("admin_profile").(*models.Profile)
	return p
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}

package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optima-labs/optima-api/internal/models"
	"github.com/optima-labs/optima-api/internal/session"
)

// UsageLogger records one APIUsageLog row per request on the group it is
// mounted on. Writes are fire-and-forget; a failed insert only logs a
// warning and never affects the response.
func UsageLogger(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		var userID *uuid.UUID
		if id, idErr := session.UserID(c); idErr == nil {
			userID = &id
		}

		latency := int(time.Since(start).Milliseconds())
		entry := models.APIUsageLog{
			ID:             uuid.New(),
			UserID:         userID,
			Endpoint:       c.Path(),
			Method:         c.Method(),
			StatusCode:     status,
			ResponseTimeMs: &latency,
			CreatedAt:      time.Now(),
		}

		go func() {
			if dbErr := db.Create(&entry).Error; dbErr != nil {
				slog.Warn("usage log insert failed", "endpoint", entry.Endpoint, "error", dbErr)
			}
		}()

		return err
	}
}

package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/optima-labs/optima-api/internal/cache"
	"github.com/optima-labs/optima-api/internal/database"
	"github.com/optima-labs/optima-api/internal/dto"
)

type HealthHandler struct {
	db    *gorm.DB
	cache *cache.Redis // nil when Redis is not configured
}

func NewHealthHandler(db *gorm.DB, cache *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(h.db); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	cacheStatus := ""
	if h.cache != nil {
		cacheStatus = "ok"
		if err := h.cache.Ping(c.Context()); err != nil {
			cacheStatus = "unhealthy: " + err.Error()
		}
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Cache:     cacheStatus,
	})
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/optima-labs/optima-api/internal/services"
)

// OptimizationHandler serves the public v1 mock endpoints. Their error shape
// is the bare {"error": "..."} object the published API examples show, not
// the {error,message} envelope the rest of the service uses. No auth is
// enforced here; API keys in the Authorization header are accepted and
// ignored.
type OptimizationHandler struct {
	optimizer *services.OptimizationService
}

func NewOptimizationHandler(optimizer *services.OptimizationService) *OptimizationHandler {
	return &OptimizationHandler{optimizer: optimizer}
}

func (h *OptimizationHandler) Analyze(c *fiber.Ctx) error {
	var req services.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	return c.JSON(h.optimizer.Analyze(&req))
}

// Insights reads the process identifier from the id query parameter, a quirk
// the original client code depends on: the path segment alone is not enough.
func (h *OptimizationHandler) Insights(c *fiber.Ctx) error {
	processID := c.Query("id")
	if processID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Process ID is required",
		})
	}

	result := h.optimizer.Insights(processID)
	if result == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch insights",
		})
	}
	return c.JSON(result)
}

func (h *OptimizationHandler) Trigger(c *fiber.Ctx) error {
	var req services.TriggerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	return c.JSON(h.optimizer.TriggerAutomation(&req))
}

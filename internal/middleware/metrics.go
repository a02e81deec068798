package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/optima-labs/optima-api/internal/metrics"
)

// Metrics observes request counts and latencies per registered route.
func Metrics(m *metrics.Metrics) fiber.Handler {
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

		route := c.Route().Path
		m.HTTPRequests.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		m.HTTPLatency.WithLabelValues(route, c.Method()).Observe(time.Since(start).Seconds())

		return err
	}
}

package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/optima-labs/optima-api/internal/config"
	"github.com/optima-labs/optima-api/internal/handlers"
	"github.com/optima-labs/optima-api/internal/middleware"
)

type Handlers struct {
	Auth          *handlers.AuthHandler
	Health        *handlers.HealthHandler
	Process       *handlers.ProcessHandler
	Optimization  *handlers.OptimizationHandler
	AdminUsers    *handlers.AdminUsersHandler
	AdminSupport  *handlers.AdminSupportHandler
	AdminSettings *handlers.AdminSettingsHandler
	AdminActions  *handlers.AdminActionsHandler
	Analytics     *handlers.AdminAnalyticsHandler
	Notifications *handlers.NotificationHandler
	Pages         *handlers.PagesHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h *Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	// Protected auth routes get JWT middleware individually so the
	// public ones above stay public.
	api.Post("/auth/logout", middleware.JWTProtected(cfg), h.Auth.Logout)
	api.Get("/me", middleware.JWTProtected(cfg), h.Auth.Me)

	// Process CRUD (protected, owner-scoped)
	processes := api.Group("/processes", middleware.JWTProtected(cfg))
	processes.Get("/", h.Process.List)
	processes.Post("/", h.Process.Create)
	processes.Get("/:id", h.Process.Get)
	processes.Put("/:id", h.Process.Update)
	processes.Delete("/:id", h.Process.Delete)

	// Support tickets — creation is open to any signed-in user
	api.Post("/support/tickets", middleware.JWTProtected(cfg), h.AdminSupport.CreateTicket)

	// Notifications feed for the dashboard
	api.Get("/notifications", middleware.JWTProtected(cfg), h.Notifications.List)

	// Mock optimization endpoints. Public by contract; every call is
	// recorded in api_usage_logs for the analytics panel.
	v1 := app.Group("/api/v1", middleware.UsageLogger(db))
	v1.Post("/processes/analyze", h.Optimization.Analyze)
	v1.Get("/processes/:id/insights", h.Optimization.Insights)
	v1.Post("/automation/trigger", h.Optimization.Trigger)

	// Admin panel (JWT + admin role, fail closed)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/me", h.Auth.Me)
	admin.Get("/users", h.AdminUsers.ListUsers)
	admin.Get("/users/stats", h.AdminUsers.UserStats)
	admin.Get("/users/:id", h.AdminUsers.GetUser)
	admin.Put("/users/:id", h.AdminUsers.UpdateUser)
	admin.Delete("/users/:id", h.AdminUsers.DeleteUser)

	admin.Get("/tickets", h.AdminSupport.ListTickets)
	admin.Put("/tickets/:id", h.AdminSupport.UpdateTicket)
	admin.Get("/tickets/:id/messages", h.AdminSupport.ListTicketMessages)
	admin.Post("/tickets/:id/messages", h.AdminSupport.AddTicketMessage)

	admin.Get("/analytics/usage", h.Analytics.UsageStats)
	admin.Get("/analytics/growth", h.Analytics.GrowthStats)

	admin.Get("/actions", h.AdminActions.ListActions)
	admin.Post("/notifications", h.Notifications.Create)

	// Settings reads need admin; writes are super-admin only, enforced on
	// the individual routes so the rest of the panel stays open to admins.
	admin.Get("/settings", h.AdminSettings.ListSettings)
	admin.Post("/settings", middleware.SuperAdminRequired(db, cfg), h.AdminSettings.CreateSetting)
	admin.Put("/settings/:key", middleware.SuperAdminRequired(db, cfg), h.AdminSettings.UpdateSetting)

	// Browser-facing pages behind the session-cookie guard
	app.Get("/auth", h.Pages.Auth)
	app.Get("/dashboard", middleware.PageGuard(db, cfg), h.Pages.Dashboard)
	app.Get("/dashboard/*", middleware.PageGuard(db, cfg), h.Pages.Dashboard)
	app.Get("/admin/system", middleware.PageGuard(db, cfg), h.Pages.AdminSystem)
	app.Get("/admin", middleware.PageGuard(db, cfg), h.Pages.Admin)
	app.Get("/admin/*", middleware.PageGuard(db, cfg), h.Pages.Admin)

	// Prometheus scrape endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

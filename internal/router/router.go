package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/opencampus/portal/internal/config"
	"github.com/opencampus/portal/internal/handler"
	"github.com/opencampus/portal/internal/middleware"
	"github.com/opencampus/portal/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	AssignmentHandler *handler.AssignmentHandler
	UserHandler       *handler.UserHandler
	DashboardHandler  *handler.DashboardHandler
	AuthMiddleware    fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/api/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Use the provided auth gate, or a no-op if nil.
	authGate := deps.AuthMiddleware
	if authGate == nil {
		authGate = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := app.Group("/api/auth", middleware.RateLimit("auth", 20, time.Minute))
		deps.AuthHandler.Register(auth)
	}

	if deps.AssignmentHandler != nil {
		assignments := app.Group("/api/assignments", authGate)
		deps.AssignmentHandler.Register(assignments)
	}

	if deps.UserHandler != nil {
		users := app.Group("/api/users", authGate)
		deps.UserHandler.Register(users)
	}

	if deps.DashboardHandler != nil {
		dashboard := app.Group("/api/dashboard", authGate)
		deps.DashboardHandler.Register(dashboard)
	}
}

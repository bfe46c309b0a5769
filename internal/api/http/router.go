package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-classifier/internal/api/http/handlers"
	"github.com/spec-kit/ticket-classifier/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Customers      *handlers.CustomersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/token", cfg.Auth.Token)

	v1 := app.Group("/v1", cfg.AuthMiddleware.Handle)
	v1.Post("/tickets", cfg.Tickets.SubmitTicket)
	v1.Get("/tickets", cfg.Tickets.ListTickets)
	v1.Get("/tickets/:id", cfg.Tickets.GetTicket)
	v1.Get("/customers", cfg.Customers.GetByEmail)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-system/internal/api/http/handlers"
	"github.com/spec-kit/ticket-system/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")

	api.Get("/health", cfg.Health.Health)
	api.Get("/health/ready", cfg.Health.Ready)
	api.Post("/login", cfg.Users.Login)

	// protected routes take the middleware per route so public /api routes stay open
	requireToken := cfg.AuthMiddleware.Handle
	api.Get("/me", requireToken, cfg.Users.Me)
	api.Get("/tickets", requireToken, cfg.Tickets.ListTickets)
	api.Post("/tickets", requireToken, cfg.Tickets.CreateTicket)
	api.Put("/tickets/:id", requireToken, cfg.Tickets.UpdateTicket)
	api.Delete("/tickets/:id", requireToken, cfg.Tickets.DeleteTicket)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/http/handlers"
	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Literal segments under /user must be
// registered before the :userId parameter route.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/verify-token", cfg.Auth.VerifyToken)

	userGroup := api.Group("/user", cfg.AuthMiddleware.Handle)
	userGroup.Get("/", cfg.Users.Dashboard)
	userGroup.Get("/profile", cfg.Users.GetProfile)
	userGroup.Put("/profile", cfg.Users.UpdateProfile)

	superAdminOnly := auth.RestrictTo(domain.RoleSuperAdmin)
	userGroup.Get("/all", superAdminOnly, cfg.Users.ListUsers)
	userGroup.Post("/", superAdminOnly, cfg.Users.AddUser)
	userGroup.Put("/:userId", superAdminOnly, cfg.Users.UpdateUser)
	userGroup.Delete("/:userId", superAdminOnly, cfg.Users.DeleteUser)

	ticketGroup := api.Group("/ticket", cfg.AuthMiddleware.Handle)
	ticketGroup.Post("/", cfg.Tickets.CreateTicket)
	ticketGroup.Get("/", cfg.Tickets.ListTickets)
	ticketGroup.Get("/all", superAdminOnly, cfg.Tickets.ListAllTickets)

	adminOrAbove := auth.RestrictTo(domain.RoleAdmin, domain.RoleSuperAdmin)
	ticketGroup.Put("/:ticketId", adminOrAbove, cfg.Tickets.UpdateTicket)
	ticketGroup.Delete("/:ticketId", adminOrAbove, cfg.Tickets.DeleteTicket)
}

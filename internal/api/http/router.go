package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/notes-service/internal/api/http/handlers"
	"github.com/spec-kit/notes-service/internal/auth"
	"github.com/spec-kit/notes-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Notes          *handlers.NotesHandler
	Tenants        *handlers.TenantsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Everything except login and the health
// probes sits behind the auth middleware; plan transitions add the ADMIN
// role gate on top.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	notes := app.Group("/notes", cfg.AuthMiddleware.Handle)
	notes.Get("/", cfg.Notes.List)
	notes.Post("/", cfg.Notes.Create)
	notes.Get("/:id", cfg.Notes.Get)
	notes.Put("/:id", cfg.Notes.Update)
	notes.Delete("/:id", cfg.Notes.Delete)

	tenants := app.Group("/tenants", cfg.AuthMiddleware.Handle)
	tenants.Post("/upgrade", auth.RequireRole(domain.RoleAdmin), cfg.Tenants.Upgrade)
	tenants.Post("/downgrade", auth.RequireRole(domain.RoleAdmin), cfg.Tenants.Downgrade)
	tenants.Get("/meta", cfg.Tenants.Meta)
	tenants.Get("/users", cfg.Tenants.Users)
	tenants.Get("/:slug/users", cfg.Tenants.Users)
}

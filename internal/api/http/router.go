package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/huevos-organicos/backend/internal/api/http/handlers"
	"github.com/huevos-organicos/backend/internal/auth"
	"github.com/huevos-organicos/backend/internal/domain"
	"github.com/huevos-organicos/backend/internal/observability"
	apperrors "github.com/huevos-organicos/backend/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Products       *handlers.ProductsHandler
	Clients        *handlers.ClientsHandler
	Leads          *handlers.LeadsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes. The not-found handler is registered last.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	gate := cfg.AuthMiddleware.Handle
	adminOnly := auth.RequireRole(domain.RoleAdmin)

	app.Get("/", cfg.Health.Root)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	api := app.Group("/api")
	api.Get("/health", cfg.Health.Health)
	api.Get("/info", cfg.Health.Info)
	api.Get("/stats", cfg.Health.Stats)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", gate, cfg.Auth.Me)

	users := api.Group("/usuarios", gate, adminOnly)
	users.Get("/", cfg.Users.List)
	users.Post("/", cfg.Users.Create)
	users.Patch("/:id/desactivar", cfg.Users.Deactivate)
	users.Patch("/:id/reactivar", cfg.Users.Reactivate)

	products := api.Group("/productos")
	products.Get("/", cfg.Products.ListActive)
	products.Get("/all", cfg.Products.ListAll)
	products.Get("/inactivos", cfg.Products.ListInactive)
	products.Get("/:id", cfg.Products.Get)
	products.Post("/", gate, cfg.Products.Create)
	products.Put("/:id", gate, cfg.Products.Update)
	products.Delete("/:id", gate, cfg.Products.Delete)
	products.Patch("/:id/reactivar", gate, cfg.Products.Reactivate)

	clients := api.Group("/clientes")
	clients.Get("/stats", cfg.Clients.Stats)
	clients.Get("/", gate, cfg.Clients.List)
	clients.Get("/:id", gate, cfg.Clients.Get)
	clients.Post("/", gate, cfg.Clients.Create)
	clients.Put("/:id", gate, cfg.Clients.Update)
	clients.Delete("/:id", gate, cfg.Clients.Delete)
	clients.Put("/:id/reactivar", gate, cfg.Clients.Reactivate)

	leads := api.Group("/interesados")
	leads.Post("/", cfg.Leads.Create)
	leads.Get("/", gate, cfg.Leads.List)
	leads.Get("/:id", gate, cfg.Leads.Get)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("Ruta no encontrada")
	})
}

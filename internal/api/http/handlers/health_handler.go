package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/huevos-organicos/backend/internal/service"
)

// Pinger is a dependency that can report its reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the banner, info, health and stats endpoints.
type HealthHandler struct {
	serviceName string
	version     string
	db          Pinger
	redis       Pinger
	stats       *service.StatsService
}

// NewHealthHandler returns a new handler instance. redis may be nil when
// caching is disabled.
func NewHealthHandler(serviceName, version string, db, redis Pinger, stats *service.StatsService) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, db: db, redis: redis, stats: stats}
}

// Root handles GET /.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "API de Huevos Orgánicos - Backend funcionando",
		"version": h.version,
		"endpoints": fiber.Map{
			"auth":        "/api/auth",
			"usuarios":    "/api/usuarios",
			"productos":   "/api/productos",
			"clientes":    "/api/clientes",
			"interesados": "/api/interesados",
			"health":      "/api/health",
			"info":        "/api/info",
			"stats":       "/api/stats",
			"metrics":     "/metrics",
		},
	})
}

// Info handles GET /api/info.
func (h *HealthHandler) Info(c *fiber.Ctx) error {
	return success(c, fiber.StatusOK, fiber.Map{
		"nombre":      h.serviceName,
		"version":     h.version,
		"descripcion": "Backend para sistema de gestión de huevos orgánicos",
	}, "")
}

// Health handles GET /api/health by checking dependencies.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	healthy := true
	database := "Conectado"
	if err := h.db.Ping(ctx); err != nil {
		database = "Desconectado"
		healthy = false
	}

	cache := "Deshabilitado"
	if h.redis != nil {
		cache = "Conectado"
		if err := h.redis.Ping(ctx); err != nil {
			// The cache is optional; requests fall back to the database.
			cache = "Desconectado"
		}
	}

	status := fiber.StatusOK
	message := "Servidor funcionando correctamente"
	if !healthy {
		status = fiber.StatusServiceUnavailable
		message = "Base de datos no disponible"
	}
	return c.Status(status).JSON(fiber.Map{
		"success":   healthy,
		"message":   message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  database,
		"cache":     cache,
	})
}

// Stats handles GET /api/stats.
func (h *HealthHandler) Stats(c *fiber.Ctx) error {
	overview, err := h.stats.Overview(c.UserContext())
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{
		"totalProductos": overview.ActiveProducts,
		"totalUsuarios":  overview.ActiveUsers,
		"servidor":       "Online",
	}, "")
}

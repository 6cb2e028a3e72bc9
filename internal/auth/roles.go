package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/huevos-organicos/backend/internal/domain"
	apperrors "github.com/huevos-organicos/backend/pkg/util"
)

// RequireRole ensures the principal has one of the allowed roles. It must run
// after AuthMiddleware.Handle.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Token requerido")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("Permisos insuficientes")
		}
		return c.Next()
	}
}

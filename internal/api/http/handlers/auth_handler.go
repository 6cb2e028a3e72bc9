package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/huevos-organicos/backend/internal/api/dto"
	"github.com/huevos-organicos/backend/internal/auth"
	"github.com/huevos-organicos/backend/internal/service"
	apperrors "github.com/huevos-organicos/backend/pkg/util"
)

// AuthHandler exposes login and the current identity.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ErrMissingCredentials
	}

	res, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, dto.LoginResponse{
		User:  dto.NewIdentityResponse(res.User),
		Token: res.Token,
	}, "")
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Token requerido")
	}
	return success(c, fiber.StatusOK, fiber.Map{"user": dto.NewIdentityResponse(principal)}, "")
}

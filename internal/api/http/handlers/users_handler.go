package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/huevos-organicos/backend/internal/api/dto"
	"github.com/huevos-organicos/backend/internal/auth"
	"github.com/huevos-organicos/backend/internal/service"
	apperrors "github.com/huevos-organicos/backend/pkg/util"
)

const userFieldsRequired = "Nombre, email y contraseña son requeridos"

// UsersHandler exposes admin account management.
type UsersHandler struct {
	users     *service.UserService
	validator *dto.Validator
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService, validator *dto.Validator) *UsersHandler {
	return &UsersHandler{users: users, validator: validator}
}

// List handles GET /api/usuarios.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, dto.NewUserListResponse(users), "")
}

// Create handles POST /api/usuarios.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(userFieldsRequired, nil)
	}
	if err := h.validator.Validate(&req, userFieldsRequired); err != nil {
		return err
	}

	user, err := h.users.Create(c.UserContext(), service.UserCreateInput{
		Name:     req.Nombre,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Rol,
	})
	if err != nil {
		return err
	}
	return success(c, fiber.StatusCreated, dto.NewUserResponse(user), "Usuario creado exitosamente")
}

// Deactivate handles PATCH /api/usuarios/:id/desactivar.
func (h *UsersHandler) Deactivate(c *fiber.Ctx) error {
	return h.setActive(c, false, "Usuario desactivado exitosamente")
}

// Reactivate handles PATCH /api/usuarios/:id/reactivar.
func (h *UsersHandler) Reactivate(c *fiber.Ctx) error {
	return h.setActive(c, true, "Usuario reactivado exitosamente")
}

func (h *UsersHandler) setActive(c *fiber.Ctx, active bool, message string) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Token requerido")
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user, err := h.users.SetActive(c.UserContext(), principal, id, active)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, dto.NewUserResponse(user), message)
}

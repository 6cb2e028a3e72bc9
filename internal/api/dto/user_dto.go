package dto

import (
	"time"

	"github.com/huevos-organicos/backend/internal/domain"
)

// CreateUserRequest payload for POST /api/usuarios.
type CreateUserRequest struct {
	Nombre   string      `json:"nombre" validate:"required,max=100"`
	Email    string      `json:"email" validate:"required,email,max=255"`
	Password string      `json:"password" validate:"required,min=6,max=72"`
	Rol      domain.Role `json:"rol" validate:"omitempty,oneof=admin empleado"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID            int64       `json:"id"`
	Nombre        string      `json:"nombre"`
	Email         string      `json:"email"`
	Rol           domain.Role `json:"rol"`
	Activo        bool        `json:"activo"`
	CreadoEn      time.Time   `json:"creado_en"`
	ActualizadoEn *time.Time  `json:"actualizado_en"`
}

// NewUserResponse maps a user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Nombre:        u.Name,
		Email:         u.Email,
		Rol:           u.Role,
		Activo:        u.Active,
		CreadoEn:      u.CreatedAt,
		ActualizadoEn: u.UpdatedAt,
	}
}

// NewUserListResponse maps a slice of users.
func NewUserListResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

package dto

import "github.com/huevos-organicos/backend/internal/domain"

// LoginRequest payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// IdentityResponse is the public view of an account.
type IdentityResponse struct {
	ID     int64       `json:"id"`
	Nombre string      `json:"nombre"`
	Email  string      `json:"email"`
	Rol    domain.Role `json:"rol"`
}

// LoginResponse carries the identity and its bearer token.
type LoginResponse struct {
	User  IdentityResponse `json:"user"`
	Token string           `json:"token"`
}

// NewIdentityResponse maps an identity.
func NewIdentityResponse(id domain.Identity) IdentityResponse {
	return IdentityResponse{ID: id.ID, Nombre: id.Name, Email: id.Email, Rol: id.Role}
}

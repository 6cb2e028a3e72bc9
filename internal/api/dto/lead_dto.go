package dto

import (
	"time"

	"github.com/huevos-organicos/backend/internal/domain"
)

// LeadRequest payload for the public contact form.
type LeadRequest struct {
	Nombre   string  `json:"nombre" validate:"required,max=150"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Telefono string  `json:"telefono" validate:"required,max=30"`
	Asunto   *string `json:"asunto" validate:"omitempty,max=255"`
	Mensaje  *string `json:"mensaje"`
}

// LeadResponse is the stored lead.
type LeadResponse struct {
	ID       int64     `json:"id"`
	Nombre   string    `json:"nombre"`
	Email    string    `json:"email"`
	Telefono string    `json:"telefono"`
	Asunto   *string   `json:"asunto"`
	Mensaje  *string   `json:"mensaje"`
	CreadoEn time.Time `json:"creado_en"`
}

// NewLeadResponse maps a lead.
func NewLeadResponse(l *domain.Lead) LeadResponse {
	return LeadResponse{
		ID:       l.ID,
		Nombre:   l.Name,
		Email:    l.Email,
		Telefono: l.Phone,
		Asunto:   l.Subject,
		Mensaje:  l.Message,
		CreadoEn: l.CreatedAt,
	}
}

// NewLeadListResponse maps a slice of leads.
func NewLeadListResponse(leads []domain.Lead) []LeadResponse {
	out := make([]LeadResponse, 0, len(leads))
	for i := range leads {
		out = append(out, NewLeadResponse(&leads[i]))
	}
	return out
}

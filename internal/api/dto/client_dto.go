package dto

import (
	"time"

	"github.com/huevos-organicos/backend/internal/domain"
)

// ClientRequest payload for client create and update.
type ClientRequest struct {
	NombreEmpresa  string        `json:"nombre_empresa" validate:"required,max=255"`
	TipoNegocio    string        `json:"tipo_negocio" validate:"required,max=100"`
	ContactoNombre string        `json:"contacto_nombre" validate:"required,max=150"`
	Email          string        `json:"email" validate:"required,email,max=255"`
	Telefono       *string       `json:"telefono" validate:"omitempty,max=30"`
	Direccion      *string       `json:"direccion"`
	RUC            *string       `json:"ruc" validate:"omitempty,max=20"`
	TipoCliente    string        `json:"tipo_cliente" validate:"omitempty,max=30"`
	LimiteCredito  float64       `json:"limite_credito" validate:"gte=0"`
	Estado         domain.Status `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// ClientResponse is the public view of a client.
type ClientResponse struct {
	ID             int64         `json:"id"`
	NombreEmpresa  string        `json:"nombre_empresa"`
	TipoNegocio    string        `json:"tipo_negocio"`
	ContactoNombre string        `json:"contacto_nombre"`
	Email          string        `json:"email"`
	Telefono       *string       `json:"telefono"`
	Direccion      *string       `json:"direccion"`
	RUC            *string       `json:"ruc"`
	TipoCliente    string        `json:"tipo_cliente"`
	LimiteCredito  float64       `json:"limite_credito"`
	Estado         domain.Status `json:"estado"`
	CreadoEn       time.Time     `json:"creado_en"`
	ActualizadoEn  *time.Time    `json:"actualizado_en"`
}

// BusinessTypeCountResponse is one row of the per-type breakdown.
type BusinessTypeCountResponse struct {
	TipoNegocio string `json:"tipo_negocio"`
	Cantidad    int64  `json:"cantidad"`
}

// ClientStatsResponse summarizes active clients.
type ClientStatsResponse struct {
	Total   int64                       `json:"total"`
	Nuevos  int64                       `json:"nuevos"`
	PorTipo []BusinessTypeCountResponse `json:"porTipo"`
}

// NewClientResponse maps a client.
func NewClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ID:             c.ID,
		NombreEmpresa:  c.CompanyName,
		TipoNegocio:    c.BusinessType,
		ContactoNombre: c.ContactName,
		Email:          c.Email,
		Telefono:       c.Phone,
		Direccion:      c.Address,
		RUC:            c.TaxID,
		TipoCliente:    c.ClientType,
		LimiteCredito:  c.CreditLimit,
		Estado:         c.Status,
		CreadoEn:       c.CreatedAt,
		ActualizadoEn:  c.UpdatedAt,
	}
}

// NewClientListResponse maps a slice of clients.
func NewClientListResponse(clients []domain.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, NewClientResponse(&clients[i]))
	}
	return out
}

// NewClientStatsResponse maps the client summary.
func NewClientStatsResponse(s *domain.ClientStats) ClientStatsResponse {
	rows := make([]BusinessTypeCountResponse, 0, len(s.ByBusinessType))
	for _, row := range s.ByBusinessType {
		rows = append(rows, BusinessTypeCountResponse{TipoNegocio: row.BusinessType, Cantidad: row.Count})
	}
	return ClientStatsResponse{Total: s.Total, Nuevos: s.NewLast30Days, PorTipo: rows}
}

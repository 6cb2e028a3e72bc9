package dto

import (
	"time"

	"github.com/huevos-organicos/backend/internal/domain"
)

// ProductRequest payload for product create and full update.
type ProductRequest struct {
	Nombre          string                 `json:"nombre" validate:"required,max=255"`
	Descripcion     *string                `json:"descripcion"`
	Precio          float64                `json:"precio" validate:"required,gt=0"`
	Categoria       domain.ProductCategory `json:"categoria" validate:"required,oneof=standard premium especial gourmet"`
	Imagen          *string                `json:"imagen" validate:"omitempty,max=500"`
	Stock           int                    `json:"stock" validate:"gte=0"`
	Estado          domain.Status          `json:"estado" validate:"omitempty,oneof=activo inactivo"`
	Caracteristicas []string               `json:"caracteristicas"`
}

// ProductStatusRequest is the status-only form of a product update.
type ProductStatusRequest struct {
	Estado domain.Status `json:"estado" validate:"required,oneof=activo inactivo"`
}

// ProductResponse is the public view of a product.
type ProductResponse struct {
	ID              int64                  `json:"id"`
	Nombre          string                 `json:"nombre"`
	Descripcion     *string                `json:"descripcion"`
	Precio          float64                `json:"precio"`
	Categoria       domain.ProductCategory `json:"categoria"`
	Imagen          *string                `json:"imagen"`
	Stock           int                    `json:"stock"`
	Estado          domain.Status          `json:"estado"`
	Caracteristicas []string               `json:"caracteristicas"`
	CreadoEn        time.Time              `json:"creado_en"`
	ActualizadoEn   *time.Time             `json:"actualizado_en"`
}

// NewProductResponse maps a product.
func NewProductResponse(p *domain.Product) ProductResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return ProductResponse{
		ID:              p.ID,
		Nombre:          p.Name,
		Descripcion:     p.Description,
		Precio:          p.Price,
		Categoria:       p.Category,
		Imagen:          p.Image,
		Stock:           p.Stock,
		Estado:          p.Status,
		Caracteristicas: features,
		CreadoEn:        p.CreatedAt,
		ActualizadoEn:   p.UpdatedAt,
	}
}

// NewProductListResponse maps a slice of products.
func NewProductListResponse(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewProductResponse(&products[i]))
	}
	return out
}

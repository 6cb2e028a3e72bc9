package service

import (
	"context"
	"errors"

	"github.com/huevos-organicos/backend/internal/domain"
	"github.com/huevos-organicos/backend/internal/persistence"
	"github.com/huevos-organicos/backend/internal/repository"
	apperrors "github.com/huevos-organicos/backend/pkg/util"
)

var errProductNotFound = apperrors.NewNotFound("Producto no encontrado")

// ProductInput carries the writable fields of a product.
type ProductInput struct {
	Name        string
	Description *string
	Price       float64
	Category    domain.ProductCategory
	Image       *string
	Stock       int
	Status      domain.Status
	Features    []string
}

// ProductService manages the catalogue.
type ProductService struct {
	products repository.ProductRepository
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// List returns products in the given status, or all when status is nil.
func (s *ProductService) List(ctx context.Context, status *domain.Status) ([]domain.Product, error) {
	products, err := s.products.List(ctx, repository.ProductFilter{Status: status})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return products, nil
}

// GetActive returns an active product.
func (s *ProductService) GetActive(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.GetActiveByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, errProductNotFound)
	}
	return product, nil
}

// Create stores a new product; it starts active unless told otherwise.
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	product := input.toProduct()
	if product.Status == "" {
		product.Status = domain.StatusActive
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// Update replaces every writable field of the product. An empty Status
// keeps the stored one.
func (s *ProductService) Update(ctx context.Context, id int64, input ProductInput) (*domain.Product, error) {
	product := input.toProduct()
	product.ID = id
	if err := s.products.Update(ctx, product); err != nil {
		return nil, mapNotFound(err, errProductNotFound)
	}
	return s.reload(ctx, id)
}

// SetStatus changes only the status, used for soft delete and reactivation.
func (s *ProductService) SetStatus(ctx context.Context, id int64, status domain.Status) (*domain.Product, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("Estado inválido", map[string]any{"estado": status})
	}
	if err := s.products.SetStatus(ctx, id, status); err != nil {
		return nil, mapNotFound(err, errProductNotFound)
	}
	return s.reload(ctx, id)
}

func (s *ProductService) reload(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, errProductNotFound)
	}
	return product, nil
}

func (in ProductInput) toProduct() *domain.Product {
	features := in.Features
	if features == nil {
		features = []string{}
	}
	return &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Image:       in.Image,
		Stock:       in.Stock,
		Status:      in.Status,
		Features:    features,
	}
}

func mapNotFound(err, notFound error) error {
	if errors.Is(err, persistence.ErrNoRows) {
		return notFound
	}
	return apperrors.MapError(err)
}

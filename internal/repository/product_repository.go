package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huevos-organicos/backend/internal/domain"
	"github.com/huevos-organicos/backend/internal/persistence"
)

// ProductFilter narrows product listings. A nil Status lists every product.
type ProductFilter struct {
	Status *domain.Status
}

// ProductRepository encapsulates catalogue persistence.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetActiveByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	SetStatus(ctx context.Context, id int64, status domain.Status) error
	CountActive(ctx context.Context) (int64, error)
}

type productRepository struct {
	db persistence.DB
}

// NewProductRepository instantiates repository.
func NewProductRepository(db persistence.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, nombre, descripcion, precio::float8, categoria, imagen, stock, estado,
               caracteristicas, creado_en, actualizado_en`

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos`
	args := []any{}
	if filter.Status != nil {
		query += ` WHERE estado = ?`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY creado_en DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *product)
	}
	return result, rows.Err()
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM productos WHERE id = ?`
	return scanProduct(r.db.QueryRow(ctx, query, id))
}

func (r *productRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM productos WHERE id = ? AND estado = 'activo'`
	return scanProduct(r.db.QueryRow(ctx, query, id))
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO productos (nombre, descripcion, precio, categoria, imagen, stock, estado, caracteristicas)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?::jsonb)
        RETURNING id, creado_en`

	features, err := encodeFeatures(product.Features)
	if err != nil {
		return err
	}
	return r.db.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.Category,
		product.Image,
		product.Stock,
		product.Status,
		features,
	).Scan(&product.ID, &product.CreatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE productos
        SET nombre = ?, descripcion = ?, precio = ?, categoria = ?, imagen = ?, stock = ?,
            estado = COALESCE(?, estado), caracteristicas = ?::jsonb, actualizado_en = NOW()
        WHERE id = ?`

	features, err := encodeFeatures(product.Features)
	if err != nil {
		return err
	}
	affected, err := r.db.Exec(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.Category,
		product.Image,
		product.Stock,
		optionalStatus(product.Status),
		features,
		product.ID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNoRows
	}
	return nil
}

func (r *productRepository) SetStatus(ctx context.Context, id int64, status domain.Status) error {
	const query = `UPDATE productos SET estado = ?, actualizado_en = NOW() WHERE id = ?`

	affected, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNoRows
	}
	return nil
}

func (r *productRepository) CountActive(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM productos WHERE estado = 'activo'`

	var total int64
	err := r.db.QueryRow(ctx, query).Scan(&total)
	return total, err
}

func scanProduct(row persistence.Row) (*domain.Product, error) {
	var (
		product  domain.Product
		features []byte
	)
	if err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Category,
		&product.Image,
		&product.Stock,
		&product.Status,
		&features,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	product.Features = []string{}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &product.Features); err != nil {
			return nil, fmt.Errorf("decode caracteristicas of product %d: %w", product.ID, err)
		}
	}
	return &product, nil
}

func encodeFeatures(features []string) (string, error) {
	if features == nil {
		features = []string{}
	}
	raw, err := json.Marshal(features)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// optionalStatus binds an empty status as NULL so COALESCE keeps the stored one.
func optionalStatus(status domain.Status) any {
	if status == "" {
		return nil
	}
	return string(status)
}

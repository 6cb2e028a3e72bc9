package repository

import (
	"context"

	"github.com/huevos-organicos/backend/internal/domain"
	"github.com/huevos-organicos/backend/internal/persistence"
)

// ClientRepository handles persistence for wholesale clients.
type ClientRepository interface {
	List(ctx context.Context) ([]domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	SetStatus(ctx context.Context, id int64, status domain.Status) error
	Stats(ctx context.Context) (*domain.ClientStats, error)
}

type clientRepository struct {
	db persistence.DB
}

// NewClientRepository instantiates the repository.
func NewClientRepository(db persistence.DB) ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, nombre_empresa, tipo_negocio, contacto_nombre, email, telefono, direccion, ruc,
               tipo_cliente, limite_credito::float8, estado, creado_en, actualizado_en`

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	const query = `SELECT ` + clientColumns + ` FROM clientes ORDER BY creado_en DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Client{}
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *client)
	}
	return result, rows.Err()
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	const query = `SELECT ` + clientColumns + ` FROM clientes WHERE id = ?`
	return scanClient(r.db.QueryRow(ctx, query, id))
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	const query = `
        INSERT INTO clientes (nombre_empresa, tipo_negocio, contacto_nombre, email, telefono, direccion, ruc,
                              tipo_cliente, limite_credito, estado)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id, creado_en`

	return r.db.QueryRow(ctx, query,
		client.CompanyName,
		client.BusinessType,
		client.ContactName,
		client.Email,
		client.Phone,
		client.Address,
		client.TaxID,
		client.ClientType,
		client.CreditLimit,
		client.Status,
	).Scan(&client.ID, &client.CreatedAt)
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	const query = `
        UPDATE clientes
        SET nombre_empresa = ?, tipo_negocio = ?, contacto_nombre = ?, email = ?, telefono = ?,
            direccion = ?, ruc = ?, tipo_cliente = ?, limite_credito = ?, estado = ?, actualizado_en = NOW()
        WHERE id = ?
        RETURNING creado_en, actualizado_en`

	return r.db.QueryRow(ctx, query,
		client.CompanyName,
		client.BusinessType,
		client.ContactName,
		client.Email,
		client.Phone,
		client.Address,
		client.TaxID,
		client.ClientType,
		client.CreditLimit,
		client.Status,
		client.ID,
	).Scan(&client.CreatedAt, &client.UpdatedAt)
}

func (r *clientRepository) SetStatus(ctx context.Context, id int64, status domain.Status) error {
	const query = `UPDATE clientes SET estado = ?, actualizado_en = NOW() WHERE id = ?`

	affected, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNoRows
	}
	return nil
}

func (r *clientRepository) Stats(ctx context.Context) (*domain.ClientStats, error) {
	const totalsQuery = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE creado_en >= NOW() - INTERVAL '30 days')
        FROM clientes WHERE estado = 'activo'`
	const byTypeQuery = `
        SELECT tipo_negocio, COUNT(*)
        FROM clientes WHERE estado = 'activo'
        GROUP BY tipo_negocio ORDER BY COUNT(*) DESC`

	stats := &domain.ClientStats{ByBusinessType: []domain.BusinessTypeCount{}}
	if err := r.db.QueryRow(ctx, totalsQuery).Scan(&stats.Total, &stats.NewLast30Days); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, byTypeQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.BusinessTypeCount
		if err := rows.Scan(&item.BusinessType, &item.Count); err != nil {
			return nil, err
		}
		stats.ByBusinessType = append(stats.ByBusinessType, item)
	}
	return stats, rows.Err()
}

func scanClient(row persistence.Row) (*domain.Client, error) {
	var client domain.Client
	if err := row.Scan(
		&client.ID,
		&client.CompanyName,
		&client.BusinessType,
		&client.ContactName,
		&client.Email,
		&client.Phone,
		&client.Address,
		&client.TaxID,
		&client.ClientType,
		&client.CreditLimit,
		&client.Status,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &client, nil
}

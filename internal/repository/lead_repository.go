package repository

import (
	"context"

	"github.com/huevos-organicos/backend/internal/domain"
	"github.com/huevos-organicos/backend/internal/persistence"
)

// LeadRepository stores contact-form submissions.
type LeadRepository interface {
	List(ctx context.Context) ([]domain.Lead, error)
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	Create(ctx context.Context, lead *domain.Lead) error
}

type leadRepository struct {
	db persistence.DB
}

// NewLeadRepository instantiates the repository.
func NewLeadRepository(db persistence.DB) LeadRepository {
	return &leadRepository{db: db}
}

const leadColumns = `id, nombre, email, telefono, asunto, mensaje, creado_en`

func (r *leadRepository) List(ctx context.Context) ([]domain.Lead, error) {
	const query = `SELECT ` + leadColumns + ` FROM interesados ORDER BY creado_en DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Lead{}
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Subject, &lead.Message, &lead.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, lead)
	}
	return result, rows.Err()
}

func (r *leadRepository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	const query = `SELECT ` + leadColumns + ` FROM interesados WHERE id = ?`

	var lead domain.Lead
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Subject,
		&lead.Message,
		&lead.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	const query = `
        INSERT INTO interesados (nombre, email, telefono, asunto, mensaje)
        VALUES (?, ?, ?, ?, ?)
        RETURNING id, creado_en`

	return r.db.QueryRow(ctx, query,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Subject,
		lead.Message,
	).Scan(&lead.ID, &lead.CreatedAt)
}

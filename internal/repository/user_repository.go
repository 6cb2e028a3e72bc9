package repository

import (
	"context"
	"errors"

	"github.com/huevos-organicos/backend/internal/domain"
	"github.com/huevos-organicos/backend/internal/persistence"
)

// UserRepository defines persistence access for back-office accounts.
type UserRepository interface {
	FindActiveByEmail(ctx context.Context, email string) (*domain.User, error)
	FindActiveByID(ctx context.Context, id int64) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	CreateIfAbsent(ctx context.Context, user *domain.User) (bool, error)
	SetActive(ctx context.Context, id int64, active bool) error
	CountActive(ctx context.Context) (int64, error)
}

type userRepository struct {
	db persistence.DB
}

// NewUserRepository returns a store-backed implementation.
func NewUserRepository(db persistence.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, nombre, email, password, rol, activo, creado_en, actualizado_en`

func (r *userRepository) FindActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM usuarios WHERE email = ? AND activo = TRUE`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepository) FindActiveByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM usuarios WHERE id = ? AND activo = TRUE`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM usuarios WHERE id = ?`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM usuarios ORDER BY creado_en DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO usuarios (nombre, email, password, rol, activo)
        VALUES (?, ?, ?, ?, ?)
        RETURNING id, creado_en`

	return r.db.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Active,
	).Scan(&user.ID, &user.CreatedAt)
}

// CreateIfAbsent inserts the account unless the email is taken; it reports
// whether a row was written.
func (r *userRepository) CreateIfAbsent(ctx context.Context, user *domain.User) (bool, error) {
	const query = `
        INSERT INTO usuarios (nombre, email, password, rol, activo)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT (email) DO NOTHING
        RETURNING id, creado_en`

	err := r.db.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Active,
	).Scan(&user.ID, &user.CreatedAt)
	if errors.Is(err, persistence.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *userRepository) SetActive(ctx context.Context, id int64, active bool) error {
	const query = `UPDATE usuarios SET activo = ?, actualizado_en = NOW() WHERE id = ?`

	affected, err := r.db.Exec(ctx, query, active, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNoRows
	}
	return nil
}

func (r *userRepository) CountActive(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM usuarios WHERE activo = TRUE`

	var total int64
	err := r.db.QueryRow(ctx, query).Scan(&total)
	return total, err
}

func scanUser(row persistence.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	apperrors "github.com/huevos-organicos/backend/pkg/util"
)

// uniqueViolation is the SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

var (
	// ErrNoRows is returned when a single-row read matches nothing.
	ErrNoRows = apperrors.ErrNoRows
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = apperrors.ErrDuplicate
)

// Row is the result of a single-row query.
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a multi-row result. Close must be called.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// DB is the store handle shared by repositories. Queries use positional "?"
// placeholders; each adapter binds them in its own dialect.
type DB interface {
	QueryRow(ctx context.Context, query string, args ...any) Row
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Ping(ctx context.Context) error
	Close()
}

// Rebind rewrites "?" placeholders into PostgreSQL "$n" form.
func Rebind(query string) string {
	return sqlx.Rebind(sqlx.DOLLAR, query)
}

// translateError maps driver errors onto ErrNoRows / ErrDuplicate.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
	}
	return err
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

type row struct {
	scan   func(dest ...any) error
	cancel context.CancelFunc
}

func (r *row) Scan(dest ...any) error {
	defer r.cancel()
	return translateError(r.scan(dest...))
}

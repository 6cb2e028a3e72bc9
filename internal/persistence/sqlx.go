package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/huevos-organicos/backend/internal/config"
)

// SQLStore is the database/sql adapter, selected with DB_DRIVER=postgres.
type SQLStore struct {
	db           *sqlx.DB
	queryTimeout time.Duration
}

// NewSQLStore opens a lib/pq backed pool and verifies it with a ping.
func NewSQLStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*SQLStore, error) {
	if cfg.DSN == "" {
		return nil, errors.New("database dsn not provided")
	}

	db, err := sqlx.Open(config.DriverPostgres, cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(int(cfg.MaxConns))
	}
	if cfg.MinConns > 0 {
		db.SetMaxIdleConns(int(cfg.MinConns))
	}
	if cfg.ConnMaxIdleSec > 0 {
		db.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleSec) * time.Second)
	}
	if cfg.ConnMaxLifeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifeSec) * time.Second)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("connected to postgres", zap.String("driver", config.DriverPostgres), zap.Int32("max_conns", cfg.MaxConns))
	return &SQLStore{db: db, queryTimeout: cfg.QueryTimeout()}, nil
}

// QueryRow runs a single-row query.
func (s *SQLStore) QueryRow(ctx context.Context, query string, args ...any) Row {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	return &row{scan: s.db.QueryRowxContext(ctx, s.db.Rebind(query), args...).Scan, cancel: cancel}
}

// Query runs a multi-row query.
func (s *SQLStore) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	rows, err := s.db.QueryxContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		cancel()
		return nil, translateError(err)
	}
	return &sqlRows{rows: rows, cancel: cancel}, nil
}

// Exec runs a write and returns the affected row count.
func (s *SQLStore) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()
	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return 0, translateError(err)
	}
	return res.RowsAffected()
}

// Ping verifies database connectivity.
func (s *SQLStore) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("sql store not configured")
	}
	return s.db.PingContext(ctx)
}

// Close releases pool resources.
func (s *SQLStore) Close() {
	if s != nil && s.db != nil {
		_ = s.db.Close()
	}
}

type sqlRows struct {
	rows   *sqlx.Rows
	cancel context.CancelFunc
}

func (r *sqlRows) Next() bool             { return r.rows.Next() }
func (r *sqlRows) Scan(dest ...any) error { return translateError(r.rows.Scan(dest...)) }
func (r *sqlRows) Err() error             { return translateError(r.rows.Err()) }

func (r *sqlRows) Close() {
	_ = r.rows.Close()
	r.cancel()
}

// Open selects the adapter named by cfg.Driver.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (DB, error) {
	if cfg.Driver == config.DriverPostgres {
		store, err := NewSQLStore(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	pg, err := NewPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return pg, nil
}

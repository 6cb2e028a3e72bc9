package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/huevos-organicos/backend/internal/config"
)

// Postgres wraps access to a pgx connection pool.
type Postgres struct {
	Pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// NewPostgres establishes a connection pool and verifies it with a ping.
// Callers blocked on an exhausted pool wait until their context expires.
func NewPostgres(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Postgres, error) {
	if cfg.DSN == "" {
		return nil, errors.New("database dsn not provided")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("connected to postgres", zap.String("driver", config.DriverPgx), zap.Int32("max_conns", poolCfg.MaxConns))
	return &Postgres{Pool: pool, queryTimeout: cfg.QueryTimeout()}, nil
}

// QueryRow runs a single-row query.
func (p *Postgres) QueryRow(ctx context.Context, query string, args ...any) Row {
	ctx, cancel := withTimeout(ctx, p.queryTimeout)
	return &row{scan: p.Pool.QueryRow(ctx, Rebind(query), args...).Scan, cancel: cancel}
}

// Query runs a multi-row query.
func (p *Postgres) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	ctx, cancel := withTimeout(ctx, p.queryTimeout)
	rows, err := p.Pool.Query(ctx, Rebind(query), args...)
	if err != nil {
		cancel()
		return nil, translateError(err)
	}
	return &pgxRows{rows: rows, cancel: cancel}, nil
}

// Exec runs a write and returns the affected row count.
func (p *Postgres) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	ctx, cancel := withTimeout(ctx, p.queryTimeout)
	defer cancel()
	tag, err := p.Pool.Exec(ctx, Rebind(query), args...)
	if err != nil {
		return 0, translateError(err)
	}
	return tag.RowsAffected(), nil
}

// Ping verifies database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.Pool == nil {
		return errors.New("postgres pool not configured")
	}
	return p.Pool.Ping(ctx)
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}

type pgxRows struct {
	rows   pgx.Rows
	cancel context.CancelFunc
}

func (r *pgxRows) Next() bool             { return r.rows.Next() }
func (r *pgxRows) Scan(dest ...any) error { return translateError(r.rows.Scan(dest...)) }
func (r *pgxRows) Err() error             { return translateError(r.rows.Err()) }

func (r *pgxRows) Close() {
	r.rows.Close()
	r.cancel()
}

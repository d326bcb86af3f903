// Package database sets up the shared PostgreSQL connection pool used by
// the repository layer. A single pgxpool.Pool backs the *sql.DB (via
// stdlib.OpenDBFromPool) that the sqlx handle wraps; the repositories query
// only through that sqlx handle, and DB keeps the pool so Close can release
// it (§3 "persistence engine: a transactional relational
// store with secondary indices and row-level uniqueness constraints").
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/sport-log/sport-log-server/internal/config"
	"github.com/sport-log/sport-log-server/internal/pkg/logger"
)

// DB bundles the pool and the sqlx handle the repository layer queries
// through.
type DB struct {
	Pool *pgxpool.Pool
	SQLX *sqlx.DB
}

// Connect opens the shared pool and verifies connectivity.
func Connect(ctx context.Context, cfg config.DatabasePoolConfig, databaseURL string) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, "SET timezone = 'UTC'")
		return err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	sqlxDB := sqlx.NewDb(sqlDB, "pgx")

	logger.Info("database connection pool created",
		zap.Int32("max_conns", poolConfig.MaxConns),
		zap.Int32("min_conns", poolConfig.MinConns),
	)

	return &DB{Pool: pool, SQLX: sqlxDB}, nil
}

// Close releases the pool and its *sql.DB wrapper.
func (d *DB) Close() {
	if d.SQLX != nil {
		_ = d.SQLX.Close()
	}
	if d.Pool != nil {
		d.Pool.Close()
	}
}

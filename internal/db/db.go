// Package db owns the PostgreSQL connection pool and the embedded schema migrations for
// the reviews table.
package db

import (
	"context"
	"embed"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrations holds the ordered *.up.sql files applied by cmd/migrate.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const connectTimeout = 30 * time.Second

// Config describes the pool. Zero MaxConns and MaxIdleTime keep the pgx defaults.
type Config struct {
	Addr        string
	MaxConns    int32
	MaxIdleTime time.Duration
}

func (c Config) poolConfig() (*pgxpool.Config, error) {
	if c.Addr == "" {
		return nil, errors.New("db: empty connection address")
	}
	pc, err := pgxpool.ParseConfig(c.Addr)
	if err != nil {
		return nil, err
	}
	if c.MaxConns > 0 {
		pc.MaxConns = c.MaxConns
	}
	if c.MaxIdleTime > 0 {
		pc.MaxConnIdleTime = c.MaxIdleTime
	}
	return pc, nil
}

// New opens a pool and verifies it with a ping before handing it out.
func New(cfg Config) (*pgxpool.Pool, error) {
	pc, err := cfg.poolConfig()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

package storage

import (
	"context"

	"spa/internal/domain/reviews"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Options struct {
	AutoApproveReviews bool
}

type Container struct {
	pool    *pgxpool.Pool
	Reviews reviews.Store
}

func NewContainer(db *pgxpool.Pool, opts Options) *Container {
	return &Container{
		pool:    db,
		Reviews: reviews.NewRepository(db, reviews.WithAutoApprove(opts.AutoApproveReviews)),
	}
}

// Ping checks database connectivity; a container without a pool always succeeds.
func (c *Container) Ping(ctx context.Context) error {
	if c.pool == nil {
		return nil
	}
	return c.pool.Ping(ctx)
}

// Stat exposes pool counters for the debug/vars endpoint.
func (c *Container) Stat() map[string]any {
	if c.pool == nil {
		return nil
	}
	s := c.pool.Stat()
	return map[string]any{
		"total_conns":      s.TotalConns(),
		"idle_conns":       s.IdleConns(),
		"acquired_conns":   s.AcquiredConns(),
		"max_conns":        s.MaxConns(),
		"acquire_count":    s.AcquireCount(),
		"empty_acquires":   s.EmptyAcquireCount(),
		"canceled_acquire": s.CanceledAcquireCount(),
	}
}

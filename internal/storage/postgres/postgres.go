// Package postgres stores encounter savepoints in PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/initiative/internal/config"
)

// Pool is the connection pool backing the savepoint store.
type Pool struct {
	pool *pgxpool.Pool
}

// Stats is a snapshot of pool usage reported by Health.
type Stats struct {
	Total    int32
	Idle     int32
	Acquired int32
}

// NewPool connects to PostgreSQL and tags every session with application so
// pg_stat_activity shows which binary holds it.
//
// Postcondition: Returns a pool that has answered a ping, or a non-nil error.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, application string) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	if application != "" {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = application
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Pool{pool: pool}, nil
}

// Health pings the database within timeout and reports current pool usage.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) (Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	s := p.pool.Stat()
	stats := Stats{Total: s.TotalConns(), Idle: s.IdleConns(), Acquired: s.AcquiredConns()}
	if err := p.pool.Ping(ctx); err != nil {
		return stats, fmt.Errorf("pinging database: %w", err)
	}
	return stats, nil
}

// Savepoints returns a repository over this pool keeping at most maxCount
// savepoints per game.
func (p *Pool) Savepoints(maxCount int) *SavepointRepository {
	return NewSavepointRepository(p.pool, maxCount)
}

// Close releases all pool resources.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB returns the underlying pgxpool.Pool.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}

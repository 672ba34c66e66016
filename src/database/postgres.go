package database

import (
	"context"
	"fmt"
	"time"

	"famwealth/src/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
)

// SetupDB opens the pool and pings it, retrying while Postgres is still
// starting up.
func SetupDB(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Databases.SQL.DSN())
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %v\nPlease ensure the database is running and accessible with the provided credentials", err)
	}

	backoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %v\nPlease check your database configuration and ensure it's running", err)
	}
	return pool, nil
}

// Package dbtest connects repository tests to a real Postgres.
package dbtest

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"famwealth/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// EnvDatabaseURL names the variable holding the test database DSN.
const EnvDatabaseURL = "TEST_DATABASE_URL"

var (
	once    sync.Once
	testDB  *pgxpool.Pool
	initErr error
)

var tables = []string{
	"sync_logs",
	"equity_holdings",
	"mutual_fund_holdings",
	"reminders",
	"accounts",
	"liabilities",
	"investments",
	"family_members",
}

// SetupTestDB returns a migrated pool with empty tables. The test is skipped
// when TEST_DATABASE_URL is not set.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		t.Skipf("%s not set, skipping database test", EnvDatabaseURL)
	}

	once.Do(func() {
		testDB, initErr = connect(dsn)
	})
	if initErr != nil {
		t.Fatalf("Failed to prepare test database: %v", initErr)
	}

	TruncateTables(t, testDB)
	return testDB
}

func connect(dsn string) (*pgxpool.Pool, error) {
	ctx := context.Background()
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	cfg.MaxConns = 5
	cfg.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	if err := migrations.Up(sqlDB); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return pool, nil
}

// TruncateTables empties every application table.
func TruncateTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	for _, table := range tables {
		if _, err := pool.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Fatalf("Failed to truncate table %s: %v", table, err)
		}
	}
}

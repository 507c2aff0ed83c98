package integration

import (
	"context"
	"testing"
	"time"

	"github.com/Zakaria-Tajer/fx/internal/config"
	"github.com/Zakaria-Tajer/fx/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
}

// SetupTestDB creates a PostgreSQL test container, a pool and the deals schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
	}
}

// SeedDeals inserts deals with the given business keys directly.
func SeedDeals(t *testing.T, pool *pgxpool.Pool, dealIDs ...string) {
	t.Helper()

	ctx := context.Background()

	for _, id := range dealIDs {
		_, err := pool.Exec(ctx, `
			INSERT INTO deals (id, deal_id, from_currency, to_currency, deal_timestamp, amount)
			VALUES (gen_random_uuid(), $1, 'USD', 'EUR', '2023-01-01T00:00:00', 1)`,
			id,
		)
		if err != nil {
			t.Fatalf("failed to seed deal %s: %v", id, err)
		}
	}
}

// CountDeals returns the number of stored deals.
func CountDeals(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()

	var count int
	if err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM deals").Scan(&count); err != nil {
		t.Fatalf("failed to count deals: %v", err)
	}
	return count
}

// CleanupDB removes every stored deal.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "DELETE FROM deals"); err != nil {
		t.Logf("failed to clean table deals: %v", err)
	}
}

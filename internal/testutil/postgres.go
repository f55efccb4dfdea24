// Package testutil provides test helpers: PostgreSQL and Redis containers and
// deterministic dice sources.
package testutil

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cory-johannsen/initiative/internal/config"
	"github.com/cory-johannsen/initiative/internal/storage/postgres"
)

// PostgresContainer is a throwaway PostgreSQL with the savepoint schema applied.
type PostgresContainer struct {
	Pool    *postgres.Pool
	RawPool *pgxpool.Pool
	Config  config.DatabaseConfig
}

// NewPostgresContainer starts PostgreSQL, applies every migration and
// connects a pool. The container is terminated when the test ends.
//
// Precondition: Docker must be available. Skipped under -short.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()
	start := time.Now()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "initiative",
				"POSTGRES_PASSWORD": "initiative",
				"POSTGRES_DB":       "initiative_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("starting postgres container: %v [%s]", err, time.Since(start))
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, port := endpoint(t, container, "5432")
	cfg := config.DatabaseConfig{
		Host:            host,
		Port:            port,
		User:            "initiative",
		Password:        "initiative",
		Name:            "initiative_test",
		SSLMode:         "disable",
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: 5 * time.Minute,
	}

	migrateSchema(t, cfg.DSN())

	pool, err := postgres.NewPool(ctx, cfg, "initiative-test")
	if err != nil {
		t.Fatalf("connecting to test postgres: %v [%s]", err, time.Since(start))
	}
	t.Cleanup(pool.Close)
	t.Logf("postgres container ready [%s]", time.Since(start))

	return &PostgresContainer{Pool: pool, RawPool: pool.DB(), Config: cfg}
}

// MigrationsDir returns the absolute path of the repository's migrations.
func MigrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}

func migrateSchema(t *testing.T, dsn string) {
	t.Helper()
	m, err := migrate.New("file://"+MigrationsDir(), dsn)
	if err != nil {
		t.Fatalf("creating migrator: %v", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("applying migrations: %v", err)
	}
}

func endpoint(t *testing.T, c testcontainers.Container, port nat.Port) (string, int) {
	t.Helper()
	ctx := context.Background()
	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("getting container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		t.Fatalf("getting mapped port: %v", err)
	}
	return host, mapped.Int()
}

package testhelper

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"orcamentos/internal/infrastructure/postgres"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// SetupTestDB starts a shared PostgreSQL container (once for the entire test run),
// applies the embedded migrations and returns a new connection to it.
// The test is skipped in -short mode or when no container runtime is reachable.
func SetupTestDB(t *testing.T) *postgres.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("testhelper: skipping database test in short mode")
	}

	once.Do(func() {
		sharedDSN, initErr = startContainerAndMigrate()
	})
	if initErr != nil {
		t.Skipf("testhelper: test database unavailable: %v", initErr)
	}

	db, err := postgres.New(sharedDSN, postgres.PoolConfig{MaxOpenConns: 5})
	if err != nil {
		t.Fatalf("testhelper: failed to connect: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func startContainerAndMigrate() (dsn string, err error) {
	// testcontainers panics when no docker host can be found.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("container provider: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	dsn = fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	db, err := postgres.New(dsn, postgres.PoolConfig{})
	if err != nil {
		return "", err
	}
	defer db.Close()

	if _, err := postgres.Migrate(ctx, db); err != nil {
		return "", err
	}

	return dsn, nil
}

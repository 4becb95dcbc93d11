// Package testutils runs the integration suites against a real Postgres in a container.
package testutils

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/Black-And-White-Club/gala-night/app"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability"
	"github.com/Black-And-White-Club/gala-night/integration_tests/containers"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
)

// TestEnv is one Postgres container shared by every test in a package.
type TestEnv struct {
	Ctx       context.Context
	DB        *bun.DB
	DSN       string
	Obs       *observability.Observability
	container *postgres.PostgresContainer
}

// NewTestEnv starts Postgres and applies every migration, including the queue schema.
func NewTestEnv(ctx context.Context) (*TestEnv, error) {
	container, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, err
	}

	db := app.NewDB(dsn)
	if err := RunMigrations(ctx, db, dsn); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if os.Getenv("INTEGRATION_VERBOSE") != "" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	return &TestEnv{
		Ctx:       ctx,
		DB:        db,
		DSN:       dsn,
		Obs:       observability.NewNoop(logger),
		container: container,
	}, nil
}

// Cleanup closes the database and removes the container.
func (env *TestEnv) Cleanup() {
	if env.DB != nil {
		_ = env.DB.Close()
	}
	if env.container != nil {
		if err := env.container.Terminate(context.Background()); err != nil {
			log.Printf("failed to terminate postgres container: %v", err)
		}
	}
}

// Reset empties every domain table so each test starts from a clean database.
func (env *TestEnv) Reset(t *testing.T) {
	t.Helper()
	if err := TruncateTables(env.Ctx, env.DB); err != nil {
		t.Fatalf("failed to reset database: %v", err)
	}
}

// RunSuite is the body of each package's TestMain.
func RunSuite(m *testing.M, env **TestEnv) int {
	if !flag.Parsed() {
		flag.Parse()
	}
	if testing.Short() {
		log.Println("skipping integration tests in short mode")
		return 0
	}
	e, err := NewTestEnv(context.Background())
	if err != nil {
		// no container provider (docker) is treated like -short
		log.Printf("skipping integration tests: %v", err)
		return 0
	}
	defer e.Cleanup()
	*env = e
	return m.Run()
}

// Package testutils provides a migrated in-memory database for repository and service tests.
package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/Black-And-White-Club/gala-night/app/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"
)

// NewSQLiteDB returns a bun.DB on a private in-memory SQLite database with every
// migration applied. The database is closed when the test ends.
//
// The pool holds a single connection: code under test must run queries inside a
// transaction through the transaction handle, never the outer *bun.DB.
func NewSQLiteDB(t testing.TB) *bun.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", name, uuid.NewString()[:8])

	sqldb, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	_, err = migrations.Up(context.Background(), db)
	require.NoError(t, err, "migrations failed")

	return db
}

// Package dbtest opens throwaway migrated databases for store tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"bingo-service/internal/db"
)

// Open returns a migrated SQLite database living in t.TempDir().
func Open(t testing.TB) *db.DB {
	t.Helper()

	d, err := db.Open(context.Background(), db.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

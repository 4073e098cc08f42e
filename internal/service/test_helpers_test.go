package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/lapsekit/lapse-cli/internal/db"
	"github.com/lapsekit/lapse-cli/internal/storage"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lapse.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func newTestStore(t *testing.T) *storage.FileStore {
	t.Helper()
	return storage.NewFileStore(t.TempDir())
}

func floatPtr(v float64) *float64 {
	return &v
}

// Package testutil provides test utilities shared across packages: an
// isolated snapshot database and helpers around category tables.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/Veraticus/app-strategy/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory snapshot database. It automatically
// handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	snap := db.SeedSnapshot(table, "baseline")
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(storage.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// SeedSnapshot stores table as a snapshot and returns it.
func (db *TestDB) SeedSnapshot(table *model.Table, label string) model.Snapshot {
	db.t.Helper()
	snap, err := db.Storage.SaveSnapshot(context.Background(), table.Source(), label, table.Raw())
	if err != nil {
		db.t.Fatalf("failed to seed snapshot %q: %v", label, err)
	}
	return *snap
}

package repo

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenSQLite_CreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")

	db, err := OpenSQLite(path, false)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	// Idempotent: running migrations twice must not fail.
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate second run: %v", err)
	}

	if _, err := InsertChat(context.Background(), db, "apple", nil, "r"); err != nil {
		t.Fatalf("insert after migrate: %v", err)
	}
}

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "app.db")
	if _, err := OpenSQLite(path, false); err == nil {
		t.Fatalf("expected error for missing parent directory")
	}
}

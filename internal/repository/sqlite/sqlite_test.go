package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/msomdec/tareas/internal/domain"
	"github.com/msomdec/tareas/internal/repository/sqlite"
)

// Verify that *sqlite.DB implements domain.Store at compile time.
var _ domain.Store = (*sqlite.DB)(nil)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNew(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file was not created")
	}

	var fkEnabled int
	if err := db.SqlDB.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
		t.Fatalf("check foreign_keys: %v", err)
	}
	if fkEnabled != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fkEnabled)
	}
}

func TestMigrate_CreatesTables(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.SqlDB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash) VALUES (?, ?)",
		"test@example.com", "hash123",
	); err != nil {
		t.Fatalf("insert into users: %v", err)
	}

	if _, err := db.SqlDB.ExecContext(ctx,
		"INSERT INTO tasks (titulo, descripcion) VALUES (?, ?)",
		"A", "B",
	); err != nil {
		t.Fatalf("insert into tasks: %v", err)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate (idempotent): %v", err)
	}

	var version int64
	err := db.SqlDB.QueryRowContext(ctx,
		"SELECT MAX(version_id) FROM goose_db_version WHERE is_applied = 1",
	).Scan(&version)
	if err != nil {
		t.Fatalf("read goose version: %v", err)
	}
	if version != 2 {
		t.Fatalf("expected schema version 2, got %d", version)
	}

	var applied int
	err = db.SqlDB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM goose_db_version WHERE version_id > 0",
	).Scan(&applied)
	if err != nil {
		t.Fatalf("count goose versions: %v", err)
	}
	if applied != 2 {
		t.Fatalf("expected 2 applied migrations after two runs, got %d", applied)
	}
}

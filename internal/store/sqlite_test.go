package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *SQLiteSlots {
	t.Helper()
	slots, err := NewSQLiteSlots(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { slots.Close() })
	return slots
}

func TestLoad_AbsentKey(t *testing.T) {
	slots := setupTestDB(t)

	data, ok, err := slots.Load(context.Background(), "tasks")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Errorf("expected absent slot, got %q", data)
	}
}

func TestSaveAndLoad(t *testing.T) {
	slots := setupTestDB(t)
	ctx := context.Background()

	if err := slots.Save(ctx, "tasks", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, ok, err := slots.Load(ctx, "tasks")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("expected slot to exist")
	}
	if string(data) != `[{"id":1}]` {
		t.Errorf("expected saved value, got %q", data)
	}
}

func TestSave_OverwritesPreviousValue(t *testing.T) {
	slots := setupTestDB(t)
	ctx := context.Background()

	slots.Save(ctx, "tasks", []byte(`[]`))
	if err := slots.Save(ctx, "tasks", []byte(`[{"id":2}]`)); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	data, _, _ := slots.Load(ctx, "tasks")
	if string(data) != `[{"id":2}]` {
		t.Errorf("expected overwritten value, got %q", data)
	}

	var count int
	if err := slots.db.QueryRow(`SELECT COUNT(*) FROM slots`).Scan(&count); err != nil {
		t.Fatalf("failed to count slots: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 slot row, got %d", count)
	}
}

func TestSave_KeysAreIndependent(t *testing.T) {
	slots := setupTestDB(t)
	ctx := context.Background()

	slots.Save(ctx, "a", []byte("1"))
	slots.Save(ctx, "b", []byte("2"))

	a, _, _ := slots.Load(ctx, "a")
	b, _, _ := slots.Load(ctx, "b")
	if string(a) != "1" || string(b) != "2" {
		t.Errorf("expected a=1 b=2, got a=%q b=%q", a, b)
	}
}

func TestNewSQLiteSlots_ReopenKeepsDataAndMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tasklist.db")
	ctx := context.Background()

	first, err := NewSQLiteSlots(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := first.Save(ctx, "tasks", []byte(`["kept"]`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := NewSQLiteSlots(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	t.Cleanup(func() { second.Close() })

	data, ok, err := second.Load(ctx, "tasks")
	if err != nil || !ok {
		t.Fatalf("expected slot after reopen, ok=%v err=%v", ok, err)
	}
	if string(data) != `["kept"]` {
		t.Errorf("expected persisted value, got %q", data)
	}

	var migrationCount int
	if err := second.db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("failed to count schema migrations: %v", err)
	}
	if migrationCount != 1 {
		t.Fatalf("expected 1 applied migration, got %d", migrationCount)
	}
}

func TestRunMigrations_AppliesInVersionOrder(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	fsys := fstest.MapFS{
		"migrations/002_add_column.sql": {Data: []byte(`ALTER TABLE notes ADD COLUMN body TEXT DEFAULT '';`)},
		"migrations/001_create.sql":     {Data: []byte(`CREATE TABLE notes (id INTEGER PRIMARY KEY);`)},
		"migrations/README.md":          {Data: []byte(`ignored`)},
	}

	if err := runMigrations(db, fsys); err != nil {
		t.Fatalf("runMigrations failed: %v", err)
	}
	// Second run must be a no-op.
	if err := runMigrations(db, fsys); err != nil {
		t.Fatalf("second runMigrations failed: %v", err)
	}

	if _, err := db.Exec(`INSERT INTO notes (id, body) VALUES (1, 'x')`); err != nil {
		t.Fatalf("expected migrated schema, got: %v", err)
	}

	applied, err := appliedMigrationVersions(db)
	if err != nil {
		t.Fatalf("appliedMigrationVersions failed: %v", err)
	}
	if !applied[1] || !applied[2] || len(applied) != 2 {
		t.Errorf("expected versions 1 and 2 applied, got %v", applied)
	}
}

func TestLoadMigrations_DuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/001_one.sql": {Data: []byte(`SELECT 1;`)},
		"migrations/001_two.sql": {Data: []byte(`SELECT 2;`)},
	}

	if _, err := loadMigrations(fsys); err == nil {
		t.Fatal("expected duplicate version error")
	}
}

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		filename    string
		wantVersion int
		wantName    string
		wantErr     bool
	}{
		{filename: "001_create_slots.sql", wantVersion: 1, wantName: "create_slots"},
		{filename: "12_x.sql", wantVersion: 12, wantName: "x"},
		{filename: "create.sql", wantErr: true},
		{filename: "abc_create.sql", wantErr: true},
		{filename: "003_.sql", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			version, name, err := parseMigrationFilename(tt.filename)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if version != tt.wantVersion || name != tt.wantName {
				t.Errorf("expected %d %q, got %d %q", tt.wantVersion, tt.wantName, version, name)
			}
		})
	}
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSlots implements the Slots interface using SQLite.
type SQLiteSlots struct {
	db *sql.DB
}

// NewSQLiteSlots opens the SQLite database at dbPath and applies pending migrations.
func NewSQLiteSlots(dbPath string) (*SQLiteSlots, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db, migrationsFS); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteSlots{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteSlots) Close() error {
	return s.db.Close()
}

// Load reads the value stored under key.
func (s *SQLiteSlots) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load slot %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// Save writes the value under key, replacing any previous value.
func (s *SQLiteSlots) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(data), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save slot %q: %w", key, err)
	}
	return nil
}

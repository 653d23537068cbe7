package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/zembrodt/showtunes-sub000/internal/shared"
)

// SQLiteStorage implements [SecureStorage] on the secure_storage table.
type SQLiteStorage struct {
	db *sql.DB
}

// OpenSQLite opens the database at path and applies pending migrations.
func OpenSQLite(path string, maxOpenConns, maxIdleConns int) (*SQLiteStorage, error) {
	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, err
	}

	shared.ConfigureDatabase(db, maxOpenConns, maxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return NewSQLiteStorage(db), nil
}

// NewSQLiteStorage creates a new [SQLiteStorage] with the given, already migrated, database connection
func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

// Get retrieves the value stored under key
func (s *SQLiteStorage) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM secure_storage WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query %s: %w", key, err)
	}

	return value, nil
}

// Set inserts or replaces the value stored under key
func (s *SQLiteStorage) Set(key, value string) error {
	query := `
		INSERT INTO secure_storage (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := s.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}

	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *SQLiteStorage) Remove(key string) error {
	if _, err := s.db.Exec("DELETE FROM secure_storage WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

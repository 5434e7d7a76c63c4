package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteSlot struct {
	db *sql.DB
}

func NewSQLiteSlot(dsn string) (*SQLiteSlot, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer keeps sqlite from reporting "database is locked"
	db.SetMaxOpenConns(1)

	slot := &SQLiteSlot{db: db}
	if err := slot.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return slot, nil
}

func (s *SQLiteSlot) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS slots (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        updated_at DATETIME NOT NULL
    );
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *SQLiteSlot) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteSlot) Set(key, value string) error {
	query := `
        INSERT INTO slots (key, value, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
    `
	_, err := s.db.Exec(query, key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}

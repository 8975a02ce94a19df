package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS best_times (
    key TEXT PRIMARY KEY,
    millis REAL NOT NULL,
    updated_at INTEGER NOT NULL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

func Open(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Apply schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetBestTime(ctx context.Context, key string) (*BestTime, error) {
	var bt BestTime
	var updatedAt int64

	err := s.db.QueryRowContext(ctx,
		`SELECT key, millis, updated_at FROM best_times WHERE key = ?`, key,
	).Scan(&bt.Key, &bt.Millis, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get best time: %w", err)
	}

	bt.UpdatedAt = time.Unix(updatedAt, 0)
	return &bt, nil
}

func (s *SQLiteStore) SetBestTime(ctx context.Context, key string, millis float64) error {
	now := time.Now().Unix()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO best_times (key, millis, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET millis = excluded.millis, updated_at = excluded.updated_at`,
		key, millis, now,
	)
	if err != nil {
		return fmt.Errorf("failed to set best time: %w", err)
	}

	return nil
}

func (s *SQLiteStore) ListBestTimes(ctx context.Context) ([]*BestTime, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, millis, updated_at FROM best_times ORDER BY millis ASC, key ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list best times: %w", err)
	}
	defer rows.Close()

	var times []*BestTime
	for rows.Next() {
		var bt BestTime
		var updatedAt int64
		if err := rows.Scan(&bt.Key, &bt.Millis, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan best time: %w", err)
		}
		bt.UpdatedAt = time.Unix(updatedAt, 0)
		times = append(times, &bt)
	}

	return times, rows.Err()
}

func (s *SQLiteStore) DeleteBestTime(ctx context.Context, key string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM best_times WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete best time: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *SQLiteStore) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting: %w", err)
	}
	return value, nil
}

func (s *SQLiteStore) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}
	return nil
}

// Package storage is the SQLite remote backend. Each user key holds one
// JSON document with the full outbound collection; writes replace the
// document wholesale, matching the remote store contract.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"ledger/internal/payload"
	"ledger/internal/remote"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Write implements remote.Writer.
func (r *SQLiteRepository) Write(ctx context.Context, userKey string, rows []payload.Row) error {
	body, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	key := remote.SanitizeKey(userKey)
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO payloads (user_key, body, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_key) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at`,
		key, string(body), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write payload: %w", err)
	}

	slog.InfoContext(ctx, "Payload saved to SQLite",
		"user_key", key,
		"records", len(rows))
	return nil
}

// Read implements remote.Reader.
func (r *SQLiteRepository) Read(ctx context.Context, userKey string) ([]payload.Row, bool, error) {
	key := remote.SanitizeKey(userKey)

	var body string
	err := r.db.QueryRowContext(ctx,
		`SELECT body FROM payloads WHERE user_key = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read payload: %w", err)
	}

	var rows []payload.Row
	if err := json.Unmarshal([]byte(body), &rows); err != nil {
		return nil, false, fmt.Errorf("decode payload: %w", err)
	}
	return rows, true, nil
}

var _ remote.Backend = (*SQLiteRepository)(nil)

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

	"samiti/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the snapshot document in a single keyed row.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
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

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load implements SnapshotStore.
func (s *SQLiteStore) Load(ctx context.Context) (core.AppState, bool, error) {
	var document string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM snapshots WHERE key = ?`, core.StorageKey,
	).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return core.AppState{}, false, nil
	}
	if err != nil {
		return core.AppState{}, false, fmt.Errorf("read snapshot: %w", err)
	}

	var state core.AppState
	if err := json.Unmarshal([]byte(document), &state); err != nil {
		return core.AppState{}, false, fmt.Errorf("decode snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot loaded",
		"key", core.StorageKey,
		"years", len(state.Years),
		"members", len(state.Members))
	return state, true, nil
}

// Save implements SnapshotStore. The upsert replaces the whole document.
func (s *SQLiteStore) Save(ctx context.Context, state core.AppState) error {
	document, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, document, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET
		   document = excluded.document,
		   updated_at = CURRENT_TIMESTAMP`,
		core.StorageKey, string(document))
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	slog.DebugContext(ctx, "Snapshot saved",
		"key", core.StorageKey,
		"bytes", len(document))
	return nil
}

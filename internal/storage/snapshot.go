// Package storage persists the application state as one whole JSON document
// under a single well-known key. There is no incremental persistence: every
// save replaces the entire snapshot.
package storage

import (
	"context"

	"samiti/internal/core"
)

// SnapshotStore is the persistence gateway the session writes through.
type SnapshotStore interface {
	// Load returns the stored snapshot, or ok=false when none exists yet
	// (the caller then falls back to seed data).
	Load(ctx context.Context) (state core.AppState, ok bool, err error)

	// Save overwrites the stored snapshot with the given state. A failed
	// save leaves the in-memory session intact; callers log and continue.
	Save(ctx context.Context, state core.AppState) error
}

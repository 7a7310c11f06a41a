// Package backend selects and constructs the snapshot store from config.
package backend

import (
	"context"

	"samiti/internal/storage"
)

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result carries the constructed store and its cleanup function.
type Result struct {
	Store   storage.SnapshotStore
	Cleanup CleanupFunc
}

// Factory creates snapshot stores based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds what each backend needs to come up.
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Memory backend specific; an optional JSON snapshot to preload.
	SeedFile string
}

// BackendType names a snapshot store implementation.
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer.
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid.
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []BackendType {
	return []BackendType{MemoryBackend, SQLiteBackend}
}

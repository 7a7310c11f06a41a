package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"samiti/internal/core"
)

// MemoryStore holds the snapshot document in memory. It backs the default
// backend and tests; contents are lost when the process exits.
type MemoryStore struct {
	mu       sync.Mutex
	document []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreFromFile seeds the store from a JSON snapshot file if one
// exists; a missing or unreadable file just means an empty store.
func NewMemoryStoreFromFile(path string) *MemoryStore {
	s := &MemoryStore{}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var probe core.AppState
	if err := json.Unmarshal(raw, &probe); err != nil {
		return s
	}
	s.document = raw
	return s
}

// Load implements SnapshotStore.
func (s *MemoryStore) Load(_ context.Context) (core.AppState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.document == nil {
		return core.AppState{}, false, nil
	}
	var state core.AppState
	if err := json.Unmarshal(s.document, &state); err != nil {
		return core.AppState{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return state, true, nil
}

// Save implements SnapshotStore.
func (s *MemoryStore) Save(_ context.Context, state core.AppState) error {
	document, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = document
	return nil
}

package storage

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"samiti/internal/core"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "samiti.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreAbsentSnapshot(t *testing.T) {
	store := newTestSQLiteStore(t)
	_, ok, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("empty database must report absent snapshot")
	}
}

func TestSQLiteStoreSaveLoadRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	seed := core.Seed()
	if err := store.Save(ctx, seed); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, ok, err := store.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load after save: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(loaded, seed) {
		t.Fatalf("loaded snapshot differs from saved state")
	}
}

func TestSQLiteStoreUpsertReplacesDocument(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, core.Seed()); err != nil {
		t.Fatalf("first save: %v", err)
	}

	next := core.Seed()
	next.SelectedYear = 2026
	next.Settings.Name = "Renamed Committee"
	if err := store.Save(ctx, next); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, _, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.SelectedYear != 2026 || loaded.Settings.Name != "Renamed Committee" {
		t.Fatalf("second save must fully replace the first: %+v", loaded.SelectedYear)
	}
}

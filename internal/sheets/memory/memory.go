// Package memory is an in-process LedgerExporter used for tests and for
// running the worker without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	"samiti/internal/core"
	ports "samiti/internal/sheets"
)

type Store struct {
	mu      sync.Mutex
	ledgers map[int]core.YearRecords
	exports int
}

var _ ports.LedgerExporter = (*Store)(nil)

func New() *Store {
	return &Store{ledgers: make(map[int]core.YearRecords)}
}

// ExportLedger replaces the stored ledger for year and returns a synthetic
// reference.
func (s *Store) ExportLedger(_ context.Context, year int, records core.YearRecords) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledgers[year] = records
	s.exports++
	return fmt.Sprintf("mem:%d:%d", year, s.exports), nil
}

// Ledger returns the last exported records for year.
func (s *Store) Ledger(year int) (core.YearRecords, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, ok := s.ledgers[year]
	return records, ok
}

// Exports returns how many exports have been performed.
func (s *Store) Exports() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exports
}

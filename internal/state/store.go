// Package state owns the single in-memory AppState. Every mutation builds a
// whole new state value and swaps it in; the previous value is discarded.
// Callers never reach the state except through the store.
package state

import (
	"sort"
	"strings"
	"sync"

	"samiti/internal/core"

	"github.com/google/uuid"
)

type Store struct {
	mu    sync.Mutex
	state core.AppState
}

// NewStore creates a store owning the given initial state.
func NewStore(initial core.AppState) *Store {
	return &Store{state: initial.Clone()}
}

// Get returns a snapshot of the current state. The copy is deep, so readers
// can aggregate over it without seeing later mutations.
func (s *Store) Get() core.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Replace swaps in a whole new state value.
func (s *Store) Replace(next core.AppState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next.Clone()
}

// SetSelectedYear switches the active session. A year not present in Years
// is silently ignored and reported as unchanged.
func (s *Store) SetSelectedYear(year int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.HasYear(year) || s.state.SelectedYear == year {
		return false
	}
	next := s.state.Clone()
	next.SelectedYear = year
	s.state = next
	return true
}

// AddYear appends a new session year keeping Years sorted ascending.
// Duplicates and non-4-digit years are silently ignored.
func (s *Store) AddYear(year int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !core.ValidYear(year) || s.state.HasYear(year) {
		return false
	}
	next := s.state.Clone()
	next.Years = append(next.Years, year)
	sort.Ints(next.Years)
	s.state = next
	return true
}

// UpdateSettings replaces the club settings, covering nested contact and
// bank fields. Rules are managed through AddRule/RemoveRule and are kept
// as they are.
func (s *Store) UpdateSettings(settings core.ClubSettings) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Clone()
	settings.Rules = next.Settings.Rules
	next.Settings = settings
	s.state = next
	return true
}

// AddRule appends a trimmed rule. Blank rules are silently ignored.
func (s *Store) AddRule(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Clone()
	next.Settings.Rules = append(next.Settings.Rules, text)
	s.state = next
	return true
}

// RemoveRule deletes the rule at index, preserving the order of the rest.
// An out-of-range index is silently ignored.
func (s *Store) RemoveRule(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.state.Settings.Rules) {
		return false
	}
	next := s.state.Clone()
	next.Settings.Rules = append(next.Settings.Rules[:index], next.Settings.Rules[index+1:]...)
	s.state = next
	return true
}

// AddContribution validates and appends a chanda entry, generating an id
// when the caller did not supply one.
func (s *Store) AddContribution(c core.Contribution) (core.Contribution, error) {
	if err := c.Validate(); err != nil {
		return core.Contribution{}, err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Clone()
	next.Contributions = append(next.Contributions, c)
	s.state = next
	return c, nil
}

// AddExpense validates and appends an expense entry.
func (s *Store) AddExpense(e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Clone()
	next.Expenses = append(next.Expenses, e)
	s.state = next
	return e, nil
}

// AddBudget validates and appends a budget row. Duplicate (category, year)
// rows are not prevented, matching the model.
func (s *Store) AddBudget(b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Clone()
	next.Budgets = append(next.Budgets, b)
	s.state = next
	return b, nil
}

// AddCommitteeMember appends a roster entry.
func (s *Store) AddCommitteeMember(cm core.CommitteeMember) (core.CommitteeMember, error) {
	if err := cm.Validate(); err != nil {
		return core.CommitteeMember{}, err
	}
	if cm.ID == "" {
		cm.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Clone()
	next.Committee = append(next.Committee, cm)
	s.state = next
	return cm, nil
}

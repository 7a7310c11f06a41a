// Package services orchestrates state mutations across the in-memory store,
// the snapshot store, and AMQP.
package services

import (
	"context"
	"sync/atomic"

	"samiti/internal/core"
	"samiti/internal/log"
	"samiti/internal/state"
	"samiti/internal/storage"
)

// ChangePublisher announces committed revisions. *amqp.Client satisfies it.
type ChangePublisher interface {
	PublishStateChanged(ctx context.Context, revision int64, year int) error
}

// CommitteeService applies mutations to the live state and persists the whole
// snapshot after each successful change. Persistence failures are logged and
// swallowed: the in-memory state is the source of truth for the session and a
// later mutation retries the save with the full document anyway.
type CommitteeService struct {
	store     *state.Store
	snapshots storage.SnapshotStore
	publisher ChangePublisher
	logger    *log.Logger
	revision  atomic.Int64
}

func NewCommitteeService(store *state.Store, snapshots storage.SnapshotStore, publisher ChangePublisher, logger *log.Logger) *CommitteeService {
	return &CommitteeService{
		store:     store,
		snapshots: snapshots,
		publisher: publisher,
		logger:    logger,
	}
}

// State returns a detached snapshot of the current state.
func (s *CommitteeService) State() core.AppState {
	return s.store.Get()
}

func (s *CommitteeService) AddContribution(ctx context.Context, c core.Contribution) (core.Contribution, error) {
	added, err := s.store.AddContribution(c)
	if err != nil {
		return core.Contribution{}, err
	}
	s.commit(ctx, log.OpMutate, added.Year)
	return added, nil
}

func (s *CommitteeService) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	added, err := s.store.AddExpense(e)
	if err != nil {
		return core.Expense{}, err
	}
	s.commit(ctx, log.OpMutate, added.Year)
	return added, nil
}

func (s *CommitteeService) AddBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	added, err := s.store.AddBudget(b)
	if err != nil {
		return core.Budget{}, err
	}
	s.commit(ctx, log.OpMutate, added.Year)
	return added, nil
}

func (s *CommitteeService) AddCommitteeMember(ctx context.Context, cm core.CommitteeMember) (core.CommitteeMember, error) {
	added, err := s.store.AddCommitteeMember(cm)
	if err != nil {
		return core.CommitteeMember{}, err
	}
	s.commit(ctx, log.OpMutate, s.store.Get().SelectedYear)
	return added, nil
}

// SetSelectedYear switches the session. An unknown year is ignored.
func (s *CommitteeService) SetSelectedYear(ctx context.Context, year int) bool {
	if !s.store.SetSelectedYear(year) {
		return false
	}
	s.commit(ctx, log.OpMutate, year)
	return true
}

// AddYear opens a new session year. Invalid or duplicate years are ignored.
func (s *CommitteeService) AddYear(ctx context.Context, year int) bool {
	if !s.store.AddYear(year) {
		return false
	}
	s.commit(ctx, log.OpMutate, year)
	return true
}

// UpdateSettings replaces the club settings. Rules are managed separately and
// survive the update untouched.
func (s *CommitteeService) UpdateSettings(ctx context.Context, settings core.ClubSettings) bool {
	if !s.store.UpdateSettings(settings) {
		return false
	}
	s.commit(ctx, log.OpMutate, s.store.Get().SelectedYear)
	return true
}

// AddRule appends a club rule. Blank rules are ignored.
func (s *CommitteeService) AddRule(ctx context.Context, text string) bool {
	if !s.store.AddRule(text) {
		return false
	}
	s.commit(ctx, log.OpMutate, s.store.Get().SelectedYear)
	return true
}

// RemoveRule drops the rule at index. Out-of-range indexes are ignored.
func (s *CommitteeService) RemoveRule(ctx context.Context, index int) bool {
	if !s.store.RemoveRule(index) {
		return false
	}
	s.commit(ctx, log.OpMutate, s.store.Get().SelectedYear)
	return true
}

// Revision returns the number of committed mutations this process has seen.
func (s *CommitteeService) Revision() int64 {
	return s.revision.Load()
}

// commit persists the whole snapshot and announces the new revision. Neither
// step can fail the mutation that triggered it.
func (s *CommitteeService) commit(ctx context.Context, op string, year int) {
	revision := s.revision.Add(1)
	snapshot := s.store.Get()

	if s.snapshots != nil {
		if err := s.snapshots.Save(ctx, snapshot); err != nil {
			s.logger.WarnContext(ctx, "snapshot save failed, state kept in memory",
				log.FieldOperation, op,
				log.FieldRevision, revision,
				log.FieldError, err)
		}
	}

	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishStateChanged(ctx, revision, year); err != nil {
		s.logger.WarnContext(ctx, "state change publish failed",
			log.FieldRevision, revision,
			log.FieldYear, year,
			log.FieldError, err)
	}
}

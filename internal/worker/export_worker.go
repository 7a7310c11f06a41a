// Package worker mirrors committed snapshots into the external ledger.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"samiti/internal/amqp"
	"samiti/internal/core"
	"samiti/internal/log"
	"samiti/internal/sheets"
	"samiti/internal/storage"
)

// ExportWorker reacts to state change messages by reloading the snapshot and
// exporting the changed year's ledger. A periodic reconciliation export covers
// messages lost while the worker was down.
type ExportWorker struct {
	snapshots storage.SnapshotStore
	exporter  sheets.LedgerExporter
	logger    *log.Logger

	mu           sync.Mutex
	lastRevision int64
}

func NewExportWorker(snapshots storage.SnapshotStore, exporter sheets.LedgerExporter, logger *log.Logger) *ExportWorker {
	return &ExportWorker{
		snapshots: snapshots,
		exporter:  exporter,
		logger:    logger,
	}
}

// HandleStateChanged processes one message from the queue. Messages older
// than the last exported revision are acknowledged without exporting.
func (w *ExportWorker) HandleStateChanged(ctx context.Context, msg *amqp.StateChangedMessage) error {
	w.mu.Lock()
	stale := msg.Revision != 0 && msg.Revision <= w.lastRevision
	w.mu.Unlock()
	if stale {
		w.logger.DebugContext(ctx, "skipping stale revision",
			log.FieldRevision, msg.Revision)
		return nil
	}

	if err := w.exportYear(ctx, msg.Year); err != nil {
		return err
	}

	w.mu.Lock()
	if msg.Revision > w.lastRevision {
		w.lastRevision = msg.Revision
	}
	w.mu.Unlock()
	return nil
}

// ReconcileAll exports the ledger of every known session year. Called at
// startup and on a timer so the spreadsheet converges even when individual
// messages were lost.
func (w *ExportWorker) ReconcileAll(ctx context.Context) error {
	snapshot, ok, err := w.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if !ok {
		w.logger.InfoContext(ctx, "no snapshot yet, nothing to export")
		return nil
	}

	for _, year := range snapshot.Years {
		if err := w.exportRecords(ctx, year, core.FilterYear(snapshot, year)); err != nil {
			w.logger.ErrorContext(ctx, "reconcile export failed",
				log.FieldYear, year,
				log.FieldError, err)
			// keep going, one bad year must not block the others
		}
	}
	return nil
}

// RunPeriodic reconciles on the given interval until ctx is cancelled.
func (w *ExportWorker) RunPeriodic(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.ReconcileAll(ctx); err != nil {
				w.logger.ErrorContext(ctx, "periodic reconcile failed",
					log.FieldError, err)
			}
		}
	}
}

func (w *ExportWorker) exportYear(ctx context.Context, year int) error {
	snapshot, ok, err := w.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if !ok {
		return fmt.Errorf("snapshot missing for year %d", year)
	}
	return w.exportRecords(ctx, year, core.FilterYear(snapshot, year))
}

func (w *ExportWorker) exportRecords(ctx context.Context, year int, records core.YearRecords) error {
	ref, err := w.exporter.ExportLedger(ctx, year, records)
	if err != nil {
		return fmt.Errorf("export ledger for %d: %w", year, err)
	}
	w.logger.InfoContext(ctx, "ledger exported",
		log.FieldOperation, log.OpExport,
		log.FieldYear, year,
		log.FieldSheetsRef, ref)
	return nil
}

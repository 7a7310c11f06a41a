package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"samiti/internal/amqp"
	"samiti/internal/config"
	"samiti/internal/log"
	"samiti/internal/sheets"
	gsheet "samiti/internal/sheets/google"
	memsheets "samiti/internal/sheets/memory"
	"samiti/internal/storage"
	"samiti/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.ParseLevel(cfg.LogLevel), log.ComponentWorker)
	log.SetDefault(logger)

	logger.Info("starting samiti-worker", log.FieldOperation, log.OpStartup)

	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	// The worker reads snapshots the server writes, so it always uses the
	// shared SQLite file regardless of the server's configured backend.
	snapshots, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("failed to open snapshot store",
			log.FieldError, err,
			"path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer snapshots.Close()

	// Ledger exporter: Google Sheets when configured, in-memory otherwise so
	// the worker can still run locally.
	var exporter sheets.LedgerExporter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		exporter = client
		logger.Info("Google Sheets exporter initialized",
			"spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		exporter = memsheets.New()
		logger.Info("Google Sheets disabled - exporting to memory only")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exportWorker := worker.NewExportWorker(snapshots, exporter, logger)

	// Export everything once on startup to cover messages missed while down.
	if err := exportWorker.ReconcileAll(ctx); err != nil {
		logger.Error("startup reconcile failed", log.FieldError, err)
		// keep running, the periodic pass will retry
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return amqpClient.ConsumeStateChanged(groupCtx, func(msg *amqp.StateChangedMessage) error {
			return exportWorker.HandleStateChanged(groupCtx, msg)
		})
	})

	group.Go(func() error {
		return exportWorker.RunPeriodic(groupCtx, cfg.ExportInterval)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("worker shutdown complete", log.FieldOperation, log.OpShutdown)
}

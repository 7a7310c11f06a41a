package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"samiti/internal/amqp"
	"samiti/internal/auth"
	"samiti/internal/backend"
	"samiti/internal/config"
	"samiti/internal/core"
	apphttp "samiti/internal/http"
	"samiti/internal/log"
	"samiti/internal/services"
	"samiti/internal/state"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.ParseLevel(cfg.LogLevel), log.ComponentApp)
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Snapshot backend
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("backend configuration failed", log.FieldError, err)
		os.Exit(1)
	}
	factory := backend.NewFactory(logger.WithComponent(log.ComponentBackend))
	result, err := factory.CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("backend initialization failed",
			log.FieldBackend, cfg.DataBackend,
			log.FieldError, err)
		os.Exit(1)
	}
	defer result.Cleanup()

	// Load the last snapshot, falling back to the seed state.
	initial, found, err := result.Store.Load(ctx)
	if err != nil {
		logger.Error("snapshot load failed", log.FieldOperation, log.OpLoad, log.FieldError, err)
		os.Exit(1)
	}
	if !found {
		initial = core.Seed()
		logger.Info("no snapshot found, starting from seed state",
			log.FieldOperation, log.OpLoad)
	} else {
		logger.Info("snapshot loaded",
			log.FieldOperation, log.OpLoad,
			log.FieldYear, initial.SelectedYear)
	}

	// Optional AMQP publisher for the export worker.
	var publisher services.ChangePublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("AMQP initialization failed", log.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP change events enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	store := state.NewStore(initial)
	service := services.NewCommitteeService(store, result.Store, publisher,
		logger.WithComponent(log.ComponentService))
	gate := auth.NewGate(auth.StaticSecret(cfg.AdminSecret))

	srv := apphttp.NewServer(":"+cfg.Port, service, gate,
		logger.WithComponent(log.ComponentHTTP))
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received",
			log.FieldOperation, log.OpShutdown,
			"signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("starting samiti server",
		log.FieldOperation, log.OpStartup,
		"port", cfg.Port,
		log.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("server stopped gracefully", log.FieldOperation, log.OpShutdown)
}

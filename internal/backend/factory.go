package backend

import (
	"context"
	"fmt"

	"samiti/internal/config"
	"samiti/internal/log"
	"samiti/internal/storage"
)

// FromAppConfig converts application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:         backendType,
		SQLiteDBPath: appConfig.SQLiteDBPath,
		SeedFile:     appConfig.SeedFile,
	}, nil
}

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) Factory {
	return &DefaultFactory{logger: logger}
}

// CreateBackend builds the snapshot store named by config.Type.
func (f *DefaultFactory) CreateBackend(_ context.Context, config Config) (*Result, error) {
	switch config.Type {
	case SQLiteBackend:
		return f.createSQLite(config)
	case MemoryBackend:
		return f.createMemory(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLite(config Config) (*Result, error) {
	store, err := storage.NewSQLiteStore(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite store: %w", err)
	}

	f.logger.Info("sqlite backend ready",
		log.FieldBackend, SQLiteBackend.String(),
		"db_path", config.SQLiteDBPath)

	return &Result{
		Store:   store,
		Cleanup: store.Close,
	}, nil
}

func (f *DefaultFactory) createMemory(config Config) (*Result, error) {
	var store *storage.MemoryStore
	if config.SeedFile != "" {
		store = storage.NewMemoryStoreFromFile(config.SeedFile)
	} else {
		store = storage.NewMemoryStore()
	}

	f.logger.Info("memory backend ready",
		log.FieldBackend, MemoryBackend.String(),
		"seed_file", config.SeedFile)

	return &Result{
		Store:   store,
		Cleanup: func() error { return nil },
	}, nil
}

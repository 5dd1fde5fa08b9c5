package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/fnstats/internal/services/auth"
	"github.com/mcoot/fnstats/internal/storage"
	"github.com/mcoot/fnstats/internal/storage/memory"
	redisstorage "github.com/mcoot/fnstats/internal/storage/redis"
	"github.com/mcoot/fnstats/internal/storage/sqldb"
)

// Storage type constants
const (
	StorageTypeSQL    = "sql"
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// Services
	AuthService *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds the API key; required
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("sql", "memory" or "redis")
	// If empty, defaults to "sql"
	StorageType string
	// SQLConfig holds database settings (required if StorageType is "sql")
	SQLConfig *sqldb.Config
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	app, err := newWithDependencies(store, cfg.AuthConfig)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return app, nil
}

func newStorage(ctx context.Context, cfg Config, logger *slog.Logger) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeSQL
	}

	switch storageType {
	case StorageTypeSQL:
		if cfg.SQLConfig == nil {
			return nil, errors.New("SQLConfig required when StorageType is sql")
		}
		store, err := sqldb.New(ctx, *cfg.SQLConfig, logger)
		if err != nil {
			return nil, fmt.Errorf("open sql storage: %w", err)
		}
		return store, nil
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		store, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'sql', 'memory' or 'redis'", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, authCfg auth.Config) (*App, error) {
	authService, err := auth.New(store, authCfg)
	if err != nil {
		return nil, err
	}

	return &App{
		Storage:     store,
		AuthService: authService,
	}, nil
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}

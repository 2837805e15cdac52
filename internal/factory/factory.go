// Package factory wires application components together.
package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/nlebedev/chardraft/internal/broadcast"
	"github.com/nlebedev/chardraft/internal/config"
	"github.com/nlebedev/chardraft/internal/dependencies/clock"
	"github.com/nlebedev/chardraft/internal/dependencies/random"
	"github.com/nlebedev/chardraft/internal/draft"
	"github.com/nlebedev/chardraft/internal/drafts"
	"github.com/nlebedev/chardraft/internal/storage"
	"github.com/nlebedev/chardraft/internal/storage/memory"
	redisstorage "github.com/nlebedev/chardraft/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Engine      *draft.Engine
	Drafts      *drafts.Service
	Broadcaster broadcast.Broadcaster

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired.
//
// With Redis storage, roster updates are relayed through Redis pub/sub
// so sessions on different server instances see each other; with
// in-memory storage they flow through an in-process hub.
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var (
		store       storage.Store
		broadcaster broadcast.Broadcaster
		closers     []io.Closer
	)

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageTypeMemory
	}

	switch storageType {
	case config.StorageTypeMemory:
		store = memory.New()
		hub := broadcast.NewHub(logger)
		broadcaster = hub
		closers = append(closers, hub)
	case config.StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
		broadcaster = broadcast.NewRedis(redisStore.Client(), logger)
		closers = append(closers, redisStore)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	return &App{
		Store:       store,
		Clock:       clk,
		Random:      rnd,
		Engine:      draft.NewEngine(rnd),
		Drafts:      drafts.New(store, clk, logger),
		Broadcaster: broadcaster,
		closers:     closers,
	}, nil
}

// Close releases resources held by the application
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

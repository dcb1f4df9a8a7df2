package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lularocha/glossary-builder/internal/adapter/cache"
	"github.com/lularocha/glossary-builder/internal/adapter/memstore"
	"github.com/lularocha/glossary-builder/internal/adapter/postgres"
	"github.com/lularocha/glossary-builder/internal/adapter/postgres/snapshot"
	"github.com/lularocha/glossary-builder/internal/adapter/provider/anthropic"
	"github.com/lularocha/glossary-builder/internal/adapter/provider/gemini"
	"github.com/lularocha/glossary-builder/internal/config"
	"github.com/lularocha/glossary-builder/internal/domain"
	"github.com/lularocha/glossary-builder/internal/provider"
	"github.com/lularocha/glossary-builder/internal/service/glossary"
	"github.com/lularocha/glossary-builder/internal/transport/rest"
	"github.com/lularocha/glossary-builder/migrations"
)

type completer interface {
	Complete(ctx context.Context, req provider.CompletionRequest) (string, error)
}

// snapshotStore is the union of what the session service and the cleanup
// command need from a store.
type snapshotStore interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*domain.Snapshot, error)
	Put(ctx context.Context, snap domain.Snapshot) error
	Delete(ctx context.Context, sessionID uuid.UUID) error
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}

type expansionCache interface {
	Get(ctx context.Context, key string) (*domain.ExpandedContent, bool, error)
	Set(ctx context.Context, key string, content domain.ExpandedContent) error
}

// NewGlossaryService builds the glossary service on the configured model
// provider.
func NewGlossaryService(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*glossary.Service, error) {
	model, err := newModelClient(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return glossary.NewService(logger, model, cfg), nil
}

func newModelClient(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (completer, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		p, err := gemini.NewProvider(ctx, gemini.Options{
			APIKey:  cfg.GeminiAPIKey,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.RequestTimeout,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("create gemini provider: %w", err)
		}
		return p, nil
	default:
		retries := cfg.MaxRetries
		return anthropic.NewProvider(anthropic.Options{
			APIKey:     cfg.AnthropicAPIKey,
			BaseURL:    cfg.BaseURL,
			Timeout:    cfg.RequestTimeout,
			MaxRetries: &retries,
		}, logger), nil
	}
}

// openSnapshotStore returns the Postgres store when a DSN is configured and
// the in-memory store otherwise. The returned checks feed /ready.
func openSnapshotStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (snapshotStore, []rest.Check, func(), error) {
	if cfg.Database.DSN == "" {
		logger.Warn("no database configured, snapshots are kept in memory")
		return memstore.NewSnapshotStore(), nil, func() {}, nil
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS, logger); err != nil {
			return nil, nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	store := snapshot.New(pool, cfg.Session.Namespace)
	return store, []rest.Check{{Name: "database", Pinger: pool}}, pool.Close, nil
}

// openCache returns the Redis cache when an address is configured and the
// in-memory cache otherwise.
func openCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (expansionCache, []rest.Check, func(), error) {
	if cfg.Cache.Addr == "" {
		return cache.NewMemory(cfg.Cache.TTL, cache.DefaultMemoryEntries), nil, func() {}, nil
	}

	client, err := cache.NewRedisClient(ctx, cfg.Cache)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info("expansion cache connected", slog.String("addr", cfg.Cache.Addr))

	c := cache.NewRedis(client, cfg.Session.Namespace+":", cfg.Cache.TTL)
	closeFn := func() { _ = client.Close() }
	return c, []rest.Check{{Name: "cache", Pinger: c}}, closeFn, nil
}

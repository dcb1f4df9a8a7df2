package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lularocha/glossary-builder/internal/adapter/postgres"
	"github.com/lularocha/glossary-builder/internal/config"
	"github.com/lularocha/glossary-builder/internal/service/session"
	"github.com/lularocha/glossary-builder/migrations"
)

// ErrNoDatabase is returned by maintenance commands that need Postgres.
var ErrNoDatabase = errors.New("database.dsn is not configured")

// Migrate applies pending migrations to the configured database.
func Migrate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Database.DSN == "" {
		return ErrNoDatabase
	}
	return postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS, logger)
}

// Cleanup deletes snapshots not saved within olderThan. With dryRun it only
// reports the cutoff.
func Cleanup(ctx context.Context, cfg *config.Config, logger *slog.Logger, olderThan time.Duration, dryRun bool) (int64, error) {
	if cfg.Database.DSN == "" {
		return 0, ErrNoDatabase
	}

	if dryRun {
		logger.Info("dry run, nothing deleted", slog.Time("cutoff", time.Now().UTC().Add(-olderThan)))
		return 0, nil
	}

	store, _, closeStore, err := openSnapshotStore(ctx, cfg, logger)
	if err != nil {
		return 0, err
	}
	defer closeStore()

	return session.NewService(logger, store).PurgeStale(ctx, olderThan)
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/lularocha/glossary-builder/internal/auth"
	"github.com/lularocha/glossary-builder/internal/config"
	"github.com/lularocha/glossary-builder/internal/metrics"
	"github.com/lularocha/glossary-builder/internal/service/export"
	"github.com/lularocha/glossary-builder/internal/service/session"
	"github.com/lularocha/glossary-builder/internal/transport/middleware"
	"github.com/lularocha/glossary-builder/internal/transport/rest"
)

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// down gracefully within cfg.Server.ShutdownTimeout.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("llm_provider", cfg.LLM.Provider),
	)

	store, storeChecks, closeStore, err := openSnapshotStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	expCache, cacheChecks, closeCache, err := openCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	glossarySvc, err := NewGlossaryService(ctx, cfg.LLM, logger)
	if err != nil {
		return err
	}

	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		recorder = metrics.New()
		glossarySvc.SetMetrics(recorder)
	}

	tokens := auth.NewJWTManager(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.TTL)
	exporter := export.NewService()

	glossaryHandler := rest.NewGlossaryHandler(glossarySvc, expCache, cfg.Server.MaxBodyBytes, logger)
	if recorder != nil {
		glossaryHandler.SetMetrics(recorder)
	}

	limiter := middleware.NewRateLimiter(5 * time.Minute)
	defer limiter.Stop()

	handler := rest.NewRouter(rest.RouterDeps{
		Config:      *cfg,
		Logger:      logger,
		Tokens:      tokens,
		Glossary:    glossaryHandler,
		Session:     rest.NewSessionHandler(tokens, session.NewService(logger, store), glossaryHandler, exporter, logger),
		Export:      rest.NewExportHandler(exporter, cfg.Server.MaxBodyBytes, logger),
		Health:      rest.NewHealthHandler(Version, append(storeChecks, cacheChecks...)...),
		RateLimiter: limiter,
		Metrics:     recorder,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

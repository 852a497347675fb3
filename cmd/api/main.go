package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ezra/internal/api"
	"ezra/internal/config"
	"ezra/internal/pipeline"
	"ezra/internal/providers"
	"ezra/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	log, closeLog := config.SetupLogger(cfg.LogFile, slog.LevelInfo)
	defer func() { _ = closeLog() }()

	if err := run(cfg, log); err != nil {
		log.Error("fatal", "error", err)
		_ = closeLog()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	docs, reports, cleanup, err := buildStores(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	provider, err := providers.New(cfg)
	if err != nil {
		if errors.Is(err, providers.ErrMissingAPIKey) {
			return fmt.Errorf("ANTHROPIC_API_KEY is not set: %w", err)
		}
		return err
	}

	pipe := pipeline.New(docs, reports, provider, log, cfg)
	srv := &http.Server{
		Addr:    cfg.APIAddr,
		Handler: api.NewServer(cfg, docs, reports, pipe, log).Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("ezra api listening", "addr", cfg.APIAddr, "store", cfg.StoreBackend, "provider", cfg.LLMProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("http shutdown", "error", err)
	}

	// In-flight generations finish before the process exits; their results
	// land in the store and on disk even though nobody is polling anymore.
	pipe.Wait()
	return nil
}

func buildStores(cfg config.Config) (storage.DocumentStore, storage.ReportStore, func(), error) {
	switch cfg.StoreBackend {
	case "memory":
		return storage.NewMemoryDocumentStore(), storage.NewMemoryReportStore(cfg.MaxStoredReports), func() {}, nil
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		db, err := storage.NewDB(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return storage.NewPostgresDocumentStore(db), storage.NewPostgresReportStore(db), db.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clipforge/clipforge-engine/internal/api"
	"github.com/clipforge/clipforge-engine/internal/config"
	"github.com/clipforge/clipforge-engine/internal/jobs"
	"github.com/clipforge/clipforge-engine/internal/logging"
	"github.com/clipforge/clipforge-engine/internal/media"
	"github.com/clipforge/clipforge-engine/internal/processing"
	"github.com/clipforge/clipforge-engine/internal/session"
	"github.com/clipforge/clipforge-engine/internal/storage"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func run() error {
	startTime := time.Now()

	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel())
	logger.Info("starting clipforge engine",
		"version", config.Version,
		"port", cfg.Port(),
		"offline", cfg.Offline(),
	)

	var proc processing.Service
	var store storage.Service
	if !cfg.Offline() && cfg.ProcessorBaseURL() != "" {
		proc = processing.NewHTTPService(cfg.ProcessorBaseURL(), cfg.ProcessorToken(), logging.WithComponent(logger, "processing"))
		logger.Info("processing service configured", "base_url", cfg.ProcessorBaseURL())
	} else {
		proc = processing.NewStubService(logging.WithComponent(logger, "processing"))
		logger.Warn("processing service not configured, using in-process stub")
	}
	if !cfg.Offline() && cfg.StorageBaseURL() != "" {
		store = storage.NewHTTPService(cfg.StorageBaseURL(), cfg.StorageToken(), logging.WithComponent(logger, "storage"))
		logger.Info("storage service configured", "base_url", cfg.StorageBaseURL())
	} else {
		store = storage.NewStubService(logging.WithComponent(logger, "storage"))
		logger.Warn("storage service not configured, using in-process stub")
	}

	library := media.NewLibrary()
	orch := jobs.NewOrchestrator(proc, logging.WithComponent(logger, "jobs"))
	sess := session.New(library, orch, cfg.OutputFormat(), logging.WithComponent(logger, "session"))

	server := api.NewServer(api.ServerConfig{
		Port:         cfg.Port(),
		AuthToken:    cfg.AuthToken(),
		Version:      config.Version,
		Session:      sess,
		Orchestrator: orch,
		Storage:      store,
		Logger:       logging.WithComponent(logger, "api"),
		StartTime:    startTime,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Start()
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}

		// Session teardown: stop all job polling deterministically. The
		// remote jobs keep running; we just stop asking about them.
		orch.Close()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("engine stopped")
	return nil
}

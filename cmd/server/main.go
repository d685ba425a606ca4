package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ytdl-ng/ytdl-web/internal/app"
	"github.com/ytdl-ng/ytdl-web/internal/catalog"
	"github.com/ytdl-ng/ytdl-web/internal/config"
	"github.com/ytdl-ng/ytdl-web/internal/constants"
	"github.com/ytdl-ng/ytdl-web/internal/downloader"
	httpapp "github.com/ytdl-ng/ytdl-web/internal/http"
	"github.com/ytdl-ng/ytdl-web/internal/httpclient"
	"github.com/ytdl-ng/ytdl-web/internal/logger"
	"github.com/ytdl-ng/ytdl-web/internal/runner"
	"github.com/ytdl-ng/ytdl-web/internal/store"
	"github.com/ytdl-ng/ytdl-web/internal/tokenserver"
)

func main() {
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize Logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	for _, warning := range cfg.Warnings {
		appLogger.Warn(warning)
	}

	// Initialize DB (profile cache only; jobs live in memory)
	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if n, err := db.PurgeExpiredCache(context.Background()); err != nil {
		appLogger.Warn("Failed to purge cache", "error", err)
	} else if n > 0 {
		appLogger.Info("Purged expired cache entries", "count", n)
	}

	tool := runner.Tool{
		Command: cfg.Tool,
		Args:    cfg.ToolArgs,
		WorkDir: cfg.WorkDir,
	}
	exec := runner.NewExec()

	// Initialize Worker
	jobStore := store.NewMemoryJobStore()
	w := downloader.NewWorker(jobStore, exec, tool, appLogger)

	// Initialize Services
	jobService := app.NewJobService(jobStore, w, cfg.DefaultProfile, appLogger)
	profiles := catalog.NewCachedProvider(catalog.NewToolProvider(exec, tool), db, cfg.ProfileCacheTTL, appLogger)

	// Start token server (best effort)
	tokenServer := tokenserver.New(tokenserver.Config{
		Command: cfg.TokenServerCmd,
		Args:    []string{cfg.TokenServerScript},
		Dir:     cfg.WorkDir,
		BaseURL: cfg.TokenServerURL,
	}, httpclient.NewClient(nil, 0), appLogger)
	if _, err := tokenServer.Start(); err != nil {
		appLogger.Warn("Failed to start token server", "error", err)
	}

	// Routes
	h := httpapp.NewHandler(jobService, profiles, tokenServer, appLogger)
	h.ToolCommand = cfg.Tool
	h.BroadcastInterval = cfg.BroadcastInterval

	// Start Server
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: httpapp.NewRouter(h),
	}

	go func() {
		appLogger.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
	}

	if err := w.Wait(ctx); err != nil {
		appLogger.Warn("Abandoning running downloads", "error", err)
	}

	if err := tokenServer.Stop(); err != nil {
		appLogger.Warn("Failed to stop token server", "error", err)
	}

	appLogger.Info("Server exiting")
}

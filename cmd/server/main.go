package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/ddport/internal/config"
	"github.com/JonMunkholm/ddport/internal/core"
	"github.com/JonMunkholm/ddport/internal/logging"
	"github.com/JonMunkholm/ddport/internal/tiktok" // Registers the TikTok platform
	"github.com/JonMunkholm/ddport/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
		"session_ttl", cfg.Session.TTL,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	service, err := core.NewService(core.ServiceConfig{
		UploadDir:            cfg.Upload.Dir,
		MaxFileSize:          cfg.Upload.MaxFileSize,
		MaxConcurrentUploads: cfg.Upload.MaxConcurrent,
		MaxUploadWait:        cfg.Upload.MaxWaitTime,
		SessionTTL:           cfg.Session.TTL,
		Logger:               slog.Default(),
	})
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	for _, p := range core.Platforms() {
		slog.Info("platform registered", "key", p.Key, "tables", len(p.Tables))
	}

	server := web.NewServer(service, cfg, web.WithDefaultPlatform(tiktok.Key))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go service.StartSessionReaper(ctx, cfg.Session.ReapInterval)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
		return
	case <-ctx.Done():
	}

	slog.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}

	// Wait for archives still being validated to finish
	if status := service.UploadStatus(); status.Active > 0 {
		slog.Info("waiting for uploads to complete", "active", status.Active)
	}
	if err := service.Shutdown(shutdownCtx); err != nil {
		slog.Warn("uploads did not complete in time", "error", err)
	}

	slog.Info("server stopped")
}

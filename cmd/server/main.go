package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bingo-service/internal/app"
	"bingo-service/internal/config"
	"bingo-service/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet; the nop default would swallow this
		logger.Init(logger.Config{Env: "dev", Level: "info"})
		logger.Fatal("invalid configuration", map[string]any{
			"error": err,
		})
	}

	logger.Init(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel})
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize app", map[string]any{
			"error": err,
		})
	}

	go func() {
		if err := application.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", map[string]any{
				"error": err,
			})
		}
	}()

	logger.Info("bingo-service started", map[string]any{
		"port": cfg.AppPort,
		"env":  cfg.AppEnv,
	})

	<-ctx.Done() // wait for Ctrl+C

	logger.Info("shutdown signal received", nil)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", map[string]any{
			"error": err,
		})
	}

	logger.Info("bingo-service stopped cleanly", nil)
}

package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bingo-service/internal/config"
	"bingo-service/internal/logger"
)

type App struct {
	httpServer *http.Server
	cleanup    func() error
}

// New builds infrastructure and the router. Nothing listens until Run.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	router, cleanup, err := setupHTTP(ctx, cfg)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &App{
		httpServer: server,
		cleanup:    cleanup,
	}, nil
}

func (a *App) Run() error {
	logger.Info("http server listening", map[string]any{
		"addr": a.httpServer.Addr,
	})
	return a.httpServer.ListenAndServe()
}

// Shutdown drains the server, then releases infrastructure even if draining
// timed out.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.httpServer.Shutdown(ctx)
	if a.cleanup != nil {
		err = errors.Join(err, a.cleanup())
	}
	return err
}

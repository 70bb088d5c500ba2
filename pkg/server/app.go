// Package server owns the application lifecycle: start the HTTP server and
// the background refresher, wait for a signal, shut down gracefully.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"StockDash/pkg/cache"
	"StockDash/pkg/config"
	xhttp "StockDash/pkg/http"
	"StockDash/pkg/logger"
)

// Refresher is a background job with a start/stop lifecycle.
type Refresher interface {
	Start() error
	Stop()
}

// App ties the long-running components together.
type App struct {
	cfg       *config.Config
	log       *logger.Logger
	server    *xhttp.Server
	refresher Refresher
	cache     cache.Service
}

// NewApp creates the application.
func NewApp(
	cfg *config.Config,
	log *logger.Logger,
	srv *xhttp.Server,
	refresher Refresher,
	cacheService cache.Service,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		server:    srv,
		refresher: refresher,
		cache:     cacheService,
	}
}

// Run starts everything and blocks until SIGINT/SIGTERM, then shuts down
// in reverse start order.
func (a *App) Run() error {
	a.log.Info("starting",
		logger.String("environment", a.cfg.Environment),
		logger.Int("port", a.cfg.Server.Port))

	if err := a.server.Start(); err != nil {
		return fmt.Errorf("start http server: %w", err)
	}

	if err := a.refresher.Start(); err != nil {
		return fmt.Errorf("start refresher: %w", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	a.log.Info("shutting down", logger.String("signal", sig.String()))

	a.refresher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(ctx); err != nil {
		a.log.Error("http shutdown failed", logger.Error(err))
	}

	if err := a.cache.Close(); err != nil {
		a.log.Error("cache close failed", logger.Error(err))
	}

	a.log.Info("stopped")
	return nil
}

package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"StockDash/internal/domain/models"
	"StockDash/pkg/config"
	"StockDash/pkg/logger"
)

// Refresher re-fetches the configured symbols on a fixed schedule so the
// cache stays warm and interactive requests rarely hit the upstream.
// Requests are never blocked by a refresh cycle.
type Refresher struct {
	dashboard *Dashboard
	log       *logger.Logger
	cfg       *config.Config

	cron    *cron.Cron
	running atomic.Bool
}

// NewRefresher creates a background refresher over the dashboard use case.
func NewRefresher(dashboard *Dashboard, log *logger.Logger, cfg *config.Config) *Refresher {
	return &Refresher{
		dashboard: dashboard,
		log:       log,
		cfg:       cfg,
		cron:      cron.New(),
	}
}

// Start schedules the refresh loop. Overlapping cycles are skipped rather
// than queued; a slow upstream must not stack fetches.
func (r *Refresher) Start() error {
	spec := fmt.Sprintf("@every %s", r.cfg.Dashboard.RefreshInterval)
	_, err := r.cron.AddFunc(spec, func() {
		if !r.running.CompareAndSwap(false, true) {
			r.log.Warn("refresh cycle still running, skipping")
			return
		}
		defer r.running.Store(false)
		r.refreshAll()
	})
	if err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}

	r.cron.Start()
	r.log.Info("refresher started",
		logger.Duration("interval", r.cfg.Dashboard.RefreshInterval),
		logger.Int("symbols", len(r.cfg.Dashboard.Symbols)))
	return nil
}

// Stop halts the schedule and waits for a running cycle to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.log.Info("refresher stopped")
}

func (r *Refresher) refreshAll() {
	interval := models.Interval(r.cfg.Dashboard.DefaultInterval)

	for _, symbol := range r.cfg.Dashboard.Symbols {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := r.dashboard.WarmSeries(ctx, symbol, interval)
		cancel()
		if err != nil {
			// Keep going; one bad symbol must not starve the rest.
			r.log.Warn("refresh failed",
				logger.String("symbol", symbol),
				logger.Error(err))
			continue
		}
		r.log.Debug("refreshed series", logger.String("symbol", symbol))
	}
}

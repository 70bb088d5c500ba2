package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockDash/internal/domain/models"
	"StockDash/pkg/config"
	"StockDash/pkg/logger"
)

func TestWarmSeriesPopulatesCache(t *testing.T) {
	u := &upstream{}
	d := newTestDashboard(t, u)

	require.NoError(t, d.WarmSeries(context.Background(), "AAPL", models.IntervalDaily))
	require.Equal(t, int64(1), u.seriesHits.Load())

	// A dashboard request right after warming must not refetch.
	_, err := d.GetDashboard(context.Background(), &models.DashboardRequest{Symbol: "AAPL", Interval: "daily"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.seriesHits.Load())
}

func TestRefresherStartStop(t *testing.T) {
	u := &upstream{}
	d := newTestDashboard(t, u)

	cfg := &config.Config{}
	cfg.Dashboard.Symbols = []string{"AAPL"}
	cfg.Dashboard.DefaultInterval = "daily"
	cfg.Dashboard.RefreshInterval = time.Hour

	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	r := NewRefresher(d, log, cfg)
	require.NoError(t, r.Start())
	r.Stop()
}

func TestRefreshAllWarmsConfiguredSymbols(t *testing.T) {
	u := &upstream{}
	d := newTestDashboard(t, u)

	cfg := &config.Config{}
	cfg.Dashboard.Symbols = []string{"AAPL"}
	cfg.Dashboard.DefaultInterval = "daily"
	cfg.Dashboard.RefreshInterval = time.Hour

	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	r := NewRefresher(d, log, cfg)
	r.refreshAll()
	assert.Equal(t, int64(1), u.seriesHits.Load())
}

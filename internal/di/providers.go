package di

import (
	"fmt"

	"github.com/google/wire"

	"StockDash/internal/handler/api"
	"StockDash/internal/service/alphavantage"
	"StockDash/internal/service/github"
	"StockDash/internal/usecase"
	"StockDash/pkg/cache"
	"StockDash/pkg/config"
	xhttp "StockDash/pkg/http"
	"StockDash/pkg/logger"
	"StockDash/pkg/metrics"
	"StockDash/pkg/server"
)

// ProviderSet wires the whole application graph.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideCache,
	ProvideMetrics,
	ProvideAlphaVantage,
	ProvideGitHub,
	usecase.NewDashboard,
	usecase.NewRefresher,
	api.NewDashboardHandler,
	ProvideServer,
	ProvideApp,
)

// ProvideLogger builds the structured logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideCache builds the cache: layered memory+Redis when Redis is
// enabled, in-memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize),
		), nil
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("init redis cache: %w", err)
	}

	return cache.NewLayeredCache(redisCache,
		cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize),
	), nil
}

// ProvideMetrics builds the Prometheus recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideAlphaVantage builds the Alpha Vantage client with its own HTTP
// client and timeout.
func ProvideAlphaVantage(cfg *config.Config) *alphavantage.Client {
	httpClient := xhttp.NewClient(xhttp.WithTimeout(cfg.AlphaVantage.Timeout))
	return alphavantage.New(httpClient, cfg.AlphaVantage.BaseURL, cfg.AlphaVantage.APIKey)
}

// ProvideGitHub builds the GitHub client.
func ProvideGitHub(cfg *config.Config) *github.Client {
	httpClient := xhttp.NewClient(xhttp.WithTimeout(cfg.GitHub.Timeout))
	return github.New(httpClient, cfg.GitHub.BaseURL, cfg.GitHub.Token)
}

// ProvideServer builds the Echo server with the API handler registered.
func ProvideServer(handler *api.DashboardHandler, cfg *config.Config) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Path != "" {
		opts = append(opts, xhttp.WithMetricsPath(cfg.Metrics.Path))
	}
	return xhttp.NewServer(handler, opts...)
}

// ProvideApp assembles the application lifecycle.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	srv *xhttp.Server,
	refresher *usecase.Refresher,
	cacheService cache.Service,
) *server.App {
	return server.NewApp(cfg, log, srv, refresher, cacheService)
}

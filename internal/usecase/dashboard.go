// Package usecase combines upstream clients, the indicator engine, and the
// chart assembler into the operations the API exposes.
package usecase

import (
	"context"
	"fmt"
	"time"

	"StockDash/internal/chart"
	"StockDash/internal/domain/models"
	"StockDash/internal/indicator"
	"StockDash/internal/service/alphavantage"
	"StockDash/internal/service/github"
	"StockDash/pkg/cache"
	"StockDash/pkg/config"
	"StockDash/pkg/logger"
	"StockDash/pkg/metrics"
)

// DashboardView is the full payload for one symbol. Sections degrade
// independently: a failed overview never blanks the chart, and the failure
// reason is carried in Errors under the section name.
type DashboardView struct {
	Symbol   string                  `json:"symbol"`
	Interval models.Interval         `json:"interval"`
	Quote    *models.Quote           `json:"quote,omitempty"`
	Figure   *chart.Figure           `json:"figure,omitempty"`
	Overview *models.CompanyOverview `json:"overview,omitempty"`
	Errors   map[string]string       `json:"errors,omitempty"`
}

// Dashboard implements the dashboard operations.
type Dashboard struct {
	av      *alphavantage.Client
	gh      *github.Client
	cache   cache.Service
	metrics *metrics.Recorder
	log     *logger.Logger
	cfg     *config.Config
}

// NewDashboard creates the dashboard use case.
func NewDashboard(
	av *alphavantage.Client,
	gh *github.Client,
	cacheService cache.Service,
	recorder *metrics.Recorder,
	log *logger.Logger,
	cfg *config.Config,
) *Dashboard {
	return &Dashboard{
		av:      av,
		gh:      gh,
		cache:   cacheService,
		metrics: recorder,
		log:     log,
		cfg:     cfg,
	}
}

// Symbols returns the configured symbol catalogue.
func (u *Dashboard) Symbols() []string {
	out := make([]string, len(u.cfg.Dashboard.Symbols))
	copy(out, u.cfg.Dashboard.Symbols)
	return out
}

// GetDashboard builds the complete view for one symbol: enriched series,
// three-panel figure, latest quote, and company overview. The series is
// mandatory; the overview degrades into Errors.
func (u *Dashboard) GetDashboard(ctx context.Context, req *models.DashboardRequest) (*DashboardView, error) {
	started := time.Now()
	defer func() {
		u.metrics.RecordLatency("dashboard", time.Since(started).Seconds())
	}()

	interval := models.Interval(req.Interval)
	view := &DashboardView{
		Symbol:   req.Symbol,
		Interval: interval,
		Errors:   map[string]string{},
	}

	series, err := u.fetchSeries(ctx, req.Symbol, interval)
	if err != nil {
		return nil, err
	}

	set, err := indicator.Compute(series, indicator.DefaultParams())
	if err != nil {
		// Too few bars for any column. The raw chart still renders.
		u.log.Warn("indicators unavailable",
			logger.String("symbol", req.Symbol),
			logger.Error(err))
		view.Errors["indicators"] = err.Error()
		set = nil
	}

	view.Figure = chart.Assemble(series, set, req.Symbol)
	view.Quote = buildQuote(series, set)
	if view.Quote != nil {
		u.metrics.RecordLastPrice(req.Symbol, view.Quote.Price)
	}

	overview, err := u.GetOverview(ctx, req.Symbol)
	if err != nil {
		u.log.Warn("overview unavailable",
			logger.String("symbol", req.Symbol),
			logger.Error(err))
		view.Errors["overview"] = err.Error()
	} else {
		view.Overview = overview
	}

	if len(view.Errors) == 0 {
		view.Errors = nil
	}
	return view, nil
}

// GetSeries returns the enriched series as rows, with indicator columns
// null before their windows fill.
func (u *Dashboard) GetSeries(ctx context.Context, req *models.SeriesRequest) ([]models.SeriesRow, error) {
	series, err := u.fetchSeries(ctx, req.Symbol, models.Interval(req.Interval))
	if err != nil {
		return nil, err
	}

	set, err := indicator.Compute(series, indicator.Params{Window: req.Window, Period: req.Period})
	if err != nil {
		return nil, err
	}

	rows := make([]models.SeriesRow, series.Len())
	for i, p := range series.Points {
		rows[i] = models.SeriesRow{
			Timestamp: p.Timestamp,
			Open:      p.Open,
			High:      p.High,
			Low:       p.Low,
			Close:     p.Close,
			Volume:    p.Volume,
			SMA:       models.FloatPtr(set.SMA[i]),
			RSI:       models.FloatPtr(set.RSI[i]),
			BBUpper:   models.FloatPtr(set.BBUpper[i]),
			BBMiddle:  models.FloatPtr(set.BBMiddle[i]),
			BBLower:   models.FloatPtr(set.BBLower[i]),
		}
	}
	return rows, nil
}

// GetOverview returns the cached company overview.
func (u *Dashboard) GetOverview(ctx context.Context, symbol string) (*models.CompanyOverview, error) {
	key := cache.Key("overview", symbol)

	var cached models.CompanyOverview
	if err := u.cache.Get(ctx, key, &cached); err == nil {
		u.metrics.RecordCache("overview", "hit")
		return &cached, nil
	}
	u.metrics.RecordCache("overview", "miss")

	overview, err := u.av.FetchOverview(ctx, symbol)
	if err != nil {
		u.metrics.RecordError("alphavantage")
		return nil, err
	}
	u.metrics.RecordFetch("alphavantage", "overview")

	u.cacheSet(ctx, key, overview, u.cfg.AlphaVantage.OverviewTTL)
	return overview, nil
}

// GetProfile returns the cached GitHub profile. An empty username falls
// back to the configured account.
func (u *Dashboard) GetProfile(ctx context.Context, username string) (*models.GitHubProfile, error) {
	username = u.resolveUsername(username)
	if username == "" {
		return nil, fmt.Errorf("no github username configured")
	}
	key := cache.Key("github", "profile", username)

	var cached models.GitHubProfile
	if err := u.cache.Get(ctx, key, &cached); err == nil {
		u.metrics.RecordCache("github_profile", "hit")
		return &cached, nil
	}
	u.metrics.RecordCache("github_profile", "miss")

	profile, err := u.gh.FetchProfile(ctx, username)
	if err != nil {
		u.metrics.RecordError("github")
		return nil, err
	}
	u.metrics.RecordFetch("github", "profile")

	u.cacheSet(ctx, key, profile, u.cfg.GitHub.TTL)
	return profile, nil
}

// GetRepos returns the user's most recently updated repositories.
func (u *Dashboard) GetRepos(ctx context.Context, username string, limit int) ([]models.GitHubRepo, error) {
	username = u.resolveUsername(username)
	if username == "" {
		return nil, fmt.Errorf("no github username configured")
	}
	key := cache.Key("github", "repos", username, limit)

	var cached []models.GitHubRepo
	if err := u.cache.Get(ctx, key, &cached); err == nil {
		u.metrics.RecordCache("github_repos", "hit")
		return cached, nil
	}
	u.metrics.RecordCache("github_repos", "miss")

	repos, err := u.gh.FetchRepos(ctx, username, limit)
	if err != nil {
		u.metrics.RecordError("github")
		return nil, err
	}
	u.metrics.RecordFetch("github", "repos")

	u.cacheSet(ctx, key, repos, u.cfg.GitHub.TTL)
	return repos, nil
}

// WarmSeries refreshes the cached series for a symbol, bypassing the cache
// read. Used by the background refresher.
func (u *Dashboard) WarmSeries(ctx context.Context, symbol string, interval models.Interval) error {
	series, err := u.av.FetchSeries(ctx, symbol, interval)
	if err != nil {
		u.metrics.RecordError("alphavantage")
		return err
	}
	u.metrics.RecordFetch("alphavantage", "series")

	u.cacheSet(ctx, cache.Key("series", symbol, interval), series, u.cfg.AlphaVantage.SeriesTTL)
	return nil
}

func (u *Dashboard) fetchSeries(ctx context.Context, symbol string, interval models.Interval) (*models.PriceSeries, error) {
	key := cache.Key("series", symbol, interval)

	var cached models.PriceSeries
	if err := u.cache.Get(ctx, key, &cached); err == nil {
		u.metrics.RecordCache("series", "hit")
		return &cached, nil
	}
	u.metrics.RecordCache("series", "miss")

	series, err := u.av.FetchSeries(ctx, symbol, interval)
	if err != nil {
		u.metrics.RecordError("alphavantage")
		return nil, err
	}
	u.metrics.RecordFetch("alphavantage", "series")

	u.cacheSet(ctx, key, series, u.cfg.AlphaVantage.SeriesTTL)
	return series, nil
}

// cacheSet stores best-effort; a full cache or dead Redis never fails a
// request.
func (u *Dashboard) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := u.cache.Set(ctx, key, value, ttl); err != nil {
		u.log.Warn("cache set failed",
			logger.String("key", key),
			logger.Error(err))
	}
}

func (u *Dashboard) resolveUsername(username string) string {
	if username != "" {
		return username
	}
	return u.cfg.GitHub.Username
}

// buildQuote summarizes the latest bar. Change is measured against the
// previous close; with a single bar both deltas are zero.
func buildQuote(series *models.PriceSeries, set *models.IndicatorSet) *models.Quote {
	last, err := series.Last()
	if err != nil {
		return nil
	}

	q := &models.Quote{
		Symbol:    series.Symbol,
		Timestamp: last.Timestamp,
		Price:     last.Close,
		Volume:    last.Volume,
	}

	if n := series.Len(); n > 1 {
		prev := series.Points[n-2].Close
		q.Change = last.Close - prev
		if prev != 0 {
			q.ChangePercent = q.Change / prev * 100
		}
	}

	if set != nil && len(set.RSI) == series.Len() {
		q.RSI = models.FloatPtr(set.RSI[series.Len()-1])
	}
	return q
}

// Package alphavantage fetches stock time series and company metadata from
// the Alpha Vantage HTTP API and normalizes them into domain models.
package alphavantage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"StockDash/internal/domain/models"
	xhttp "StockDash/pkg/http"
)

const (
	intradayLayout = "2006-01-02 15:04:05"
	dailyLayout    = "2006-01-02"
)

var (
	// ErrNoData marks an empty or malformed payload for a symbol.
	ErrNoData = errors.New("alphavantage: no data for symbol")
	// ErrRateLimited marks an API note returned in place of data.
	ErrRateLimited = errors.New("alphavantage: rate limited")
)

// Client calls the Alpha Vantage query API.
type Client struct {
	http    *xhttp.Client
	baseURL string
	apiKey  string
}

// New creates an Alpha Vantage client.
func New(httpClient *xhttp.Client, baseURL, apiKey string) *Client {
	return &Client{http: httpClient, baseURL: baseURL, apiKey: apiKey}
}

// FetchSeries retrieves an intraday (5min) or daily time series for the
// symbol and normalizes it into an ascending PriceSeries.
func (c *Client) FetchSeries(ctx context.Context, symbol string, interval models.Interval) (*models.PriceSeries, error) {
	function := "TIME_SERIES_DAILY"
	if interval == models.IntervalIntraday {
		function = "TIME_SERIES_INTRADAY"
	}

	params := map[string][]string{
		"function": {function},
		"symbol":   {symbol},
		"apikey":   {c.apiKey},
	}
	if interval == models.IntervalIntraday {
		params["interval"] = []string{"5min"}
	}

	var resp timeSeriesResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + "/query",
		QueryParams: params,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch series %s: %w", symbol, err)
	}

	if err := apiError(resp.Note, resp.Information, resp.ErrorMessage, symbol); err != nil {
		return nil, err
	}

	raw := resp.DailySeries
	layout := dailyLayout
	if interval == models.IntervalIntraday {
		raw = resp.IntradaySeries
		layout = intradayLayout
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNoData, symbol, interval)
	}

	series, err := normalize(symbol, interval, raw, layout)
	if err != nil {
		return nil, fmt.Errorf("normalize series %s: %w", symbol, err)
	}
	return series, nil
}

// FetchOverview retrieves the company-overview block for the symbol.
func (c *Client) FetchOverview(ctx context.Context, symbol string) (*models.CompanyOverview, error) {
	var resp overviewResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/query",
		QueryParams: map[string][]string{
			"function": {"OVERVIEW"},
			"symbol":   {symbol},
			"apikey":   {c.apiKey},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch overview %s: %w", symbol, err)
	}

	if err := apiError(resp.Note, resp.Information, "", symbol); err != nil {
		return nil, err
	}
	if resp.Symbol == "" {
		return nil, fmt.Errorf("%w: %s (overview)", ErrNoData, symbol)
	}

	return &models.CompanyOverview{
		Symbol:        resp.Symbol,
		Name:          resp.Name,
		Description:   resp.Description,
		Sector:        resp.Sector,
		Industry:      resp.Industry,
		Exchange:      resp.Exchange,
		MarketCap:     parseFloat(resp.MarketCap),
		PERatio:       resp.PERatio,
		EPS:           resp.EPS,
		DividendYield: resp.DividendYield,
		High52Week:    parseFloat(resp.High52Week),
		Low52Week:     parseFloat(resp.Low52Week),
		AnalystTarget: resp.AnalystTargetPrice,
	}, nil
}

// apiError classifies in-band API error fields returned with HTTP 200.
func apiError(note, information, errorMessage, symbol string) error {
	if note != "" || information != "" {
		return fmt.Errorf("%w: %s", ErrRateLimited, symbol)
	}
	if errorMessage != "" {
		return fmt.Errorf("%w: %s: %s", ErrNoData, symbol, errorMessage)
	}
	return nil
}

// normalize converts the timestamp-keyed map into an ascending PriceSeries
// and checks the series invariants.
func normalize(symbol string, interval models.Interval, raw map[string]rawBar, layout string) (*models.PriceSeries, error) {
	points := make([]models.PricePoint, 0, len(raw))
	for ts, bar := range raw {
		t, err := time.Parse(layout, ts)
		if err != nil {
			return nil, fmt.Errorf("bad timestamp %q: %w", ts, err)
		}
		p := models.PricePoint{Timestamp: t}
		if p.Open, err = strconv.ParseFloat(bar.Open, 64); err != nil {
			return nil, fmt.Errorf("bad open at %s: %w", ts, err)
		}
		if p.High, err = strconv.ParseFloat(bar.High, 64); err != nil {
			return nil, fmt.Errorf("bad high at %s: %w", ts, err)
		}
		if p.Low, err = strconv.ParseFloat(bar.Low, 64); err != nil {
			return nil, fmt.Errorf("bad low at %s: %w", ts, err)
		}
		if p.Close, err = strconv.ParseFloat(bar.Close, 64); err != nil {
			return nil, fmt.Errorf("bad close at %s: %w", ts, err)
		}
		if p.Volume, err = strconv.ParseInt(bar.Volume, 10, 64); err != nil {
			return nil, fmt.Errorf("bad volume at %s: %w", ts, err)
		}
		points = append(points, p)
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	series := &models.PriceSeries{Symbol: symbol, Interval: interval, Points: points}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	return series, nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

package alphavantage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockDash/internal/domain/models"
	xhttp "StockDash/pkg/http"
)

const intradayPayload = `{
	"Meta Data": {
		"1. Information": "Intraday (5min) open, high, low, close prices and volume",
		"2. Symbol": "AAPL",
		"3. Last Refreshed": "2025-06-02 10:00:00",
		"6. Time Zone": "US/Eastern"
	},
	"Time Series (5min)": {
		"2025-06-02 10:00:00": {
			"1. open": "101.00", "2. high": "102.50", "3. low": "100.50", "4. close": "102.00", "5. volume": "1200"
		},
		"2025-06-02 09:55:00": {
			"1. open": "100.00", "2. high": "101.50", "3. low": "99.50", "4. close": "101.00", "5. volume": "1500"
		}
	}
}`

const dailyPayload = `{
	"Meta Data": {
		"2. Symbol": "MSFT",
		"3. Last Refreshed": "2025-06-02"
	},
	"Time Series (Daily)": {
		"2025-06-02": {
			"1. open": "410.00", "2. high": "415.00", "3. low": "408.00", "4. close": "414.00", "5. volume": "30000000"
		},
		"2025-05-30": {
			"1. open": "405.00", "2. high": "411.00", "3. low": "404.00", "4. close": "410.00", "5. volume": "28000000"
		}
	}
}`

const overviewPayload = `{
	"Symbol": "AAPL",
	"Name": "Apple Inc",
	"Description": "Apple Inc. designs consumer electronics.",
	"Sector": "TECHNOLOGY",
	"Industry": "ELECTRONIC COMPUTERS",
	"Exchange": "NASDAQ",
	"MarketCapitalization": "3000000000000",
	"PERatio": "29.5",
	"EPS": "6.42",
	"DividendYield": "0.0055",
	"52WeekHigh": "237.23",
	"52WeekLow": "164.08",
	"AnalystTargetPrice": "228.60"
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(xhttp.NewClient(xhttp.WithTimeout(time.Second)), srv.URL, "demo-key")
}

func TestFetchSeriesIntraday(t *testing.T) {
	var gotQuery map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"function": r.URL.Query().Get("function"),
			"symbol":   r.URL.Query().Get("symbol"),
			"interval": r.URL.Query().Get("interval"),
			"apikey":   r.URL.Query().Get("apikey"),
		}
		w.Write([]byte(intradayPayload))
	})

	series, err := client.FetchSeries(context.Background(), "AAPL", models.IntervalIntraday)
	require.NoError(t, err)

	assert.Equal(t, "TIME_SERIES_INTRADAY", gotQuery["function"])
	assert.Equal(t, "AAPL", gotQuery["symbol"])
	assert.Equal(t, "5min", gotQuery["interval"])
	assert.Equal(t, "demo-key", gotQuery["apikey"])

	require.Equal(t, 2, series.Len())
	// Bars come back keyed newest-first; the series must be ascending.
	assert.True(t, series.Points[0].Timestamp.Before(series.Points[1].Timestamp))
	assert.Equal(t, 100.0, series.Points[0].Open)
	assert.Equal(t, 102.0, series.Points[1].Close)
	assert.Equal(t, int64(1200), series.Points[1].Volume)
}

func TestFetchSeriesDaily(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TIME_SERIES_DAILY", r.URL.Query().Get("function"))
		assert.Empty(t, r.URL.Query().Get("interval"))
		w.Write([]byte(dailyPayload))
	})

	series, err := client.FetchSeries(context.Background(), "MSFT", models.IntervalDaily)
	require.NoError(t, err)
	require.Equal(t, 2, series.Len())
	assert.Equal(t, models.IntervalDaily, series.Interval)
	assert.Equal(t, 414.0, series.Points[1].Close)
}

func TestFetchSeriesRateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`))
	})

	_, err := client.FetchSeries(context.Background(), "AAPL", models.IntervalIntraday)
	require.ErrorIs(t, err, ErrRateLimited)
}

func TestFetchSeriesUnknownSymbol(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Error Message": "Invalid API call."}`))
	})

	_, err := client.FetchSeries(context.Background(), "NOPE", models.IntervalIntraday)
	require.ErrorIs(t, err, ErrNoData)
}

func TestFetchSeriesEmptyPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := client.FetchSeries(context.Background(), "AAPL", models.IntervalDaily)
	require.ErrorIs(t, err, ErrNoData)
}

func TestFetchSeriesMalformedBar(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"Time Series (Daily)": {
				"2025-06-02": {"1. open": "not-a-number", "2. high": "1", "3. low": "1", "4. close": "1", "5. volume": "1"}
			}
		}`))
	})

	_, err := client.FetchSeries(context.Background(), "AAPL", models.IntervalDaily)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad open")
}

func TestFetchSeriesHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchSeries(context.Background(), "AAPL", models.IntervalDaily)
	require.Error(t, err)
	var statusErr *xhttp.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestFetchOverview(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "OVERVIEW", r.URL.Query().Get("function"))
		w.Write([]byte(overviewPayload))
	})

	overview, err := client.FetchOverview(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "Apple Inc", overview.Name)
	assert.Equal(t, "TECHNOLOGY", overview.Sector)
	assert.Equal(t, 3000000000000.0, overview.MarketCap)
	assert.Equal(t, "29.5", overview.PERatio)
	assert.Equal(t, 237.23, overview.High52Week)
	assert.Equal(t, 164.08, overview.Low52Week)
}

func TestFetchOverviewUnknownSymbol(t *testing.T) {
	// The overview endpoint answers {} for unknown symbols.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := client.FetchOverview(context.Background(), "NOPE")
	require.ErrorIs(t, err, ErrNoData)
}

func TestFetchOverviewRateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Information": "API key limit reached."}`))
	})

	_, err := client.FetchOverview(context.Background(), "AAPL")
	require.ErrorIs(t, err, ErrRateLimited)
}

package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockDash/internal/domain/models"
	"StockDash/internal/indicator"
)

func testSeries(t *testing.T, n int) *models.PriceSeries {
	t.Helper()
	base := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	points := make([]models.PricePoint, n)
	for i := range points {
		c := 100 + float64(i)
		points[i] = models.PricePoint{
			Timestamp: base.Add(time.Duration(i) * 5 * time.Minute),
			Open:      c - 0.5,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    int64(1000 + i),
		}
	}
	return &models.PriceSeries{Symbol: "AAPL", Interval: models.IntervalIntraday, Points: points}
}

func TestAssemblePanelLayout(t *testing.T) {
	series := testSeries(t, 30)
	set, err := indicator.Compute(series, indicator.DefaultParams())
	require.NoError(t, err)

	fig := Assemble(series, set, "AAPL")

	require.Len(t, fig.Panels, 3)
	assert.True(t, fig.SharedXAxis)

	// Price gets the dominant share, volume and RSI split the rest.
	assert.InDelta(t, 0.6, fig.Panels[0].Weight, 1e-9)
	assert.InDelta(t, 0.2, fig.Panels[1].Weight, 1e-9)
	assert.InDelta(t, 0.2, fig.Panels[2].Weight, 1e-9)

	var total float64
	for _, p := range fig.Panels {
		total += p.Weight
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestAssemblePricePanelTraces(t *testing.T) {
	series := testSeries(t, 30)
	set, err := indicator.Compute(series, indicator.DefaultParams())
	require.NoError(t, err)

	fig := Assemble(series, set, "AAPL")
	price := fig.Panels[0]

	require.Len(t, price.Traces, 4)
	assert.Equal(t, TraceCandlestick, price.Traces[0].Type)
	assert.Len(t, price.Traces[0].OHLC, 30)
	assert.Equal(t, "SMA (20)", price.Traces[1].Name)
	assert.Equal(t, "BB Upper", price.Traces[2].Name)
	assert.Equal(t, "BB Lower", price.Traces[3].Name)
	assert.True(t, price.Traces[3].Style.Fill)
}

func TestAssembleDropsUnfilledWindows(t *testing.T) {
	series := testSeries(t, 30)
	set, err := indicator.Compute(series, indicator.DefaultParams())
	require.NoError(t, err)

	fig := Assemble(series, set, "AAPL")

	// 30 bars with a 20 window leaves 11 SMA points; RSI period 14 leaves 16.
	assert.Len(t, fig.Panels[0].Traces[1].Points, 11)
	assert.Len(t, fig.Panels[2].Traces[0].Points, 16)
}

func TestAssembleWithoutIndicators(t *testing.T) {
	series := testSeries(t, 5)

	fig := Assemble(series, nil, "AAPL")

	require.Len(t, fig.Panels, 3)
	assert.Len(t, fig.Panels[0].Traces, 1, "only the candlestick without indicators")
	assert.Empty(t, fig.Panels[2].Traces[0].Points)
	// Reference lines stay regardless
	require.Len(t, fig.Panels[2].RefLines, 2)
	assert.InDelta(t, 70, fig.Panels[2].RefLines[0].Y, 1e-9)
	assert.InDelta(t, 30, fig.Panels[2].RefLines[1].Y, 1e-9)
}

func TestClassifyVolumeBar(t *testing.T) {
	down := models.PricePoint{Open: 105, Close: 100, High: 106, Low: 99}
	up := models.PricePoint{Open: 100, Close: 105, High: 106, Low: 99}
	flat := models.PricePoint{Open: 100, Close: 100, High: 101, Low: 99}

	assert.Equal(t, BarDown, ClassifyVolumeBar(down))
	assert.Equal(t, BarUp, ClassifyVolumeBar(up))
	// A flat bar counts as down, matching open-close >= 0
	assert.Equal(t, BarDown, ClassifyVolumeBar(flat))
}

func TestVolumePanelClassifiesEveryBar(t *testing.T) {
	series := testSeries(t, 10)
	fig := Assemble(series, nil, "AAPL")

	bars := fig.Panels[1].Traces[0].Bars
	require.Len(t, bars, 10)
	for i, b := range bars {
		// testSeries closes above its opens, so every bar is up
		assert.Equal(t, BarUp, b.Class, "bar %d", i)
		assert.Equal(t, float64(1000+i), b.Y)
	}
}

package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockDash/internal/domain/models"
)

func seriesFromCloses(closes []float64) *models.PriceSeries {
	base := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	points := make([]models.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = models.PricePoint{
			Timestamp: base.Add(time.Duration(i) * 5 * time.Minute),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1000,
		}
	}
	return &models.PriceSeries{Symbol: "TEST", Interval: models.IntervalIntraday, Points: points}
}

func rangeCloses(start float64, n int, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func constantCloses(v float64, n int) []float64 {
	return rangeCloses(v, n, 0)
}

func TestSMAKnownValues(t *testing.T) {
	closes := rangeCloses(100, 25, 1) // 100..124
	sma := SMA(closes, 20)

	require.Len(t, sma, 25)
	for i := 0; i < 19; i++ {
		assert.True(t, math.IsNaN(sma[i]), "index %d should be undefined", i)
	}
	// mean(100..119) = 109.5, then the window slides by one per bar
	assert.InDelta(t, 109.5, sma[19], 1e-9)
	assert.InDelta(t, 110.5, sma[20], 1e-9)
	assert.InDelta(t, 114.5, sma[24], 1e-9)
}

func TestSMAConstantSeries(t *testing.T) {
	sma := SMA(constantCloses(50, 30), 20)
	for i := 19; i < 30; i++ {
		assert.InDelta(t, 50.0, sma[i], 1e-9)
	}
}

func TestSMAShortInput(t *testing.T) {
	sma := SMA(rangeCloses(1, 5, 1), 20)
	for _, v := range sma {
		assert.True(t, math.IsNaN(v))
	}
}

func TestRSIAllGains(t *testing.T) {
	rsi := RSI(rangeCloses(100, 30, 1), 14)

	for i := 0; i < 14; i++ {
		assert.True(t, math.IsNaN(rsi[i]), "index %d should be undefined", i)
	}
	for i := 14; i < 30; i++ {
		assert.InDelta(t, 100.0, rsi[i], 1e-9, "monotonic gains pin RSI at 100")
	}
}

func TestRSIAllLosses(t *testing.T) {
	rsi := RSI(rangeCloses(100, 30, -1), 14)
	for i := 14; i < 30; i++ {
		assert.InDelta(t, 0.0, rsi[i], 1e-9, "monotonic losses pin RSI at 0")
	}
}

func TestRSIFlatSeriesReportsHundred(t *testing.T) {
	// No movement means zero average loss; the guard reports 100 instead
	// of dividing by zero.
	rsi := RSI(constantCloses(42, 20), 14)
	for i := 14; i < 20; i++ {
		assert.InDelta(t, 100.0, rsi[i], 1e-9)
	}
}

func TestRSIBalancedMoves(t *testing.T) {
	// Alternating +1/-1 over the window: equal gains and losses, RS=1, RSI=50.
	closes := make([]float64, 31)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		if i%2 == 1 {
			closes[i] = closes[i-1] + 1
		} else {
			closes[i] = closes[i-1] - 1
		}
	}
	rsi := RSI(closes, 14)
	for i := 14; i < len(closes); i++ {
		assert.InDelta(t, 50.0, rsi[i], 1e-9)
	}
}

func TestBollingerConstantSeriesCollapses(t *testing.T) {
	middle, upper, lower := Bollinger(constantCloses(75, 25), 20, 2)

	for i := 0; i < 19; i++ {
		assert.True(t, math.IsNaN(middle[i]))
		assert.True(t, math.IsNaN(upper[i]))
		assert.True(t, math.IsNaN(lower[i]))
	}
	for i := 19; i < 25; i++ {
		assert.InDelta(t, 75.0, middle[i], 1e-9)
		assert.InDelta(t, 75.0, upper[i], 1e-9, "zero variance collapses the bands")
		assert.InDelta(t, 75.0, lower[i], 1e-9)
	}
}

func TestBollingerBandsOrdered(t *testing.T) {
	closes := []float64{
		100, 102, 101, 105, 103, 108, 107, 110, 109, 112,
		111, 115, 113, 118, 116, 120, 119, 122, 121, 125,
		124, 127, 126, 130, 128,
	}
	middle, upper, lower := Bollinger(closes, 20, 2)

	for i := 19; i < len(closes); i++ {
		assert.Less(t, lower[i], middle[i])
		assert.Less(t, middle[i], upper[i])
		// Bands are symmetric about the middle
		assert.InDelta(t, middle[i]-lower[i], upper[i]-middle[i], 1e-9)
	}
}

func TestBollingerMiddleMatchesSMA(t *testing.T) {
	closes := rangeCloses(10, 30, 0.7)
	middle, _, _ := Bollinger(closes, 20, 2)
	sma := SMA(closes, 20)

	for i := 19; i < 30; i++ {
		assert.InDelta(t, sma[i], middle[i], 1e-9)
	}
}

func TestComputeAlignsColumns(t *testing.T) {
	series := seriesFromCloses(rangeCloses(100, 40, 0.5))
	set, err := Compute(series, DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, 20, set.Window)
	assert.Equal(t, 14, set.Period)
	assert.Len(t, set.SMA, 40)
	assert.Len(t, set.RSI, 40)
	assert.Len(t, set.BBMiddle, 40)
	assert.Len(t, set.BBUpper, 40)
	assert.Len(t, set.BBLower, 40)

	// RSI fills first (period 14 < window 20)
	assert.True(t, models.Defined(set.RSI[14]))
	assert.False(t, models.Defined(set.SMA[18]))
	assert.True(t, models.Defined(set.SMA[19]))
}

func TestComputeInsufficientData(t *testing.T) {
	series := seriesFromCloses(rangeCloses(100, 10, 1))
	_, err := Compute(series, DefaultParams())
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestComputeMinimumLength(t *testing.T) {
	// longest(20, 14+1) = 20 bars is exactly enough for one value everywhere
	series := seriesFromCloses(rangeCloses(100, 20, 1))
	set, err := Compute(series, DefaultParams())
	require.NoError(t, err)
	assert.True(t, models.Defined(set.SMA[19]))
	assert.True(t, models.Defined(set.RSI[19]))
}

func TestComputeRejectsBadParams(t *testing.T) {
	series := seriesFromCloses(rangeCloses(100, 30, 1))

	_, err := Compute(series, Params{Window: 1, Period: 14})
	require.Error(t, err)

	_, err = Compute(series, Params{Window: 20, Period: 0})
	require.Error(t, err)
}

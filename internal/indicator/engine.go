// Package indicator computes technical indicator columns over a price series.
//
// All computations are pure functions of the input series and parameters.
// Output slices are aligned point-for-point with the input; entries before
// an indicator's minimum window are NaN.
package indicator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"StockDash/internal/domain/models"
)

const (
	// DefaultWindow is the SMA / Bollinger lookback.
	DefaultWindow = 20
	// DefaultPeriod is the RSI lookback.
	DefaultPeriod = 14
	// BollingerK is the band width in standard deviations.
	BollingerK = 2.0
)

// Params configures an indicator computation.
type Params struct {
	Window int // SMA and Bollinger window
	Period int // RSI period
}

// DefaultParams returns the conventional 20/14 parameters.
func DefaultParams() Params {
	return Params{Window: DefaultWindow, Period: DefaultPeriod}
}

func (p Params) validate() error {
	if p.Window < 2 {
		return fmt.Errorf("window must be >= 2, got %d", p.Window)
	}
	if p.Period < 2 {
		return fmt.Errorf("period must be >= 2, got %d", p.Period)
	}
	return nil
}

// longest returns the minimum series length needed for every column to
// produce at least one value.
func (p Params) longest() int {
	// RSI needs period deltas, hence period+1 bars.
	n := p.Period + 1
	if p.Window > n {
		n = p.Window
	}
	return n
}

// Compute derives an IndicatorSet from a series sorted ascending by
// timestamp. Returns an "insufficient data" error when the series is
// shorter than the longest required window.
func Compute(series *models.PriceSeries, p Params) (*models.IndicatorSet, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if series.Len() < p.longest() {
		return nil, fmt.Errorf("%w: have %d bars, need %d", ErrInsufficientData, series.Len(), p.longest())
	}

	closes := series.Closes()
	set := &models.IndicatorSet{
		Window: p.Window,
		Period: p.Period,
		SMA:    SMA(closes, p.Window),
		RSI:    RSI(closes, p.Period),
	}
	set.BBMiddle, set.BBUpper, set.BBLower = Bollinger(closes, p.Window, BollingerK)
	return set, nil
}

// SMA computes the trailing simple moving average of prices over the given
// window. The first window-1 entries are NaN.
func SMA(prices []float64, window int) []float64 {
	out := undefined(len(prices))
	if window <= 0 || len(prices) < window {
		return out
	}
	sum := 0.0
	for i, v := range prices {
		sum += v
		if i >= window {
			sum -= prices[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// RSI computes the Relative Strength Index from trailing simple averages
// of gains and losses over the given period. The first period entries are
// NaN (no delta at index 0, insufficient window thereafter). A zero
// average loss reports exactly 100 rather than dividing by zero.
func RSI(prices []float64, period int) []float64 {
	out := undefined(len(prices))
	if period <= 0 || len(prices) <= period {
		return out
	}

	gains := make([]float64, len(prices))
	losses := make([]float64, len(prices))
	for i := 1; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	var gainSum, lossSum float64
	for i := 1; i < len(prices); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		if i < period {
			continue
		}
		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)
		if avgLoss == 0 {
			out[i] = 100.0
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100.0 - 100.0/(1.0+rs)
	}
	return out
}

// Bollinger computes the middle band (SMA), and upper/lower bands at
// +/- k population standard deviations over the trailing window.
func Bollinger(prices []float64, window int, k float64) (middle, upper, lower []float64) {
	n := len(prices)
	middle = undefined(n)
	upper = undefined(n)
	lower = undefined(n)
	if window <= 0 || n < window {
		return middle, upper, lower
	}
	for i := window - 1; i < n; i++ {
		recent := prices[i-window+1 : i+1]
		mean := stat.Mean(recent, nil)
		sigma := stat.PopStdDev(recent, nil)
		middle[i] = mean
		upper[i] = mean + k*sigma
		lower[i] = mean - k*sigma
	}
	return middle, upper, lower
}

func undefined(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

package models

import (
	"fmt"
	"math"
	"time"
)

// Interval selects the granularity of a fetched time series.
type Interval string

const (
	IntervalIntraday Interval = "5min"
	IntervalDaily    Interval = "daily"
)

// PricePoint is a single OHLCV bar.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// PriceSeries is an immutable, chronologically ascending sequence of bars
// for one symbol. A fresh fetch replaces it wholesale.
type PriceSeries struct {
	Symbol   string       `json:"symbol"`
	Interval Interval     `json:"interval"`
	Points   []PricePoint `json:"points"`
}

// Len returns the number of bars.
func (s *PriceSeries) Len() int { return len(s.Points) }

// Closes extracts the close column.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}

// Last returns the most recent bar.
func (s *PriceSeries) Last() (PricePoint, error) {
	if len(s.Points) == 0 {
		return PricePoint{}, fmt.Errorf("series %s is empty", s.Symbol)
	}
	return s.Points[len(s.Points)-1], nil
}

// Validate checks the PriceSeries invariants: strictly increasing
// timestamps and low <= open,close <= high on every bar.
func (s *PriceSeries) Validate() error {
	for i, p := range s.Points {
		if i > 0 && !s.Points[i-1].Timestamp.Before(p.Timestamp) {
			return fmt.Errorf("timestamps not strictly increasing at index %d", i)
		}
		if p.Low > p.Open || p.Low > p.Close || p.High < p.Open || p.High < p.Close {
			return fmt.Errorf("bar at index %d violates low <= open,close <= high", i)
		}
	}
	return nil
}

// IndicatorSet holds derived columns aligned point-for-point with the
// source series. Entries before an indicator's minimum window are NaN.
type IndicatorSet struct {
	Window int
	Period int

	SMA      []float64
	RSI      []float64
	BBMiddle []float64
	BBUpper  []float64
	BBLower  []float64
}

// Defined reports whether v carries a computed value.
func Defined(v float64) bool { return !math.IsNaN(v) }

// Quote summarizes the most recent bar of an enriched series.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Timestamp     time.Time `json:"timestamp"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Volume        int64     `json:"volume"`
	RSI           *float64  `json:"rsi,omitempty"`
}

// SeriesRow is the JSON shape of one enriched bar; indicator columns are
// null until their window fills.
type SeriesRow struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
	SMA       *float64  `json:"sma"`
	RSI       *float64  `json:"rsi"`
	BBUpper   *float64  `json:"bb_upper"`
	BBMiddle  *float64  `json:"bb_middle"`
	BBLower   *float64  `json:"bb_lower"`
}

// FloatPtr converts a possibly-NaN indicator value to a nullable JSON field.
func FloatPtr(v float64) *float64 {
	if !Defined(v) {
		return nil
	}
	return &v
}

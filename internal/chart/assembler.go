package chart

import (
	"fmt"

	"StockDash/internal/domain/models"
)

// Panel height weights, top to bottom: price, volume, RSI.
const (
	priceWeight  = 0.6
	volumeWeight = 0.2
	rsiWeight    = 0.2
)

// RSI overbought/oversold thresholds.
const (
	RSIOverbought = 70
	RSIOversold   = 30
)

// Assemble builds the three-panel figure for an enriched series. Undefined
// indicator values are skipped, never plotted; the assembler itself does
// not fail on partial indicator columns.
func Assemble(series *models.PriceSeries, set *models.IndicatorSet, label string) *Figure {
	return &Figure{
		Title:       label,
		SharedXAxis: true,
		Height:      800,
		Panels: []Panel{
			pricePanel(series, set, label),
			volumePanel(series),
			rsiPanel(series, set),
		},
	}
}

func pricePanel(series *models.PriceSeries, set *models.IndicatorSet, label string) Panel {
	ohlc := make([]OHLCPoint, 0, series.Len())
	for _, p := range series.Points {
		ohlc = append(ohlc, OHLCPoint{
			X:     p.Timestamp.Unix(),
			Open:  p.Open,
			High:  p.High,
			Low:   p.Low,
			Close: p.Close,
		})
	}

	traces := []Trace{{
		Name: "Price",
		Type: TraceCandlestick,
		OHLC: ohlc,
	}}

	if set != nil {
		traces = append(traces, Trace{
			Name:   fmt.Sprintf("SMA (%d)", set.Window),
			Type:   TraceLine,
			Style:  Style{Color: "orange", Width: 1},
			Points: linePoints(series, set.SMA),
		})
		traces = append(traces, Trace{
			Name:   "BB Upper",
			Type:   TraceLine,
			Style:  Style{Color: "gray", Width: 1, Dash: true},
			Points: linePoints(series, set.BBUpper),
		})
		// Fill shades the area between the lower and upper bands.
		traces = append(traces, Trace{
			Name:   "BB Lower",
			Type:   TraceLine,
			Style:  Style{Color: "gray", Width: 1, Dash: true, Fill: true},
			Points: linePoints(series, set.BBLower),
		})
	}

	return Panel{
		Title:  fmt.Sprintf("%s Price", label),
		YLabel: "Price ($)",
		Weight: priceWeight,
		Traces: traces,
	}
}

func volumePanel(series *models.PriceSeries) Panel {
	bars := make([]BarPoint, 0, series.Len())
	for _, p := range series.Points {
		bars = append(bars, BarPoint{
			X:     p.Timestamp.Unix(),
			Y:     float64(p.Volume),
			Class: ClassifyVolumeBar(p),
		})
	}
	return Panel{
		Title:  "Volume",
		YLabel: "Volume",
		Weight: volumeWeight,
		Traces: []Trace{{Name: "Volume", Type: TraceBar, Bars: bars}},
	}
}

func rsiPanel(series *models.PriceSeries, set *models.IndicatorSet) Panel {
	var pts []Point
	if set != nil {
		pts = linePoints(series, set.RSI)
	}
	return Panel{
		Title:  "RSI",
		YLabel: "RSI",
		Weight: rsiWeight,
		Traces: []Trace{{
			Name:   "RSI",
			Type:   TraceLine,
			Style:  Style{Color: "purple", Width: 2},
			Points: pts,
		}},
		RefLines: []RefLine{
			{Y: RSIOverbought, Color: "red", Dash: true},
			{Y: RSIOversold, Color: "green", Dash: true},
		},
	}
}

// ClassifyVolumeBar classifies a bar as "down" when the close did not rise
// above the open, "up" otherwise.
func ClassifyVolumeBar(p models.PricePoint) string {
	if p.Open-p.Close >= 0 {
		return BarDown
	}
	return BarUp
}

// linePoints pairs timestamps with defined indicator values, dropping NaN
// entries so unfilled windows are simply absent from the trace.
func linePoints(series *models.PriceSeries, column []float64) []Point {
	pts := make([]Point, 0, len(column))
	for i, v := range column {
		if i >= series.Len() || !models.Defined(v) {
			continue
		}
		pts = append(pts, Point{X: series.Points[i].Timestamp.Unix(), Y: v})
	}
	return pts
}

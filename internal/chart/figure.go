// Package chart assembles a renderable multi-panel figure description from
// an enriched price series. The output is a plain layout specification;
// rendering belongs to the client.
package chart

// Trace kinds.
const (
	TraceCandlestick = "candlestick"
	TraceLine        = "line"
	TraceBar         = "bar"
)

// Volume bar classes.
const (
	BarUp   = "up"
	BarDown = "down"
)

// Point is one x/y sample of a line trace.
type Point struct {
	X int64   `json:"x"` // unix timestamp
	Y float64 `json:"y"`
}

// OHLCPoint is one candlestick glyph.
type OHLCPoint struct {
	X     int64   `json:"x"`
	Open  float64 `json:"o"`
	High  float64 `json:"h"`
	Low   float64 `json:"l"`
	Close float64 `json:"c"`
}

// BarPoint is one volume bar with its up/down class.
type BarPoint struct {
	X     int64   `json:"x"`
	Y     float64 `json:"y"`
	Class string  `json:"class"`
}

// Style describes how a trace is drawn.
type Style struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  bool    `json:"dash,omitempty"`
	Fill  bool    `json:"fill,omitempty"` // shade down to the previous trace
}

// Trace is one drawable series inside a panel. Exactly one of the point
// slices is populated, matching Type.
type Trace struct {
	Name   string      `json:"name"`
	Type   string      `json:"type"`
	Style  Style       `json:"style,omitempty"`
	Points []Point     `json:"points,omitempty"`
	OHLC   []OHLCPoint `json:"ohlc,omitempty"`
	Bars   []BarPoint  `json:"bars,omitempty"`
}

// RefLine is a fixed horizontal reference line.
type RefLine struct {
	Y     float64 `json:"y"`
	Color string  `json:"color,omitempty"`
	Dash  bool    `json:"dash,omitempty"`
}

// Panel is one row of the figure.
type Panel struct {
	Title    string    `json:"title"`
	YLabel   string    `json:"y_label,omitempty"`
	Weight   float64   `json:"weight"` // relative height
	Traces   []Trace   `json:"traces"`
	RefLines []RefLine `json:"ref_lines,omitempty"`
}

// Figure is a multi-panel layout sharing a single time axis.
type Figure struct {
	Title       string  `json:"title"`
	SharedXAxis bool    `json:"shared_x_axis"`
	Height      int     `json:"height"`
	Panels      []Panel `json:"panels"`
}

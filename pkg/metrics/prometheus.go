package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder records dashboard metrics using Prometheus.
type Recorder struct {
	fetchesTotal *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	cacheTotal   *prometheus.CounterVec
	lastPrice    *prometheus.GaugeVec
	latency      *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockdash_fetches_total",
				Help: "Total number of upstream fetches",
			},
			[]string{"source", "kind"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockdash_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		cacheTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockdash_cache_requests_total",
				Help: "Cache lookups by outcome",
			},
			[]string{"kind", "outcome"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockdash_last_price",
				Help: "Last observed close price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockdash_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFetch records an upstream fetch.
func (r *Recorder) RecordFetch(source, kind string) {
	r.fetchesTotal.WithLabelValues(source, kind).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordCache records a cache lookup outcome ("hit" or "miss").
func (r *Recorder) RecordCache(kind, outcome string) {
	r.cacheTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordLastPrice records the last close price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	marketsAnalyzed *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	lastYesPrice    *prometheus.GaugeVec
	latency         *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		marketsAnalyzed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oddslens_markets_analyzed_total",
				Help: "Total number of markets run through the signal engine",
			},
			[]string{"outcome"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oddslens_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastYesPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "oddslens_last_yes_price",
				Help: "Last observed yes price for a market",
			},
			[]string{"market"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "oddslens_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordAnalyzed records one analyzed market by predicted outcome.
func (r *Recorder) RecordAnalyzed(outcome string) {
	r.marketsAnalyzed.WithLabelValues(outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordYesPrice records the last yes price for a market.
func (r *Recorder) RecordYesPrice(market string, price float64) {
	r.lastYesPrice.WithLabelValues(market).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes engine and pipeline health over Prometheus.
type Recorder struct {
	recomputesTotal *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	lastPrice       *prometheus.GaugeVec
	queueDepth      prometheus.Gauge
	duration        *prometheus.HistogramVec
	signalsTotal    *prometheus.CounterVec
}

// New creates a Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		recomputesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zonesniper_recomputes_total",
				Help: "Completed zone recomputations per pair and outcome",
			},
			[]string{"pair", "outcome"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zonesniper_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "zonesniper_last_price",
				Help: "Last observed price per pair",
			},
			[]string{"pair"},
		),
		queueDepth: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "zonesniper_recalc_queue_depth",
				Help: "Pairs currently waiting for recomputation",
			},
		),
		duration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zonesniper_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		signalsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zonesniper_signals_total",
				Help: "Zone transition signals emitted per pair and kind",
			},
			[]string{"pair", "kind"},
		),
	}
}

// RecordRecompute records one finished recomputation.
func (r *Recorder) RecordRecompute(pair, outcome string) {
	r.recomputesTotal.WithLabelValues(pair, outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a pair.
func (r *Recorder) RecordLastPrice(pair string, price float64) {
	r.lastPrice.WithLabelValues(pair).Set(price)
}

// SetQueueDepth reports the current recalc queue length.
func (r *Recorder) SetQueueDepth(n int) {
	r.queueDepth.Set(float64(n))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.duration.WithLabelValues(op).Observe(seconds)
}

// RecordSignal records one emitted zone signal.
func (r *Recorder) RecordSignal(pair, kind string) {
	r.signalsTotal.WithLabelValues(pair, kind).Inc()
}

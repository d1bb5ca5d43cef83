package metrics

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	completionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "promptlab_completion_duration_seconds",
			Help:    "Completion request duration in seconds by variant",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 0.1s to ~100s
		},
		[]string{"variant", "status"},
	)

	variantResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptlab_variant_results_total",
			Help: "Total number of variant results by outcome",
		},
		[]string{"variant", "status"}, // status: "success"/"error"
	)

	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptlab_runs_total",
			Help: "Total number of comparison runs by outcome",
		},
		[]string{"outcome"}, // "completed", "empty_input"
	)

	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "promptlab_run_duration_seconds",
			Help:    "Duration of a full comparison run in seconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10), // 0.5s to ~500s
		},
	)
)

// Run outcomes
const (
	OutcomeCompleted  = "completed"
	OutcomeEmptyInput = "empty_input"
)

// Collector provides convenience methods for recording metrics
type Collector struct {
	logger *slog.Logger
}

// NewCollector creates a new metrics collector
func NewCollector(logger *slog.Logger) *Collector {
	return &Collector{
		logger: logger,
	}
}

// RecordCompletion records a completion request for one variant
func (c *Collector) RecordCompletion(variant string, duration time.Duration, success bool) {
	status := statusLabel(success)
	completionDuration.WithLabelValues(variant, status).Observe(duration.Seconds())
	variantResults.WithLabelValues(variant, status).Inc()
}

// RecordRun records a finished comparison run
func (c *Collector) RecordRun(outcome string, duration time.Duration) {
	runsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeCompleted {
		runDuration.Observe(duration.Seconds())
	}
	c.logger.Debug("Recorded run metrics", "outcome", outcome, "duration", duration)
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

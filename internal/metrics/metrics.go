package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScanCyclesTotal counts poll cycles by outcome
	ScanCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "indexer_scan_cycles_total",
			Help: "Total number of scan cycles",
		},
		[]string{"outcome"},
	)

	// ScanDuration tracks scan cycle duration
	ScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "indexer_scan_duration_seconds",
			Help:    "Scan cycle duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// EventsProjected counts projected events by type
	EventsProjected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "indexer_events_projected_total",
			Help: "Total number of events projected into the index",
		},
		[]string{"event_type"},
	)

	// EventsSkipped counts log entries dropped without projection
	EventsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "indexer_events_skipped_total",
			Help: "Total number of log entries skipped",
		},
		[]string{"reason"},
	)

	// OrderingViolations counts events referencing a roast the index has
	// never seen
	OrderingViolations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "indexer_ordering_violations_total",
			Help: "Total number of events referencing an unknown roast",
		},
	)

	// ErrorsTotal counts errors by component and type
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "indexer_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// LastProcessedHeight tracks the persisted cursor height
	LastProcessedHeight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "indexer_last_processed_height",
			Help: "Last fully projected block height",
		},
	)

	// WindowSize tracks the current log query window size
	WindowSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "indexer_window_size_blocks",
			Help: "Current block range requested per log query",
		},
	)
)

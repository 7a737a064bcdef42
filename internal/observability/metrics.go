package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TurnsTotal counts processed conversation turns by the stage the
	// session ended the turn in.
	TurnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hireflow_turns_total",
			Help: "Total number of processed conversation turns",
		},
		[]string{"stage"},
	)

	// ExtractionDuration observes end-to-end hybrid extraction latency.
	ExtractionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hireflow_extraction_duration_seconds",
			Help:    "Hybrid entity extraction duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// LLMFallbacks counts turns where the model pass failed and the turn
	// degraded to rule-only extraction.
	LLMFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hireflow_llm_fallbacks_total",
			Help: "Turns degraded to rule-only extraction",
		},
	)

	// StageTransitions counts stage machine transitions.
	StageTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hireflow_stage_transitions_total",
			Help: "Total number of stage transitions",
		},
		[]string{"from", "to"},
	)

	// SessionsExpired counts sessions removed by the expiry sweeper.
	SessionsExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hireflow_sessions_expired_total",
			Help: "Sessions removed by the expiry sweeper",
		},
	)

	initOnce sync.Once
)

// InitMetrics registers the Prometheus metrics. Safe to call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			TurnsTotal,
			ExtractionDuration,
			LLMFallbacks,
			StageTransitions,
			SessionsExpired,
		)
	})
}

// MetricsHandler returns an HTTP handler for Prometheus scraping.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

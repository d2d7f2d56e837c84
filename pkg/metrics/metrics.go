// Package metrics exposes Prometheus instruments for the risk evaluators.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "risk_engine"

var (
	// Decision metrics
	decisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "evaluator",
			Name:      "decisions_total",
			Help:      "Evaluator verdicts by outcome",
		},
		[]string{"evaluator", "outcome"},
	)

	evaluationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "evaluator",
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of a single evaluation",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"evaluator"},
	)

	// Probe metrics
	probeFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "probe",
			Name:      "fallbacks_total",
			Help:      "Signal probes that failed open or were skipped after a read error",
		},
		[]string{"probe"},
	)

	// Alert metrics
	alertsRaisedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "alerts",
			Name:      "raised_total",
			Help:      "Alerts raised by rule and severity",
		},
		[]string{"rule", "severity"},
	)

	alertSinkFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "alerts",
			Name:      "sink_failures_total",
			Help:      "Alert sink stage failures (dedup, persist, publish)",
		},
		[]string{"stage"},
	)

	alertsDeduplicatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "alerts",
			Name:      "deduplicated_total",
			Help:      "Alerts dropped because the same key was already claimed",
		},
	)
)

// Outcome labels.
const (
	OutcomeCompliant   = "compliant"
	OutcomeBlocked     = "blocked"
	OutcomeAllowed     = "allowed"
	OutcomeDenied      = "denied"
	OutcomeUnavailable = "unavailable"
	OutcomeAssessed    = "assessed"
	OutcomeNotFound    = "not_found"
)

// Alert sink stages.
const (
	StageDedup   = "dedup"
	StagePersist = "persist"
	StagePublish = "publish"
)

// RecordDecision counts an evaluator verdict and its latency.
func RecordDecision(evaluator, outcome string, started time.Time) {
	decisionsTotal.WithLabelValues(evaluator, outcome).Inc()
	evaluationDuration.WithLabelValues(evaluator).Observe(time.Since(started).Seconds())
}

// RecordProbeFallback counts a probe that contributed nothing because of an error.
func RecordProbeFallback(probe string) {
	probeFallbacksTotal.WithLabelValues(probe).Inc()
}

// RecordAlertRaised counts an alert handed to the sink.
func RecordAlertRaised(rule, severity string) {
	alertsRaisedTotal.WithLabelValues(rule, severity).Inc()
}

// RecordAlertSinkFailure counts a failed sink stage.
func RecordAlertSinkFailure(stage string) {
	alertSinkFailuresTotal.WithLabelValues(stage).Inc()
}

// RecordAlertDeduplicated counts an alert suppressed by the dedup window.
func RecordAlertDeduplicated() {
	alertsDeduplicatedTotal.Inc()
}

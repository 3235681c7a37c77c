// Package metrics exposes the prometheus collectors instrumenting the
// control loop: reachability analysis outcomes, validation pass rates, and
// healing attempts, per SPEC_FULL.md's observability section.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReachabilityChecks counts Analyze() calls by admitted/rejected outcome.
	ReachabilityChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "autocoder",
		Subsystem: "reachability",
		Name:      "checks_total",
		Help:      "Boundary-termination analyzer runs, labeled by outcome.",
	}, []string{"outcome"})

	// ReachabilityErrors counts VR1 validation errors by category and type.
	ReachabilityErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "autocoder",
		Subsystem: "reachability",
		Name:      "errors_total",
		Help:      "VR1 validation errors, labeled by category and type.",
	}, []string{"category", "type"})

	// ReachabilityHops observes the path length of successful terminations.
	ReachabilityHops = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "autocoder",
		Subsystem: "reachability",
		Name:      "path_hops",
		Help:      "Hop count of terminated ingress paths.",
		Buckets:   prometheus.LinearBuckets(0, 1, 11),
	})

	// ValidationDuration observes C4 integration validation wall time per
	// component, labeled by pass/fail outcome.
	ValidationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "autocoder",
		Subsystem: "validate",
		Name:      "component_duration_seconds",
		Help:      "Integration validation duration per component.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})

	// HealingAttempts counts self-healing attempts, labeled by fix type and
	// outcome (applied/skipped/failed).
	HealingAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "autocoder",
		Subsystem: "heal",
		Name:      "attempts_total",
		Help:      "Self-healing fix attempts, labeled by fix type and outcome.",
	}, []string{"fix_type", "outcome"})

	// OrchestratorIterations observes how many outer loop iterations a
	// blueprint needed before converging or circuit-breaking.
	OrchestratorIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "autocoder",
		Subsystem: "orchestrator",
		Name:      "iterations",
		Help:      "Outer control-loop iterations per blueprint run.",
		Buckets:   prometheus.LinearBuckets(0, 1, 10),
	})
)

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestReachabilityChecksIncrementsByOutcome(t *testing.T) {
	ReachabilityChecks.WithLabelValues("admitted").Inc()
	if got := testutil.ToFloat64(ReachabilityChecks.WithLabelValues("admitted")); got < 1 {
		t.Errorf("expected ReachabilityChecks{admitted} to be at least 1, got %v", got)
	}
}

func TestReachabilityErrorsLabeled(t *testing.T) {
	ReachabilityErrors.WithLabelValues("ingress", "no_boundary_ingress").Inc()
	got := testutil.ToFloat64(ReachabilityErrors.WithLabelValues("ingress", "no_boundary_ingress"))
	if got < 1 {
		t.Errorf("expected ReachabilityErrors{ingress,no_boundary_ingress} to be at least 1, got %v", got)
	}
}

func TestHealingAttemptsRequiresTwoLabels(t *testing.T) {
	HealingAttempts.WithLabelValues("patch", "applied").Inc()
	got := testutil.ToFloat64(HealingAttempts.WithLabelValues("patch", "applied"))
	if got < 1 {
		t.Errorf("expected HealingAttempts{patch,applied} to be at least 1, got %v", got)
	}
}

func TestValidationDurationObservesWithoutPanicking(t *testing.T) {
	ValidationDuration.WithLabelValues("pass").Observe(0.25)
}

func TestOrchestratorIterationsObservesWithoutPanicking(t *testing.T) {
	OrchestratorIterations.Observe(3)
}

func TestReachabilityHopsObservesWithoutPanicking(t *testing.T) {
	ReachabilityHops.Observe(4)
}

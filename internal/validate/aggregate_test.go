package validate

import (
	"os"
	"testing"
)

func TestAggregateEmptyResults(t *testing.T) {
	r := Aggregate(nil)
	if r.PassRate != 0 || r.Passed {
		t.Errorf("expected zero-value report for no results, got %+v", r)
	}
	if r.Threshold != DefaultThreshold {
		t.Errorf("expected default threshold %v, got %v", DefaultThreshold, r.Threshold)
	}
}

func TestAggregatePassRate(t *testing.T) {
	results := []ComponentResult{
		{Component: "a", Passed: true},
		{Component: "b", Passed: true},
		{Component: "c", Passed: false},
		{Component: "d", Passed: true},
	}
	r := Aggregate(results)
	if r.PassRate != 0.75 {
		t.Errorf("expected pass rate 0.75, got %v", r.PassRate)
	}
	if r.Passed {
		t.Errorf("expected 0.75 below default threshold %v to fail", DefaultThreshold)
	}
}

func TestAggregateBelowThresholdFails(t *testing.T) {
	results := []ComponentResult{
		{Component: "a", Passed: true},
		{Component: "b", Passed: false},
		{Component: "c", Passed: false},
	}
	r := Aggregate(results)
	if r.Passed {
		t.Errorf("expected pass rate %v below default threshold %v to fail", r.PassRate, DefaultThreshold)
	}
}

func TestAggregateRespectsEnvThreshold(t *testing.T) {
	t.Setenv("VALIDATION_THRESHOLD", "0.5")
	results := []ComponentResult{
		{Component: "a", Passed: true},
		{Component: "b", Passed: false},
	}
	r := Aggregate(results)
	if r.Threshold != 0.5 {
		t.Errorf("expected threshold overridden to 0.5, got %v", r.Threshold)
	}
	if !r.Passed {
		t.Errorf("expected pass rate 0.5 to clear threshold 0.5")
	}
}

func TestAggregateIgnoresInvalidEnvThreshold(t *testing.T) {
	if err := os.Setenv("VALIDATION_THRESHOLD", "not-a-number"); err != nil {
		t.Fatalf("setenv failed: %v", err)
	}
	defer os.Unsetenv("VALIDATION_THRESHOLD")

	r := Aggregate([]ComponentResult{{Passed: true}})
	if r.Threshold != DefaultThreshold {
		t.Errorf("expected invalid env threshold to fall back to default, got %v", r.Threshold)
	}
}

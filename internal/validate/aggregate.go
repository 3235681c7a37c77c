package validate

import (
	"os"
	"strconv"
)

// DefaultThreshold is the fractional system-wide pass rate a blueprint must
// clear, overridable via VALIDATION_THRESHOLD.
const DefaultThreshold = 0.8

// Report is the system-wide validation outcome for one generation pass.
type Report struct {
	Results   []ComponentResult
	PassRate  float64
	Threshold float64
	Passed    bool
}

// Aggregate computes the system-wide pass rate across all component
// results and compares it against the configured threshold (env
// VALIDATION_THRESHOLD, falling back to DefaultThreshold), per spec.md
// §4.4 and §6.
func Aggregate(results []ComponentResult) Report {
	threshold := DefaultThreshold
	if v := os.Getenv("VALIDATION_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			threshold = f
		}
	}

	if len(results) == 0 {
		return Report{Threshold: threshold}
	}

	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	rate := float64(passed) / float64(len(results))

	return Report{
		Results:   results,
		PassRate:  rate,
		Threshold: threshold,
		Passed:    rate >= threshold,
	}
}

package llm

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryConfig holds retry configuration for LLM requests.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts per endpoint.
	MaxAttempts int

	// InitialInterval is the first retry backoff.
	InitialInterval time.Duration

	// Multiplier is applied to the backoff on each retry.
	Multiplier float64

	// MaxInterval caps the backoff.
	MaxInterval time.Duration
}

// DefaultRetryConfig returns sensible retry defaults for LLM requests.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:     3,
		InitialInterval: 2 * time.Second,
		Multiplier:      2.0,
		MaxInterval:     30 * time.Second,
	}
}

// newBackOff builds an exponential backoff policy bounded to MaxAttempts-1
// retries (the first attempt is not a retry). Jitter is backoff/v4's default
// RandomizationFactor, which prevents synchronized retries across clients.
func (c RetryConfig) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.InitialInterval
	b.Multiplier = c.Multiplier
	b.MaxInterval = c.MaxInterval
	b.MaxElapsedTime = 0 // bounded externally by MaxAttempts via WithMaxRetries
	return backoff.WithMaxRetries(b, uint64(maxInt(0, c.MaxAttempts-1)))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

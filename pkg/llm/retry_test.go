package llm

import (
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
)

func TestDefaultRetryConfigValues(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.InitialInterval != 2*time.Second {
		t.Errorf("InitialInterval = %v, want 2s", cfg.InitialInterval)
	}
}

func TestNewBackOffBoundsRetriesToMaxAttemptsMinusOne(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, InitialInterval: time.Millisecond, Multiplier: 2, MaxInterval: time.Millisecond}
	b := cfg.newBackOff()

	attempts := 0
	err := backoff.Retry(func() error {
		attempts++
		return backoff.Permanent(nil)
	}, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected the operation to run once when it succeeds immediately, got %d", attempts)
	}

	attempts = 0
	failing := func() error { attempts++; return errAlways }
	_ = backoff.Retry(failing, cfg.newBackOff())
	if attempts != cfg.MaxAttempts {
		t.Errorf("attempts = %d, want MaxAttempts (%d) total tries (1 + MaxAttempts-1 retries)", attempts, cfg.MaxAttempts)
	}
}

func TestMaxIntHelper(t *testing.T) {
	if maxInt(0, 2) != 2 {
		t.Error("maxInt(0, 2) should be 2")
	}
	if maxInt(5, 2) != 5 {
		t.Error("maxInt(5, 2) should be 5")
	}
}

var errAlways = errPermanentTestSentinel("always fails")

type errPermanentTestSentinel string

func (e errPermanentTestSentinel) Error() string { return string(e) }

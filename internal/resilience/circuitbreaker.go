// Package resilience provides runtime fail-soft seams: a circuit breaker
// (wrapped around LLM calls by internal/codegen) and a bulkhead. The
// circuit breaker is disabled by default, grounded on
// validation/resilience_patterns.py's CircuitBreakerConfig, which ships
// with enabled=false so that failures surface immediately rather than being
// masked by fallback behavior. The bulkhead has no disabled mode.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// CircuitState is one of the three circuit breaker states.
type CircuitState string

const (
	StateClosed   CircuitState = "closed"
	StateOpen     CircuitState = "open"
	StateHalfOpen CircuitState = "half_open"
)

// CircuitBreakerConfig configures a CircuitBreaker. Disabled by default:
// when Enabled is false, Call runs fn directly with no bookkeeping.
type CircuitBreakerConfig struct {
	Enabled             bool
	FailureThreshold    int
	RecoveryTimeout     time.Duration
	HalfOpenMaxCalls    int
}

// DefaultCircuitBreakerConfig mirrors the teacher's fail-fast defaults:
// disabled, and if enabled, trips after a single failure with minimal
// half-open probing.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          false,
		FailureThreshold: 1,
		RecoveryTimeout:  60 * time.Second,
		HalfOpenMaxCalls: 1,
	}
}

// ErrCircuitOpen is returned by Call when the breaker is open.
var ErrCircuitOpen = errors.New("resilience: circuit breaker open")

// CircuitBreaker wraps a named operation with trip/recover bookkeeping.
type CircuitBreaker struct {
	name   string
	config CircuitBreakerConfig
	logger *slog.Logger

	mu            sync.Mutex
	state         CircuitState
	failureCount  int
	halfOpenCalls int
	lastFailure   time.Time
}

// NewCircuitBreaker creates a breaker for the named operation.
func NewCircuitBreaker(name string, config CircuitBreakerConfig, logger *slog.Logger) *CircuitBreaker {
	if logger == nil {
		logger = slog.Default()
	}
	return &CircuitBreaker{
		name:   name,
		config: config,
		logger: logger,
		state:  StateClosed,
	}
}

// Call executes fn under circuit breaker protection. When the breaker is
// disabled, fn runs unconditionally.
func (cb *CircuitBreaker) Call(ctx context.Context, fn func(context.Context) error) error {
	if !cb.config.Enabled {
		return fn(ctx)
	}

	if !cb.allow() {
		return fmt.Errorf("%w: %s", ErrCircuitOpen, cb.name)
	}

	err := fn(ctx)
	cb.record(err)
	return err
}

func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if time.Since(cb.lastFailure) >= cb.config.RecoveryTimeout {
			cb.state = StateHalfOpen
			cb.halfOpenCalls = 0
			cb.logger.Debug("circuit breaker half-open", slog.String("name", cb.name))
		} else {
			return false
		}
	case StateHalfOpen:
		if cb.halfOpenCalls >= cb.config.HalfOpenMaxCalls {
			return false
		}
		cb.halfOpenCalls++
	}
	return true
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		cb.failureCount = 0
		if cb.state != StateClosed {
			cb.logger.Info("circuit breaker closed", slog.String("name", cb.name))
		}
		cb.state = StateClosed
		return
	}

	cb.failureCount++
	cb.lastFailure = time.Now()
	if cb.state == StateHalfOpen || cb.failureCount >= cb.config.FailureThreshold {
		if cb.state != StateOpen {
			cb.logger.Warn("circuit breaker opened", slog.String("name", cb.name), slog.Int("failures", cb.failureCount))
		}
		cb.state = StateOpen
	}
}

// State returns the breaker's current state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Reset forces the breaker back to closed.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.state = StateClosed
	cb.failureCount = 0
	cb.halfOpenCalls = 0
}

package resilience

import (
	"context"
	"fmt"
)

// BulkheadConfig bounds concurrent calls through a Bulkhead, grounded on
// validation/resilience_patterns.py's BulkheadConfig.
type BulkheadConfig struct {
	MaxConcurrentCalls int
	QueueSize          int
}

// DefaultBulkheadConfig matches the teacher's defaults.
func DefaultBulkheadConfig() BulkheadConfig {
	return BulkheadConfig{MaxConcurrentCalls: 10, QueueSize: 100}
}

// Bulkhead limits the number of concurrent in-flight calls and the number
// of calls waiting for a slot. It has no enabled switch: every Call goes
// through both limits.
type Bulkhead struct {
	sem   chan struct{}
	queue chan struct{}
}

// NewBulkhead creates a bulkhead with the given config.
func NewBulkhead(config BulkheadConfig) *Bulkhead {
	return &Bulkhead{
		sem:   make(chan struct{}, config.MaxConcurrentCalls),
		queue: make(chan struct{}, config.QueueSize),
	}
}

// Call runs fn once a concurrency slot is available, respecting ctx
// cancellation and the bounded wait queue.
func (b *Bulkhead) Call(ctx context.Context, fn func(context.Context) error) error {
	select {
	case b.queue <- struct{}{}:
	default:
		return fmt.Errorf("resilience: bulkhead queue full")
	}

	select {
	case b.sem <- struct{}{}:
		<-b.queue
	case <-ctx.Done():
		<-b.queue
		return ctx.Err()
	}
	defer func() { <-b.sem }()

	return fn(ctx)
}

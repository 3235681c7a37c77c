package codegen

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/c360studio/autocoder/internal/blueprint"
)

// Job is one component awaiting generation.
type Job struct {
	Spec        blueprint.ComponentSpec
	Skeleton    string
	Description string
}

// RunPool runs Emit for every job, capped at maxConcurrent in flight at
// once via errgroup.Group.SetLimit. Grounded on
// processor/ast-indexer/component.go's one-goroutine-per-watch-event
// pattern, generalized to one goroutine per pending component bounded by a
// semaphore rather than an unbounded fan-out. A single component's failure
// does not cancel its siblings — generation is skip-not-abort per
// spec.md §4.3 — so Emit's own error is captured into the result slot
// instead of being returned to the group.
func (e *Emitter) RunPool(ctx context.Context, jobs []Job, maxConcurrent int) []*Result {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	results := make([]*Result, len(jobs))
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			r, err := e.Emit(gctx, job.Spec, job.Skeleton, job.Description)
			if err != nil {
				results[i] = &Result{Component: job.Spec.Name, Skipped: true, Reason: err.Error()}
				return nil
			}
			results[i] = r
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Package orchestrator implements the healing orchestrator (C6): the
// bounded fixed-point controller that drives generation, validation, and
// healing to convergence, grounded on
// blueprint_language/ast_self_healing.py's SelfHealingSystem (the
// _heal_failed_components / _heal_single_component outer loop) and
// generalized from a single-pass healer to the full generate-validate-heal
// cycle spec.md §4.6 describes.
package orchestrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/c360studio/autocoder/internal/blueprint"
	"github.com/c360studio/autocoder/internal/codegen"
	"github.com/c360studio/autocoder/internal/heal"
	"github.com/c360studio/autocoder/internal/metrics"
	"github.com/c360studio/autocoder/internal/reachability"
	"github.com/c360studio/autocoder/internal/recipe"
	"github.com/c360studio/autocoder/internal/validate"
	"github.com/c360studio/autocoder/pkg/llm"
)

// DefaultMaxHealingAttempts bounds per-component healing attempts, overall
// loop iterations (cap+1), and is the single configuration parameter the
// loop needs beyond the blueprint itself.
const DefaultMaxHealingAttempts = 3

// Loop holds the per-run state spec.md §4.6 and §9 both call out as
// orchestrator-local, not shared globals: attempt counts and source-hash
// history per component, scoped to one Run call.
type Loop struct {
	emitter           *codegen.Emitter
	writer            *codegen.Writer
	logger            *slog.Logger
	maxHealingAttempts int

	attempts map[string]int
	history  map[string][]string
}

// New constructs a Loop. outDir/systemName locate the generated components
// directory; client backs the LLM-based emitter used for both initial
// generation and regeneration-as-last-resort.
func New(client *llm.Client, outDir, systemName string, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		emitter:            codegen.NewEmitter(client, logger),
		writer:             codegen.NewWriter(outDir, systemName),
		logger:             logger,
		maxHealingAttempts: DefaultMaxHealingAttempts,
		attempts:           make(map[string]int),
		history:            make(map[string][]string),
	}
}

// RunResult is the outcome of one full orchestrator run.
type RunResult struct {
	Admitted      bool
	Report        validate.Report
	Iterations    int
	CircuitBroken []string
}

// Run executes the bounded fixed-point loop from spec.md §4.6: generate
// missing components, validate, and on failure heal or regenerate, up to
// maxHealingAttempts+1 outer iterations.
func (l *Loop) Run(ctx context.Context, bp *blueprint.Blueprint) (RunResult, error) {
	reach := reachability.Analyze(bp)
	if !reach.Admitted {
		return RunResult{}, fmt.Errorf("orchestrator: blueprint rejected by reachability analysis")
	}

	if err := l.generateMissing(ctx, bp); err != nil {
		return RunResult{}, err
	}

	var report validate.Report
	var circuitBroken []string
	maxIterations := l.maxHealingAttempts + 1
	iterations := 0

	for iteration := 0; iteration < maxIterations; iteration++ {
		iterations = iteration + 1
		registered := l.registeredSet()

		r, err := validate.RunAll(bp, l.writer.Dir(), registered)
		if err != nil {
			return RunResult{}, fmt.Errorf("orchestrator: validation failed: %w", err)
		}
		report = r

		if report.Passed {
			metrics.OrchestratorIterations.Observe(float64(iteration + 1))
			return RunResult{Admitted: true, Report: report, Iterations: iteration + 1}, nil
		}

		madeProgress := false
		var stillStuck []string

		for _, cr := range report.Results {
			if cr.Passed {
				continue
			}
			spec, ok := bp.ComponentByName(cr.Component)
			if !ok {
				continue
			}

			if l.attempts[cr.Component] >= l.maxHealingAttempts {
				circuitBroken = append(circuitBroken, cr.Component)
				continue
			}

			source, err := l.writer.ReadComponent(cr.Component)
			if err != nil {
				stillStuck = append(stillStuck, cr.Component)
				continue
			}

			if l.isStuck(cr.Component, source) {
				stillStuck = append(stillStuck, cr.Component)
				continue
			}

			l.attempts[cr.Component]++
			l.history[cr.Component] = append(l.history[cr.Component], contentHash(source))

			structName := recipe.ClassName(spec.Type, spec.Name)
			outcome, err := heal.Attempt(l.writer.ComponentPath(cr.Component), source, "components", structName, cr)
			if err != nil || outcome.Unchanged {
				stillStuck = append(stillStuck, cr.Component)
				continue
			}

			if err := l.writer.WriteComponent(cr.Component, outcome.Source); err != nil {
				return RunResult{}, fmt.Errorf("orchestrator: write healed component %q: %w", cr.Component, err)
			}
			healOutcome := "applied"
			if outcome.UsedFallback {
				healOutcome = "fallback"
			}
			metrics.HealingAttempts.WithLabelValues("patch", healOutcome).Inc()
			madeProgress = true

			if l.attempts[cr.Component] >= l.maxHealingAttempts {
				if err := l.regenerate(ctx, *spec); err != nil {
					l.logger.Warn("regeneration failed", "component", cr.Component, "error", err)
				} else {
					madeProgress = true
				}
			}
		}

		if !madeProgress || len(stillStuck) == len(report.Results)-len(circuitBroken) {
			metrics.OrchestratorIterations.Observe(float64(iteration + 1))
			break
		}
	}

	return RunResult{Admitted: false, Report: report, Iterations: iterations, CircuitBroken: circuitBroken}, nil
}

// isStuck applies spec.md §4.6's two progress checks: an exact repeat of a
// prior attempt's source (progress check A), or a three-back oscillation
// (progress check B).
func (l *Loop) isStuck(component, source string) bool {
	hash := contentHash(source)
	hist := l.history[component]
	for _, h := range hist {
		if h == hash {
			return true
		}
	}
	if len(hist) >= 3 && hist[len(hist)-1] == hist[len(hist)-3] {
		return true
	}
	return false
}

func contentHash(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// generateMissing emits any component named in the blueprint that has no
// source file yet under the components directory, via C2 (structural
// skeleton) then C3 (LLM-backed body emission).
func (l *Loop) generateMissing(ctx context.Context, bp *blueprint.Blueprint) error {
	existing, err := l.writer.ExistingComponents()
	if err != nil {
		return fmt.Errorf("orchestrator: list existing components: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	var jobs []codegen.Job
	var entries []codegen.ComponentEntry
	for _, spec := range bp.Components {
		entries = append(entries, codegen.NewComponentEntry(spec.Name, spec.Type))
		if have[spec.Name] {
			continue
		}
		skeleton, err := recipe.Expand(spec)
		if err != nil {
			return fmt.Errorf("orchestrator: expand recipe for %q: %w", spec.Name, err)
		}
		jobs = append(jobs, codegen.Job{Spec: spec, Skeleton: skeleton, Description: spec.Description})
	}

	if len(jobs) > 0 {
		results := l.emitter.RunPool(ctx, jobs, 4)
		for _, r := range results {
			if r.Skipped {
				l.logger.Warn("component generation skipped", "component", r.Component, "reason", r.Reason)
				continue
			}
			if err := l.writer.WriteComponent(r.Component, r.Source); err != nil {
				return fmt.Errorf("orchestrator: write component %q: %w", r.Component, err)
			}
		}
	}

	return l.writer.WriteRegistry(entries)
}

// regenerate invokes C3 in regeneration mode: discard the component's
// current source and emit a fresh one from its skeleton, the last resort
// after a component has exhausted its healing attempts.
func (l *Loop) regenerate(ctx context.Context, spec blueprint.ComponentSpec) error {
	skeleton, err := recipe.Expand(spec)
	if err != nil {
		return err
	}
	result, err := l.emitter.Emit(ctx, spec, skeleton, spec.Description)
	if err != nil {
		return err
	}
	if result.Skipped {
		return fmt.Errorf("regeneration skipped: %s", result.Reason)
	}
	return l.writer.WriteComponent(spec.Name, result.Source)
}

// registeredSet reports which blueprint components currently have a
// generated source file, the input validate.RunAll's contract phase needs.
func (l *Loop) registeredSet() map[string]bool {
	existing, err := l.writer.ExistingComponents()
	if err != nil {
		return nil
	}
	out := make(map[string]bool, len(existing))
	for _, name := range existing {
		out[name] = true
	}
	return out
}

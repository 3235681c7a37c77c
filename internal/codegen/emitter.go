// Package codegen implements the LLM-backed code emitter (C3): it turns a
// component's recipe skeleton plus its blueprint description into a
// complete Go source file implementing the component's primitive interface.
package codegen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/c360studio/autocoder/internal/blueprint"
	"github.com/c360studio/autocoder/internal/recipe"
	"github.com/c360studio/autocoder/internal/resilience"
	"github.com/c360studio/autocoder/pkg/llm"
)

// Emitter drives C3: for each component, prompt the LLM to fill in the
// skeleton's stub primary method with real behavior.
type Emitter struct {
	client  *llm.Client
	breaker *resilience.CircuitBreaker
	logger  *slog.Logger
}

// NewEmitter builds an Emitter around an already-configured LLM client.
// The circuit breaker is disabled by default, per spec.md §4.3/§9.
func NewEmitter(client *llm.Client, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{
		client:  client,
		breaker: resilience.NewCircuitBreaker("codegen", resilience.DefaultCircuitBreakerConfig(), logger),
		logger:  logger,
	}
}

// Result is one component's emitted source.
type Result struct {
	Component string
	Source    string
	Skipped   bool
	Reason    string
}

// Emit generates source for a single component. skeleton is the recipe
// expander's structural output; description is the (possibly
// URL-enriched) behavioral description folded into the prompt.
func (e *Emitter) Emit(ctx context.Context, spec blueprint.ComponentSpec, skeleton, description string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, componentTimeout)
	defer cancel()

	rec, err := recipe.Get(spec.Type)
	if err != nil {
		return nil, fmt.Errorf("codegen: %w", err)
	}

	prompt := buildPrompt(spec, rec, skeleton, description)

	temperature := 0.2
	var resp *llm.Response
	err = e.breaker.Call(ctx, func(ctx context.Context) error {
		r, cerr := e.client.Complete(ctx, llm.Request{
			Capability: "generate",
			Messages: []llm.Message{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: prompt},
			},
			Temperature: &temperature,
			MaxTokens:   4096,
		})
		if cerr != nil {
			return cerr
		}
		resp = r
		return nil
	})

	if err != nil {
		if ctx.Err() != nil {
			e.logger.Warn("component generation timed out, skipping", slog.String("component", spec.Name))
			return &Result{Component: spec.Name, Skipped: true, Reason: "timeout"}, nil
		}
		return nil, fmt.Errorf("codegen: component %q: %w", spec.Name, err)
	}

	source := extractGoSource(resp.Content)
	return &Result{Component: spec.Name, Source: source}, nil
}

const systemPrompt = `You are generating the body of a single Go source file for one component of a data-processing pipeline. You will be given a structural skeleton (package, imports, struct, constructor, stub method) and a behavioral description. Return ONLY the complete Go source file with the stub method body filled in to match the description. Do not change the struct fields, method signatures, or package name.`

func buildPrompt(spec blueprint.ComponentSpec, rec recipe.Recipe, skeleton, description string) string {
	return fmt.Sprintf(
		"Component: %s\nType: %s\nPrimitive: %s\nDescription: %s\n\nSkeleton:\n```go\n%s\n```\n",
		spec.Name, spec.Type, rec.BasePrimitive, description, skeleton,
	)
}

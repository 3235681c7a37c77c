package codegen

import (
	"context"
	"testing"

	"github.com/c360studio/autocoder/internal/blueprint"
	"github.com/c360studio/autocoder/pkg/llm"
	"github.com/c360studio/autocoder/pkg/model"
)

func emptyEmitter() *Emitter {
	client := llm.NewClient(model.NewRegistry(nil, nil))
	return NewEmitter(client, nil)
}

func TestRunPoolMarksEveryJobSkippedWithoutModels(t *testing.T) {
	e := emptyEmitter()
	jobs := []Job{
		{Spec: blueprint.ComponentSpec{Name: "orders-api", Type: "APIEndpoint"}, Skeleton: "package components\n"},
		{Spec: blueprint.ComponentSpec{Name: "orders-store", Type: "Store"}, Skeleton: "package components\n"},
	}

	results := e.RunPool(context.Background(), jobs, 2)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for i, r := range results {
		if r == nil {
			t.Fatalf("result %d is nil", i)
		}
		if !r.Skipped {
			t.Errorf("expected job %d to be skipped with no models configured, got %+v", i, r)
		}
		if r.Component != jobs[i].Spec.Name {
			t.Errorf("result %d component = %q, want %q", i, r.Component, jobs[i].Spec.Name)
		}
	}
}

func TestRunPoolDefaultsConcurrencyToOne(t *testing.T) {
	e := emptyEmitter()
	jobs := []Job{
		{Spec: blueprint.ComponentSpec{Name: "orders-api", Type: "APIEndpoint"}},
	}
	results := e.RunPool(context.Background(), jobs, 0)
	if len(results) != 1 || results[0] == nil {
		t.Fatalf("expected one non-nil result even with maxConcurrent=0, got %+v", results)
	}
}

func TestRunPoolEmptyJobs(t *testing.T) {
	e := emptyEmitter()
	results := e.RunPool(context.Background(), nil, 4)
	if len(results) != 0 {
		t.Errorf("expected no results for an empty job list, got %+v", results)
	}
}

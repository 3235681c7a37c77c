package heal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/c360studio/autocoder/internal/validate"
)

func TestAttemptAppliesPatchesAndBacksUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.go")
	src := `package components

import "context"

type GeneratedStore_orders struct{}

func (c *GeneratedStore_orders) Setup(ctx context.Context) error { return nil }
`
	result := validate.ComponentResult{
		Phases: []validate.PhaseResult{
			{Phase: validate.PhaseContract, Passed: false},
		},
	}

	outcome, err := Attempt(path, src, "components", "GeneratedStore_orders", result)
	if err != nil {
		t.Fatalf("Attempt failed: %v", err)
	}
	if outcome.Unchanged {
		t.Fatal("expected a change: Cleanup method was missing")
	}
	if outcome.PatchesKept == 0 {
		t.Error("expected at least one patch to be kept")
	}
	if !strings.Contains(outcome.Source, "Cleanup") {
		t.Errorf("expected healed source to add Cleanup method, got: %s", outcome.Source)
	}

	backup, err := os.ReadFile(path + ".backup")
	if err != nil {
		t.Fatalf("expected backup to be written: %v", err)
	}
	if string(backup) != src {
		t.Errorf("backup content mismatch: got %q want %q", backup, src)
	}
}

func TestAttemptUnchangedWhenNothingToFix(t *testing.T) {
	src := `package components

import "context"

type GeneratedStore_orders struct{}

func (c *GeneratedStore_orders) Setup(ctx context.Context) error   { return nil }
func (c *GeneratedStore_orders) Cleanup(ctx context.Context) error { return nil }
`
	result := validate.ComponentResult{
		Phases: []validate.PhaseResult{{Phase: validate.PhaseContract, Passed: true}},
	}
	outcome, err := Attempt(filepath.Join(t.TempDir(), "orders.go"), src, "components", "GeneratedStore_orders", result)
	if err != nil {
		t.Fatalf("Attempt failed: %v", err)
	}
	if !outcome.Unchanged {
		t.Error("expected no change when validation already passes")
	}
}

func TestAttemptRejectsUnparsableInput(t *testing.T) {
	_, err := Attempt(filepath.Join(t.TempDir(), "orders.go"), "not go code {{{", "components", "X", validate.ComponentResult{})
	if err == nil {
		t.Fatal("expected an error for source that fails to parse before healing")
	}
}

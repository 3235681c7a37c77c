package heal

import (
	"fmt"

	"github.com/c360studio/autocoder/internal/validate"
)

// Outcome is the result of one Attempt.
type Outcome struct {
	Source        string
	PatchesTried  int
	PatchesKept   int
	UsedFallback  bool
	Unchanged     bool
}

// Attempt runs one self-healing pass over a single component's generated
// source: locate the component struct, propose patches for every failed
// validation phase, apply the confidence-ordered selection, and recover
// from any resulting parse failure. When the patches change the source it
// writes a backup of the pre-healing source before returning the healed
// source, leaving the caller (internal/orchestrator) responsible for
// persisting the result and re-running validation.
func Attempt(path, source, packageName, structName string, result validate.ComponentResult) (Outcome, error) {
	parsed, err := Parse(source)
	if err != nil {
		return Outcome{}, fmt.Errorf("heal: component source does not parse before healing: %w", err)
	}

	candidates := Analyze(parsed, structName, result)
	selected := SelectPatches(candidates)
	if len(selected) == 0 {
		return Outcome{Source: source, Unchanged: true}, nil
	}

	healed := ApplyPatches(source, selected)
	if healed == source {
		return Outcome{Source: source, PatchesTried: len(candidates), Unchanged: true}, nil
	}

	if err := WriteBackup(path, source); err != nil {
		return Outcome{}, err
	}

	_, recovered, fallback := Recover(healed, packageName, structName)

	return Outcome{
		Source:       recovered,
		PatchesTried: len(candidates),
		PatchesKept:  len(selected),
		UsedFallback: fallback,
	}, nil
}

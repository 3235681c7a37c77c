package heal

import (
	"fmt"
	"strings"

	"github.com/c360studio/autocoder/internal/codegen"
	"github.com/c360studio/autocoder/internal/validate"
)

// Analyze inspects a component's validation failure and proposes a set of
// candidate patches, mirroring
// ast_self_healing.py's analyze_component_failures: contract failures
// produce missing-method fixes (Setup/Cleanup), and functional failures
// whose detail names a symbol from the curated import table produce import
// fixes.
func Analyze(parsed *Parsed, structName string, result validate.ComponentResult) []Patch {
	var patches []Patch

	ts, found := parsed.IdentifyComponentStruct(structName)
	if !found {
		return patches
	}
	// resolve the struct's own declared name, which may differ from
	// structName when IdentifyComponentStruct fell back to a fuzzy match
	declaredName := ts.Name.Name

	_, insertOffset, ok := parsed.FindStruct(declaredName)
	if !ok {
		return patches
	}

	for _, phase := range result.Phases {
		if phase.Passed {
			continue
		}
		switch phase.Phase {
		case validate.PhaseContract:
			patches = append(patches, contractFixes(parsed, declaredName, insertOffset)...)
		case validate.PhaseFunctional:
			patches = append(patches, importFixFromDetail(parsed, phase.Detail)...)
		}
	}

	return patches
}

// contractFixes proposes the structural fixes a failed contract phase
// implies: missing lifecycle methods, appended right after the struct
// declaration.
func contractFixes(parsed *Parsed, structName string, insertOffset int) []Patch {
	var patches []Patch

	if _, ok := parsed.FindMethod(structName, "Setup"); !ok {
		patches = append(patches, Patch{
			Fix:         FixAddMissingMethod,
			Confidence:  confidenceOf(FixAddMissingMethod),
			StartOffset: insertOffset,
			EndOffset:   insertOffset,
			Replacement: fmt.Sprintf("\n\nfunc (c *%s) Setup(ctx context.Context) error { return nil }\n", structName),
		})
	}
	if _, ok := parsed.FindMethod(structName, "Cleanup"); !ok {
		patches = append(patches, Patch{
			Fix:         FixAddMissingMethod,
			Confidence:  confidenceOf(FixAddMissingMethod),
			StartOffset: insertOffset,
			EndOffset:   insertOffset,
			Replacement: fmt.Sprintf("\n\nfunc (c *%s) Cleanup(ctx context.Context) error { return nil }\n", structName),
		})
	}

	return patches
}

// importFixFromDetail inspects a functional-phase failure detail for a Go
// "undefined: X" or "missing import" signature and, if the symbol is in the
// curated self-healing import table, proposes an add-import patch.
func importFixFromDetail(parsed *Parsed, detail string) []Patch {
	table := codegen.LoadSelfHealingImports()
	for symbol, importPath := range table {
		if !strings.Contains(detail, symbol) {
			continue
		}
		if _, ok := parsed.ImportSpecFor(importPath); ok {
			continue // already imported
		}
		insertAt := parsed.ImportBlockEnd()
		return []Patch{{
			Fix:         FixAddMissingImport,
			Confidence:  confidenceOf(FixAddMissingImport),
			StartOffset: insertAt,
			EndOffset:   insertAt,
			Replacement: fmt.Sprintf("\nimport %q\n", importPath),
		}}
	}
	return nil
}

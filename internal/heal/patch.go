package heal

import "sort"

// Patch is a single (region, replacement) textual edit, the unit
// ast_self_healing.py's _apply_single_fix ultimately expresses each fix as,
// confirmed by reading that function's line-offset string surgery.
type Patch struct {
	Fix         FixType
	Confidence  ConfidenceBand
	StartOffset int
	EndOffset   int
	Replacement string
}

// SelectPatches resolves overlapping patches by confidence band (a
// higher-confidence patch wins any region it shares with a lower-confidence
// one), realizing spec.md §4.5's strict application order as a selection
// rule rather than an application-order rule — text edits themselves must
// still be applied in a single reverse-offset pass to keep offsets valid.
func SelectPatches(patches []Patch) []Patch {
	sorted := append([]Patch(nil), patches...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Confidence != sorted[j].Confidence {
			return sorted[i].Confidence > sorted[j].Confidence
		}
		return sorted[i].StartOffset < sorted[j].StartOffset
	})

	var selected []Patch
	for _, p := range sorted {
		overlaps := false
		for _, s := range selected {
			if p.StartOffset < s.EndOffset && p.EndOffset > s.StartOffset {
				overlaps = true
				break
			}
		}
		if !overlaps {
			selected = append(selected, p)
		}
	}
	return selected
}

// ApplyPatches applies the selected patches to source in descending
// start-offset order so each replacement's offsets remain valid against
// the still-unmodified remainder of the string, per spec.md §4.5 and §9's
// explicit instruction to apply fixes in reverse source order.
func ApplyPatches(source string, patches []Patch) string {
	selected := SelectPatches(patches)
	sort.Slice(selected, func(i, j int) bool { return selected[i].StartOffset > selected[j].StartOffset })

	out := source
	for _, p := range selected {
		if p.StartOffset < 0 || p.EndOffset > len(out) || p.StartOffset > p.EndOffset {
			continue
		}
		out = out[:p.StartOffset] + p.Replacement + out[p.EndOffset:]
	}
	return out
}

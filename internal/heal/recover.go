package heal

import (
	"fmt"
	"strings"
)

// attemptSyntaxCleanup applies a small set of mechanical repairs to source
// that failed to parse, grounded on
// ast_self_healing.py's _attempt_syntax_cleanup: that function is itself a
// best-effort line-level patch-up, not a real parser, so this port stays
// equally modest — trimming stray fences a model sometimes leaves behind
// and ensuring the file ends with a newline.
func attemptSyntaxCleanup(source string) string {
	cleaned := source
	cleaned = strings.TrimPrefix(cleaned, "```go\n")
	cleaned = strings.TrimPrefix(cleaned, "```\n")
	cleaned = strings.TrimSuffix(strings.TrimRight(cleaned, "\n"), "```")
	if !strings.HasSuffix(cleaned, "\n") {
		cleaned += "\n"
	}
	return cleaned
}

// EmergencySkeleton returns a minimal, always-parseable component with
// Setup/Cleanup lifecycle methods and a passthrough Process method, the
// last resort when a component's source will not parse at all, even after
// syntax cleanup —
// grounded on _create_emergency_fixes's EmergencyComponent fallback.
func EmergencySkeleton(packageName, structName string) string {
	return fmt.Sprintf(`package %s

import "context"

// %s is an emergency placeholder installed because the healed source
// could not be parsed; it passes data through unchanged.
type %s struct{}

func (c *%s) Setup(ctx context.Context) error   { return nil }
func (c *%s) Cleanup(ctx context.Context) error { return nil }

func (c *%s) Process(ctx context.Context, data any) (any, error) {
	return data, nil
}
`, packageName, structName, structName, structName, structName, structName)
}

// Recover tries, in order: parse as-is, parse after syntax cleanup, then
// falls back to an emergency skeleton. It never returns an error — by
// design the healing loop must always have *something* parseable to hand
// back to validation, mirroring the original's emergency-fix path which
// is reached only once every earlier analysis attempt has failed.
func Recover(source, packageName, structName string) (parsed *Parsed, recoveredSource string, usedFallback bool) {
	if p, err := Parse(source); err == nil {
		return p, source, false
	}

	cleaned := attemptSyntaxCleanup(source)
	if p, err := Parse(cleaned); err == nil {
		return p, cleaned, false
	}

	emergency := EmergencySkeleton(packageName, structName)
	p, err := Parse(emergency)
	if err != nil {
		// The emergency skeleton is a fixed literal; this is unreachable
		// in practice, but Recover must never panic.
		return nil, emergency, true
	}
	return p, emergency, true
}

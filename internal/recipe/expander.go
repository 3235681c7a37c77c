package recipe

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/autocoder/internal/blueprint"
)

// ErrImplementationRequired is returned (at generated-source runtime) by a
// recipe skeleton's primary method. The expander never embeds real logic —
// this is the distinguished signal that C3 has not yet synthesized a body.
var ErrImplementationRequired = errors.New("implementation required")

// ClassName follows the stable naming rule from spec.md §6:
// Generated<Type>_<name>.
func ClassName(componentType, name string) string {
	return fmt.Sprintf("Generated%s_%s", componentType, sanitizeIdent(name))
}

// className is kept as an internal alias so the rest of this file's call
// sites read naturally.
func className(componentType, name string) string {
	return ClassName(componentType, name)
}

func sanitizeIdent(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// Expand looks up spec.Type's recipe and renders a Go source skeleton:
// a struct with one channel field per port, merged default+caller
// config, and a primary method stub that returns ErrImplementationRequired.
// No behavior is expressed here — see spec.md §4.2's "expander may not embed
// defaults that would let validation pass without real logic".
func Expand(spec blueprint.ComponentSpec) (string, error) {
	r, err := Get(spec.Type)
	if err != nil {
		return "", err
	}

	inputs := mergePorts(r.DefaultInputs, spec.Inputs)
	outputs := mergePorts(r.DefaultOutputs, spec.Outputs)
	config := mergeConfig(r.DefaultConfig, spec.Config)

	name := className(spec.Type, spec.Name)
	method := r.BasePrimitive.PrimaryMethod()

	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by internal/recipe.Expand for component %q (type %s). DO NOT EDIT.\n", spec.Name, spec.Type)
	fmt.Fprintf(&b, "// This skeleton carries no behavior; internal/codegen overwrites the body.\n")
	b.WriteString("package components\n\n")
	b.WriteString("import (\n\t\"context\"\n\n\t\"github.com/c360studio/autocoder/internal/recipe\"\n)\n\n")

	fmt.Fprintf(&b, "// %s implements %s for the %q component (recipe type %s).\n", name, r.BasePrimitive, spec.Name, spec.Type)
	fmt.Fprintf(&b, "type %s struct {\n", name)
	b.WriteString("\tconfig map[string]any\n")
	for _, p := range inputs {
		fmt.Fprintf(&b, "\t%sIn chan any // port %q, schema %s\n", exportedField(p.Name), p.Name, p.Schema)
	}
	for _, p := range outputs {
		fmt.Fprintf(&b, "\t%sOut chan any // port %q, schema %s\n", exportedField(p.Name), p.Name, p.Schema)
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "// New%s constructs the skeleton with its merged default configuration.\n", name)
	fmt.Fprintf(&b, "func New%s() *%s {\n", name, name)
	fmt.Fprintf(&b, "\treturn &%s{config: %s}\n", name, renderConfig(config))
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "func (c *%s) Setup(ctx context.Context) error { return nil }\n", name)
	fmt.Fprintf(&b, "func (c *%s) Cleanup(ctx context.Context) error { return nil }\n\n", name)

	fmt.Fprintf(&b, "// %s is a structural stub. internal/recipe never embeds behavior;\n", method)
	fmt.Fprintf(&b, "// this signature matches component.%s and is overwritten by internal/codegen.\n", r.BasePrimitive)
	fmt.Fprintf(&b, "func (c *%s) %s%s {\n\treturn %s\n}\n", name, method, methodSignature(r.BasePrimitive), methodStubReturn(r.BasePrimitive))

	return b.String(), nil
}

func exportedField(portName string) string {
	ident := sanitizeIdent(portName)
	if ident == "" {
		return "Port"
	}
	return strings.ToUpper(ident[:1]) + ident[1:]
}

func methodSignature(p Primitive) string {
	switch p {
	case Source:
		return "(ctx context.Context) (any, error)"
	case Sink:
		return "(ctx context.Context, msg any) error"
	case Splitter:
		return "(ctx context.Context, msg any) ([]any, error)"
	case Merger:
		return "(ctx context.Context, msgs []any) (any, error)"
	default: // Transformer
		return "(ctx context.Context, msg any) (any, error)"
	}
}

func methodStubReturn(p Primitive) string {
	switch p {
	case Source, Transformer, Merger:
		return "nil, recipe.ErrImplementationRequired"
	case Sink:
		return "recipe.ErrImplementationRequired"
	case Splitter:
		return "nil, recipe.ErrImplementationRequired"
	default:
		return "nil, recipe.ErrImplementationRequired"
	}
}

func mergePorts(defaults, override []blueprint.PortSpec) []blueprint.PortSpec {
	if len(override) == 0 {
		return defaults
	}
	return override
}

func mergeConfig(defaults, override map[string]any) map[string]any {
	out := make(map[string]any, len(defaults)+len(override))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

func renderConfig(config map[string]any) string {
	if len(config) == 0 {
		return "map[string]any{}"
	}
	keys := make([]string, 0, len(config))
	for k := range config {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("map[string]any{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: %#v", k, config[k])
	}
	b.WriteString("}")
	return b.String()
}

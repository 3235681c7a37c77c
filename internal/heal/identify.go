package heal

import (
	"go/ast"
	"strings"
)

// allStructs collects every struct type declaration in the parsed file,
// keyed by its declared name.
func (p *Parsed) allStructs() map[string]*ast.TypeSpec {
	out := map[string]*ast.TypeSpec{}
	for _, decl := range p.File.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if _, ok := ts.Type.(*ast.StructType); ok {
				out[ts.Name.Name] = ts
			}
		}
	}
	return out
}

// componentBaseFields are the embedded field names a generated component
// struct carries when it implements one of the primitive interfaces,
// standing in for ast_self_healing.py's component_base_classes inheritance
// check (Go has no class inheritance; embedding plays the equivalent role).
var componentBaseFields = []string{"Source", "Sink", "Transformer", "Splitter", "Merger", "Lifecycle"}

// IdentifyComponentStruct finds the struct declaration for a component,
// following the same five-strategy cascade as
// ast_self_healing.py's _find_component_class, adapted from Python class
// lookup to Go struct-declaration lookup: exact match, case-insensitive
// match, generated-name pattern match, sole-struct fallback, then
// embedded-base-field fallback.
func (p *Parsed) IdentifyComponentStruct(wantName string) (*ast.TypeSpec, bool) {
	structs := p.allStructs()
	if len(structs) == 0 {
		return nil, false
	}

	if ts, ok := structs[wantName]; ok {
		return ts, true
	}

	for name, ts := range structs {
		if strings.EqualFold(name, wantName) {
			return ts, true
		}
	}

	for name, ts := range structs {
		if strings.Contains(name, wantName) || strings.HasSuffix(name, wantName) {
			return ts, true
		}
		stripped := strings.NewReplacer("Generated", "", "Component_", "").Replace(name)
		if stripped == wantName {
			return ts, true
		}
	}

	if len(structs) == 1 {
		for _, ts := range structs {
			return ts, true
		}
	}

	for _, ts := range structs {
		st, ok := ts.Type.(*ast.StructType)
		if !ok {
			continue
		}
		for _, field := range st.Fields.List {
			if len(field.Names) != 0 {
				continue // not an embedded field
			}
			if ident, ok := field.Type.(*ast.Ident); ok && contains(componentBaseFields, ident.Name) {
				return ts, true
			}
		}
	}

	return nil, false
}

func contains(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}

package heal

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
)

// Parsed holds the parsed form of a component's generated source, used as
// the basis for every fix locator in this package.
type Parsed struct {
	FileSet *token.FileSet
	File    *ast.File
	Source  string
}

// Parse parses a component's Go source, using go/parser + go/token — the
// same stdlib Go source parser processor/ast/parser.go uses, adapted here
// from entity-extraction to fix-target location (computing byte offsets
// for structs, methods, and import blocks instead of building a semantic
// index).
func Parse(source string) (*Parsed, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("heal: parse failed: %w", err)
	}
	return &Parsed{FileSet: fset, File: f, Source: source}, nil
}

// offsetOf converts a token.Pos into a byte offset into Source.
func (p *Parsed) offsetOf(pos token.Pos) int {
	return p.FileSet.Position(pos).Offset
}

// FindStruct returns the *ast.TypeSpec of the struct type named name along with
// its enclosing GenDecl's end offset, the insertion point for new methods
// appended immediately after the type.
func (p *Parsed) FindStruct(name string) (*ast.TypeSpec, int, bool) {
	for _, decl := range p.File.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.Name.Name != name {
				continue
			}
			if _, ok := ts.Type.(*ast.StructType); !ok {
				continue
			}
			return ts, p.offsetOf(gd.End()), true
		}
	}
	return nil, 0, false
}

// FindMethod returns the *ast.FuncDecl for a method with the given
// receiver type and method name.
func (p *Parsed) FindMethod(receiver, method string) (*ast.FuncDecl, bool) {
	for _, decl := range p.File.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil || len(fd.Recv.List) == 0 {
			continue
		}
		if fd.Name.Name != method {
			continue
		}
		if receiverTypeName(fd.Recv.List[0].Type) == receiver {
			return fd, true
		}
	}
	return nil, false
}

func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.Ident:
		return t.Name
	default:
		return ""
	}
}

// ImportBlockEnd returns the byte offset immediately after the last import
// declaration, the insertion point for a new import.
func (p *Parsed) ImportBlockEnd() int {
	last := -1
	for _, decl := range p.File.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.IMPORT {
			continue
		}
		end := p.offsetOf(gd.End())
		if end > last {
			last = end
		}
	}
	if last < 0 {
		// No import block: insert right after the package clause.
		return p.offsetOf(p.File.Name.End())
	}
	return last
}

// ImportSpecFor returns the *ast.ImportSpec for a given import path, if
// present.
func (p *Parsed) ImportSpecFor(path string) (*ast.ImportSpec, bool) {
	for _, imp := range p.File.Imports {
		if importPath(imp) == path {
			return imp, true
		}
	}
	return nil, false
}

func importPath(imp *ast.ImportSpec) string {
	if imp.Path == nil {
		return ""
	}
	// Path.Value includes the surrounding quotes.
	v := imp.Path.Value
	if len(v) >= 2 {
		return v[1 : len(v)-1]
	}
	return v
}

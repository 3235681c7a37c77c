package heal

import (
	"strings"
	"testing"
)

const sampleComponent = `package components

import (
	"context"
)

type GeneratedStore_orders struct {
	config map[string]any
}

func NewGeneratedStore_orders() *GeneratedStore_orders {
	return &GeneratedStore_orders{}
}

func (c *GeneratedStore_orders) Setup(ctx context.Context) error { return nil }
`

func TestParseAndFindStruct(t *testing.T) {
	p, err := Parse(sampleComponent)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	ts, end, ok := p.FindStruct("GeneratedStore_orders")
	if !ok {
		t.Fatal("expected to find struct declaration")
	}
	if ts.Name.Name != "GeneratedStore_orders" {
		t.Errorf("unexpected struct name: %s", ts.Name.Name)
	}
	if end <= 0 || end > len(sampleComponent) {
		t.Errorf("insertion offset out of range: %d", end)
	}
}

func TestFindMethod(t *testing.T) {
	p, err := Parse(sampleComponent)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, ok := p.FindMethod("GeneratedStore_orders", "Setup"); !ok {
		t.Error("expected to find Setup method")
	}
	if _, ok := p.FindMethod("GeneratedStore_orders", "Cleanup"); ok {
		t.Error("did not expect to find a Cleanup method")
	}
}

func TestImportBlockEndAndImportSpecFor(t *testing.T) {
	p, err := Parse(sampleComponent)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	end := p.ImportBlockEnd()
	if end <= 0 || end > len(sampleComponent) {
		t.Fatalf("import block end out of range: %d", end)
	}
	if _, ok := p.ImportSpecFor("context"); !ok {
		t.Error("expected to find the context import")
	}
	if _, ok := p.ImportSpecFor("fmt"); ok {
		t.Error("did not expect to find an unimported package")
	}
}

func TestImportBlockEndNoImports(t *testing.T) {
	src := "package components\n\ntype X struct{}\n"
	p, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	end := p.ImportBlockEnd()
	if !strings.HasPrefix(src[end:], "\n\ntype X") {
		t.Errorf("expected insertion point right after package clause, got remainder: %q", src[end:])
	}
}

package heal

import "testing"

func TestIdentifyComponentStructExactMatch(t *testing.T) {
	src := `package components

type GeneratedStore_orders struct{}
`
	p, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	ts, ok := p.IdentifyComponentStruct("GeneratedStore_orders")
	if !ok || ts.Name.Name != "GeneratedStore_orders" {
		t.Fatalf("expected exact match, got %v ok=%v", ts, ok)
	}
}

func TestIdentifyComponentStructCaseInsensitive(t *testing.T) {
	src := `package components

type generatedstore_orders struct{}
`
	p, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	ts, ok := p.IdentifyComponentStruct("GeneratedStore_orders")
	if !ok || ts.Name.Name != "generatedstore_orders" {
		t.Fatalf("expected case-insensitive match, got %v ok=%v", ts, ok)
	}
}

func TestIdentifyComponentStructSoleStructFallback(t *testing.T) {
	src := `package components

type SomethingElseEntirely struct{}
`
	p, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	ts, ok := p.IdentifyComponentStruct("Orders")
	if !ok || ts.Name.Name != "SomethingElseEntirely" {
		t.Fatalf("expected sole-struct fallback, got %v ok=%v", ts, ok)
	}
}

func TestIdentifyComponentStructEmbeddedBaseFallback(t *testing.T) {
	src := `package components

type Foo struct{}
type Bar struct{}
type MyComponent struct {
	Source
}
`
	p, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	ts, ok := p.IdentifyComponentStruct("Orders")
	if !ok || ts.Name.Name != "MyComponent" {
		t.Fatalf("expected embedded-base fallback to find MyComponent, got %v ok=%v", ts, ok)
	}
}

func TestIdentifyComponentStructNoStructs(t *testing.T) {
	src := "package components\n\nfunc f() {}\n"
	p, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, ok := p.IdentifyComponentStruct("Anything"); ok {
		t.Error("expected no match when no struct declarations exist")
	}
}

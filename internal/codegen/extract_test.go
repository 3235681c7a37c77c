package codegen

import "testing"

func TestExtractGoSourceStripsFence(t *testing.T) {
	in := "```go\npackage components\n\ntype X struct{}\n```"
	got := extractGoSource(in)
	want := "package components\n\ntype X struct{}"
	if got != want {
		t.Errorf("extractGoSource() = %q, want %q", got, want)
	}
}

func TestExtractGoSourcePlainFence(t *testing.T) {
	in := "```\npackage components\n```"
	got := extractGoSource(in)
	want := "package components"
	if got != want {
		t.Errorf("extractGoSource() = %q, want %q", got, want)
	}
}

func TestExtractGoSourceNoFence(t *testing.T) {
	in := "package components\n\ntype X struct{}\n"
	if got := extractGoSource(in); got != in {
		t.Errorf("extractGoSource() = %q, want unchanged %q", got, in)
	}
}

func TestExtractGoSourceWhitespaceTrimmed(t *testing.T) {
	in := "  \n```go\npackage components\n```\n  "
	got := extractGoSource(in)
	want := "package components"
	if got != want {
		t.Errorf("extractGoSource() = %q, want %q", got, want)
	}
}

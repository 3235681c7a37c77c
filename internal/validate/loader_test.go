package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSyntaxCheckValidSource(t *testing.T) {
	src := "package components\n\ntype X struct{}\n"
	if err := SyntaxCheck(src); err != nil {
		t.Errorf("expected valid source to pass syntax check, got %v", err)
	}
}

func TestSyntaxCheckInvalidSource(t *testing.T) {
	src := "package components\n\nfunc f( {\n"
	if err := SyntaxCheck(src); err == nil {
		t.Error("expected a syntax error for malformed source")
	}
}

func TestParseModulePathFindsDirective(t *testing.T) {
	data := []byte("module github.com/example/widgets\n\ngo 1.25\n")
	got, ok := parseModulePath(data)
	if !ok || got != "github.com/example/widgets" {
		t.Errorf("parseModulePath() = (%q, %v), want (%q, true)", got, ok, "github.com/example/widgets")
	}
}

func TestParseModulePathMissingDirective(t *testing.T) {
	if _, ok := parseModulePath([]byte("go 1.25\n")); ok {
		t.Error("expected ok=false with no module directive")
	}
}

func TestLocateModuleWalksUpToGoMod(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module github.com/example/widgets\n\ngo 1.25\n"), 0644); err != nil {
		t.Fatalf("seed go.mod failed: %v", err)
	}
	nested := filepath.Join(root, "out", "mysystem", "components")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir nested failed: %v", err)
	}

	gotRoot, gotPath, err := locateModule(nested)
	if err != nil {
		t.Fatalf("locateModule failed: %v", err)
	}
	wantRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatalf("EvalSymlinks failed: %v", err)
	}
	gotRootResolved, err := filepath.EvalSymlinks(gotRoot)
	if err != nil {
		t.Fatalf("EvalSymlinks failed: %v", err)
	}
	if gotRootResolved != wantRoot {
		t.Errorf("locateModule() root = %q, want %q", gotRootResolved, wantRoot)
	}
	if gotPath != "github.com/example/widgets" {
		t.Errorf("locateModule() modulePath = %q, want %q", gotPath, "github.com/example/widgets")
	}
}

func TestLocateModuleNoGoModErrors(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := locateModule(dir); err == nil {
		t.Skip("environment has a go.mod above the temp dir; cannot exercise the not-found path")
	}
}

func TestComponentsImportPathAppendsRelativeDir(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "out", "mysystem", "components")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir nested failed: %v", err)
	}
	got, err := componentsImportPath(root, "github.com/example/widgets", nested)
	if err != nil {
		t.Fatalf("componentsImportPath failed: %v", err)
	}
	want := "github.com/example/widgets/out/mysystem/components"
	if got != want {
		t.Errorf("componentsImportPath() = %q, want %q", got, want)
	}
}

func TestComponentsImportPathAtModuleRoot(t *testing.T) {
	root := t.TempDir()
	got, err := componentsImportPath(root, "github.com/example/widgets", root)
	if err != nil {
		t.Fatalf("componentsImportPath failed: %v", err)
	}
	if got != "github.com/example/widgets" {
		t.Errorf("componentsImportPath() = %q, want the bare module path", got)
	}
}

func TestHarnessSourceReferencesComponentsRegistryAndLifecycle(t *testing.T) {
	src := harnessSource("github.com/example/widgets/out/mysystem/components")
	for _, want := range []string{
		`components "github.com/example/widgets/out/mysystem/components"`,
		"components.Registry",
		"component.Lifecycle",
		"component.Source",
		"component.Sink",
		"component.Transformer",
		"component.Splitter",
		"component.Merger",
		"Setup(ctx)",
		"Cleanup(ctx)",
		`fmt.Println("READY")`,
		"AUTOCODER_BUS_URL",
		`envelope["status"] = "ok"`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("expected generated harness source to contain %q", want)
		}
	}
	if err := SyntaxCheck(src); err != nil {
		t.Errorf("expected generated harness source to be syntactically valid Go, got %v", err)
	}
}

// NewHarness, Build, Start, and Stop drive the real filesystem and `go`
// toolchain against a live module tree; exercising them here is out of
// scope for unit coverage of this package.

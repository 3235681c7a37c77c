package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteAndReadComponent(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "orders-system")

	if err := w.WriteComponent("OrdersAPI", "package components\n"); err != nil {
		t.Fatalf("WriteComponent failed: %v", err)
	}

	path := w.ComponentPath("OrdersAPI")
	if filepath.Base(path) != "ordersapi.go" {
		t.Errorf("expected lowercased file name, got %q", path)
	}

	got, err := w.ReadComponent("OrdersAPI")
	if err != nil {
		t.Fatalf("ReadComponent failed: %v", err)
	}
	if got != "package components\n" {
		t.Errorf("ReadComponent = %q, want %q", got, "package components\n")
	}
}

func TestReadComponentMissingFile(t *testing.T) {
	w := NewWriter(t.TempDir(), "orders-system")
	if _, err := w.ReadComponent("DoesNotExist"); err == nil {
		t.Fatal("expected an error reading a component that was never written")
	}
}

func TestExistingComponentsExcludesGeneratedFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "orders-system")

	if err := w.WriteComponent("OrdersAPI", "package components\n"); err != nil {
		t.Fatalf("WriteComponent failed: %v", err)
	}
	if err := w.WriteComponent("OrdersStore", "package components\n"); err != nil {
		t.Fatalf("WriteComponent failed: %v", err)
	}
	if err := w.WriteRegistry(nil); err != nil {
		t.Fatalf("WriteRegistry failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "orders-system", "components", "observability.go"), []byte("package components\n"), 0644); err != nil {
		t.Fatalf("writing observability.go failed: %v", err)
	}

	names, err := w.ExistingComponents()
	if err != nil {
		t.Fatalf("ExistingComponents failed: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 components, got %d: %v", len(names), names)
	}
	if names[0] != "ordersapi" || names[1] != "ordersstore" {
		t.Errorf("unexpected sorted names: %v", names)
	}
}

func TestWriteRegistryEmitsEntries(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "orders-system")
	entries := []ComponentEntry{
		NewComponentEntry("orders-api", "APIEndpoint"),
	}
	if err := w.WriteRegistry(entries); err != nil {
		t.Fatalf("WriteRegistry failed: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "orders-system", "components", "registry_gen.go"))
	if err != nil {
		t.Fatalf("reading registry_gen.go failed: %v", err)
	}
	src := string(b)
	if !strings.Contains(src, `"orders-api"`) {
		t.Errorf("expected registry to reference component name, got: %s", src)
	}
	if !strings.Contains(src, entries[0].ClassName) {
		t.Errorf("expected registry to reference class name %q, got: %s", entries[0].ClassName, src)
	}
}

func TestNewComponentEntryDerivesClassName(t *testing.T) {
	e := NewComponentEntry("orders-api", "APIEndpoint")
	if e.VarName != "orders-api" || e.TypeName != "APIEndpoint" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.ClassName == "" {
		t.Error("expected a non-empty generated class name")
	}
}

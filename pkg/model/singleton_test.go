package model

import "testing"

func TestGlobalLazilyCreatesDefaultRegistry(t *testing.T) {
	ResetGlobal()
	defer ResetGlobal()

	r := Global()
	if r == nil {
		t.Fatal("expected Global() to return a non-nil registry")
	}
	if got := r.Resolve(CapabilityGenerate); got == "" {
		t.Error("expected the lazily created registry to resolve a default generate model")
	}
	if Global() != r {
		t.Error("expected repeated Global() calls to return the same instance")
	}
}

func TestInitGlobalOnlyTakesEffectBeforeFirstGlobalCall(t *testing.T) {
	ResetGlobal()
	defer ResetGlobal()

	custom := NewRegistry(nil, nil)
	custom.SetDefault("custom-default")
	InitGlobal(custom)

	if Global() != custom {
		t.Fatal("expected InitGlobal to seed the singleton before any Global() call")
	}

	other := NewRegistry(nil, nil)
	other.SetDefault("ignored")
	InitGlobal(other)

	if Global() == other {
		t.Error("expected a later InitGlobal call to be a no-op once the singleton is already set")
	}
}

func TestResetGlobalClearsSingleton(t *testing.T) {
	ResetGlobal()
	defer ResetGlobal()

	first := Global()
	ResetGlobal()
	second := Global()

	if first == second {
		t.Error("expected ResetGlobal to force a fresh registry on the next Global() call")
	}
}

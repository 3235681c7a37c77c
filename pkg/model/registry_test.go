package model

import "testing"

func TestRegistryResolvePrefersFirstPreferred(t *testing.T) {
	r := NewRegistry(map[Capability]*CapabilityConfig{
		CapabilityGenerate: {Preferred: []string{"a", "b"}, Fallback: []string{"c"}},
	}, nil)
	if got := r.Resolve(CapabilityGenerate); got != "a" {
		t.Errorf("Resolve() = %q, want %q", got, "a")
	}
}

func TestRegistryResolveFallsBackToDefault(t *testing.T) {
	r := NewRegistry(nil, nil)
	if got := r.Resolve(CapabilityGenerate); got != "default" {
		t.Errorf("Resolve() = %q, want the registry default %q", got, "default")
	}
}

func TestRegistryGetFallbackChainConcatenatesPreferredAndFallback(t *testing.T) {
	r := NewRegistry(map[Capability]*CapabilityConfig{
		CapabilityHeal: {Preferred: []string{"a"}, Fallback: []string{"b", "c"}},
	}, nil)
	chain := r.GetFallbackChain(CapabilityHeal)
	want := []string{"a", "b", "c"}
	if len(chain) != len(want) {
		t.Fatalf("GetFallbackChain() = %v, want %v", chain, want)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Errorf("chain[%d] = %q, want %q", i, chain[i], want[i])
		}
	}
}

func TestRegistrySetAndGetEndpoint(t *testing.T) {
	r := NewRegistry(nil, nil)
	r.SetEndpoint("qwen", &EndpointConfig{Provider: "ollama", Model: "qwen2.5-coder"})
	ep := r.GetEndpoint("qwen")
	if ep == nil || ep.Provider != "ollama" {
		t.Fatalf("GetEndpoint() = %+v, want a qwen/ollama endpoint", ep)
	}
	if r.GetEndpoint("missing") != nil {
		t.Error("expected nil for an unconfigured endpoint")
	}
}

func TestRegistrySetCapabilityAndDefault(t *testing.T) {
	r := NewRegistry(nil, nil)
	r.SetCapability(CapabilityFast, &CapabilityConfig{Preferred: []string{"x"}})
	if got := r.Resolve(CapabilityFast); got != "x" {
		t.Errorf("Resolve() after SetCapability = %q, want %q", got, "x")
	}
	r.SetDefault("y")
	if got := r.Resolve(CapabilityEnrich); got != "y" {
		t.Errorf("Resolve() for unconfigured capability after SetDefault = %q, want %q", got, "y")
	}
}

func TestRegistryForRoleResolvesViaCapability(t *testing.T) {
	r := NewRegistry(map[Capability]*CapabilityConfig{
		CapabilityHeal: {Preferred: []string{"healer-model"}},
	}, nil)
	if got := r.ForRole("healer"); got != "healer-model" {
		t.Errorf("ForRole(healer) = %q, want %q", got, "healer-model")
	}
}

func TestNewDefaultRegistryHasAllCapabilities(t *testing.T) {
	r := NewDefaultRegistry()
	for _, cap := range []Capability{CapabilityGenerate, CapabilityHeal, CapabilityEnrich, CapabilityFast} {
		chain := r.GetFallbackChain(cap)
		if len(chain) == 0 {
			t.Errorf("expected a non-empty fallback chain for capability %q", cap)
		}
		for _, model := range chain {
			if r.GetEndpoint(model) == nil {
				t.Errorf("capability %q references model %q with no endpoint configured", cap, model)
			}
		}
	}
}

func TestRegistryListCapabilitiesAndEndpoints(t *testing.T) {
	r := NewDefaultRegistry()
	if len(r.ListCapabilities()) != 4 {
		t.Errorf("expected 4 capabilities, got %d", len(r.ListCapabilities()))
	}
	if len(r.ListEndpoints()) == 0 {
		t.Error("expected a non-empty endpoint list")
	}
}

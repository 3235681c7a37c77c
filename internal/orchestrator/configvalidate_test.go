package orchestrator

import (
	"testing"

	"github.com/c360studio/autocoder/internal/blueprint"
)

func TestValidateConfigsHealsMissingDefaults(t *testing.T) {
	bp := &blueprint.Blueprint{
		Components: []blueprint.ComponentSpec{
			{Name: "orders-store", Type: "Store"},
		},
	}
	if err := ValidateConfigs(bp, true); err != nil {
		t.Fatalf("ValidateConfigs failed: %v", err)
	}
	if bp.Components[0].Config["backend"] != "memory" {
		t.Errorf("expected healed config to fill in the recipe default, got %+v", bp.Components[0].Config)
	}
}

func TestValidateConfigsStrictModeAbortsOnTypeMismatch(t *testing.T) {
	bp := &blueprint.Blueprint{
		Components: []blueprint.ComponentSpec{
			{Name: "orders-store", Type: "Store", Config: map[string]any{"backend": true}},
		},
	}
	if err := ValidateConfigs(bp, true); err == nil {
		t.Fatal("expected strict mode to abort on a config type mismatch")
	}
}

func TestValidateConfigsNonStrictModeSkipsOnFailure(t *testing.T) {
	bp := &blueprint.Blueprint{
		Components: []blueprint.ComponentSpec{
			{Name: "orders-store", Type: "Store", Config: map[string]any{"backend": true}},
		},
	}
	if err := ValidateConfigs(bp, false); err != nil {
		t.Fatalf("expected non-strict mode to tolerate a config failure, got %v", err)
	}
	if bp.Components[0].Config["backend"] != true {
		t.Error("expected the original config to be left untouched when healing fails in non-strict mode")
	}
}

func TestValidateConfigsUnknownRecipeTypeStrict(t *testing.T) {
	bp := &blueprint.Blueprint{
		Components: []blueprint.ComponentSpec{
			{Name: "mystery", Type: "NotARealType"},
		},
	}
	if err := ValidateConfigs(bp, true); err == nil {
		t.Fatal("expected an unknown recipe type to fail strict validation")
	}
}

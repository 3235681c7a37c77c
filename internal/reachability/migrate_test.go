package reachability

import (
	"testing"

	"github.com/c360studio/autocoder/internal/blueprint"
)

func legacyBlueprint() *blueprint.Blueprint {
	return &blueprint.Blueprint{
		Name: "legacy",
		Components: []blueprint.ComponentSpec{
			{
				Name: "api",
				Type: "APIEndpoint",
				Inputs: []blueprint.PortSpec{
					{Name: "request", Direction: blueprint.Input},
				},
				Outputs: []blueprint.PortSpec{
					{Name: "response", Direction: blueprint.Output},
				},
			},
			{
				Name: "store",
				Type: "Store",
				Inputs: []blueprint.PortSpec{
					{Name: "write", Direction: blueprint.Input},
				},
			},
		},
	}
}

func TestMigrateNotNeeded(t *testing.T) {
	bp := legacyBlueprint()
	bp.Components[0].Inputs[0].BoundaryIngress = true
	bp.Components[0].Inputs[0].ReplyRequired = true
	bp.Components[1].Durable = true

	result, err := Migrate(bp, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MigrationNeeded {
		t.Error("expected no migration needed when flags already present")
	}
}

func TestMigrateInfersAPIEndpointAndStore(t *testing.T) {
	bp := legacyBlueprint()

	result, err := Migrate(bp, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.MigrationNeeded {
		t.Fatal("expected migration to be needed")
	}
	if len(result.Operations) != 3 {
		t.Fatalf("expected 3 inferred operations, got %d: %+v", len(result.Operations), result.Operations)
	}
	api, _ := result.MigratedBlueprint.ComponentByName("api")
	if !api.Inputs[0].BoundaryIngress || !api.Inputs[0].ReplyRequired {
		t.Error("expected request port to gain boundary_ingress+reply_required")
	}
	if !api.Outputs[0].SatisfiesReply {
		t.Error("expected response port to gain satisfies_reply")
	}
	store, _ := result.MigratedBlueprint.ComponentByName("store")
	if !store.Durable {
		t.Error("expected store to become durable")
	}

	orig, _ := bp.ComponentByName("api")
	if orig.Inputs[0].BoundaryIngress {
		t.Error("Migrate must not mutate the original blueprint")
	}
}

func TestMigrateLowConfidenceFailsClosed(t *testing.T) {
	bp := &blueprint.Blueprint{
		Name: "mixed",
		Components: []blueprint.ComponentSpec{
			{Name: "a", Type: "APIEndpoint"},
			{Name: "b", Type: "Unknowable"},
			{Name: "c", Type: "Unknowable2"},
			{Name: "d", Type: "Unknowable3"},
		},
	}
	_, err := Migrate(bp, false)
	if err == nil {
		t.Fatal("expected low-confidence migration to fail without force")
	}

	result, err := Migrate(bp, true)
	if err != nil {
		t.Fatalf("force=true should override the threshold: %v", err)
	}
	if result.MigratedBlueprint == nil {
		t.Fatal("expected a migrated blueprint when forced")
	}
}

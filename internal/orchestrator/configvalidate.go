package orchestrator

import (
	"fmt"

	"github.com/c360studio/autocoder/internal/blueprint"
	"github.com/c360studio/autocoder/internal/config"
)

// ValidateConfigs runs every component's declared config through the
// strict validation pipeline before the loop starts, per spec.md §4.6's
// "startup configuration validation": optional healing (filling in
// recipe defaults) is always applied, but in strict mode a component
// whose config still fails aborts the run.
func ValidateConfigs(bp *blueprint.Blueprint, strict bool) error {
	for i, spec := range bp.Components {
		healed, err := config.ValidateAndHeal(spec)
		if err != nil {
			if strict {
				return fmt.Errorf("orchestrator: config validation failed for %q: %w", spec.Name, err)
			}
			continue
		}
		bp.Components[i].Config = healed
	}
	return nil
}

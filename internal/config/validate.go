package config

import (
	"fmt"

	"github.com/c360studio/autocoder/internal/blueprint"
	"github.com/c360studio/autocoder/internal/recipe"
)

// ValidateAndHeal runs a single component's Config through the strict
// validation pipeline used at orchestrator startup: the component's recipe
// type must be known, and any config key the recipe's defaults declare must
// be present with a value of the same kind. Missing keys are healed in by
// copying the recipe default rather than failing the component outright;
// unknown type or a present key's value of the wrong kind are fatal.
//
// This generalizes the teacher's Config.Validate() from validating one
// global config to validating each component's config independently.
func ValidateAndHeal(spec blueprint.ComponentSpec) (map[string]any, error) {
	rec, err := recipe.Get(spec.Type)
	if err != nil {
		return nil, fmt.Errorf("component %q: %w", spec.Name, err)
	}

	healed := make(map[string]any, len(rec.DefaultConfig))
	for k, v := range rec.DefaultConfig {
		healed[k] = v
	}
	for k, v := range spec.Config {
		if dv, ok := rec.DefaultConfig[k]; ok && !sameKind(dv, v) {
			return nil, fmt.Errorf("component %q: config key %q has wrong type: expected %T, got %T", spec.Name, k, dv, v)
		}
		healed[k] = v
	}

	return healed, nil
}

func sameKind(a, b any) bool {
	switch a.(type) {
	case string:
		_, ok := b.(string)
		return ok
	case bool:
		_, ok := b.(bool)
		return ok
	case int, int64, float64:
		switch b.(type) {
		case int, int64, float64:
			return true
		default:
			return false
		}
	default:
		return true
	}
}

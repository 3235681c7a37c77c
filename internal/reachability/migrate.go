package reachability

import (
	"fmt"

	"github.com/c360studio/autocoder/internal/blueprint"
)

// MigrationConfidenceThreshold is the minimum confidence for auto-migration,
// grounded on migration_engine.py's CONFIDENCE_THRESHOLD.
const MigrationConfidenceThreshold = 0.8

// MigrationOperation records one inferred boundary-flag change.
type MigrationOperation struct {
	TargetComponent string
	TargetPort      string
	Justification   string
}

// MigrationResult is the outcome of the migration pre-pass.
type MigrationResult struct {
	MigrationNeeded     bool
	Operations          []MigrationOperation
	MigratedBlueprint   *blueprint.Blueprint
	Confidence          float64
	Warnings            []string
}

// Migrate infers boundary-termination flags for a blueprint that predates
// them, per spec.md §4.1's migration pre-pass. A blueprint is considered
// legacy when at least one component of an inferable type (APIEndpoint,
// Store, WebSocket) has no boundary flags set anywhere.
// Below MigrationConfidenceThreshold, migration fails unless forced.
func Migrate(bp *blueprint.Blueprint, force bool) (*MigrationResult, error) {
	if !needsMigration(bp) {
		return &MigrationResult{
			MigrationNeeded:    false,
			MigratedBlueprint:  bp,
			Confidence:         1.0,
		}, nil
	}

	migrated := cloneBlueprint(bp)
	var ops []MigrationOperation
	var warnings []string

	for i := range migrated.Components {
		c := &migrated.Components[i]
		switch c.Type {
		case "APIEndpoint":
			for j := range c.Inputs {
				if c.Inputs[j].Name == "request" {
					c.Inputs[j].BoundaryIngress = true
					c.Inputs[j].ReplyRequired = true
					ops = append(ops, MigrationOperation{c.Name, "request", "APIEndpoint.request implies boundary_ingress+reply_required"})
				}
			}
			for j := range c.Outputs {
				if c.Outputs[j].Name == "response" {
					c.Outputs[j].SatisfiesReply = true
					ops = append(ops, MigrationOperation{c.Name, "response", "APIEndpoint.response implies satisfies_reply"})
				}
			}
		case "Store":
			if !c.Durable {
				c.Durable = true
				ops = append(ops, MigrationOperation{c.Name, "", "Store implies durable=true"})
			}
		case "WebSocket":
			for j := range c.Inputs {
				switch c.Inputs[j].Name {
				case "connection_request":
					c.Inputs[j].BoundaryIngress = true
					c.Inputs[j].ReplyRequired = true
					ops = append(ops, MigrationOperation{c.Name, "connection_request", "WebSocket handshake implies boundary_ingress+reply_required"})
				case "message_in":
					c.Inputs[j].BoundaryIngress = true
					ops = append(ops, MigrationOperation{c.Name, "message_in", "WebSocket messaging implies boundary_ingress"})
				}
			}
			for j := range c.Outputs {
				if c.Outputs[j].Name == "connection_status" {
					c.Outputs[j].SatisfiesReply = true
					ops = append(ops, MigrationOperation{c.Name, "connection_status", "WebSocket handshake implies satisfies_reply"})
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("component %q (type %s): no inference rule, left unmigrated", c.Name, c.Type))
		}
	}

	confidence := calculateMigrationConfidence(ops, warnings)

	if confidence < MigrationConfidenceThreshold && !force {
		return &MigrationResult{
			MigrationNeeded: true,
			Operations:      ops,
			Confidence:      confidence,
			Warnings:        warnings,
		}, fmt.Errorf("migration confidence %.2f below threshold %.2f; call with force=true to override", confidence, MigrationConfidenceThreshold)
	}

	return &MigrationResult{
		MigrationNeeded:    true,
		Operations:         ops,
		MigratedBlueprint:  migrated,
		Confidence:         confidence,
		Warnings:           warnings,
	}, nil
}

// needsMigration applies the "absence of flags" heuristic: true if any
// component has no boundary-related flag set on any of its ports and is of a
// type this engine knows how to infer from.
func needsMigration(bp *blueprint.Blueprint) bool {
	for _, c := range bp.Components {
		if !hasAnyBoundaryFlag(c) && isInferableType(c.Type) {
			return true
		}
	}
	return false
}

func hasAnyBoundaryFlag(c blueprint.ComponentSpec) bool {
	for _, p := range c.Inputs {
		if p.BoundaryIngress || p.ReplyRequired {
			return true
		}
	}
	for _, p := range c.Outputs {
		if p.SatisfiesReply || p.ObservabilityExport {
			return true
		}
	}
	return c.Durable
}

func isInferableType(t string) bool {
	switch t {
	case "APIEndpoint", "Store", "WebSocket":
		return true
	default:
		return false
	}
}

// calculateMigrationConfidence scores the inference: every operation applied
// against a known, unambiguous rule counts fully; each warning (a component
// the engine could not confidently infer anything about) reduces confidence.
func calculateMigrationConfidence(ops []MigrationOperation, warnings []string) float64 {
	if len(ops) == 0 {
		return 0.0
	}
	total := len(ops) + len(warnings)
	return float64(len(ops)) / float64(total)
}

func cloneBlueprint(bp *blueprint.Blueprint) *blueprint.Blueprint {
	out := &blueprint.Blueprint{
		Name:        bp.Name,
		Version:     bp.Version,
		Description: bp.Description,
		Bindings:    append([]blueprint.Binding(nil), bp.Bindings...),
	}
	out.Components = make([]blueprint.ComponentSpec, len(bp.Components))
	for i, c := range bp.Components {
		nc := c
		nc.Inputs = append([]blueprint.PortSpec(nil), c.Inputs...)
		nc.Outputs = append([]blueprint.PortSpec(nil), c.Outputs...)
		if c.Config != nil {
			nc.Config = make(map[string]any, len(c.Config))
			for k, v := range c.Config {
				nc.Config[k] = v
			}
		}
		out.Components[i] = nc
	}
	return out
}

package blueprint

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// document is the wire format: a structured document with a top-level
// system.{name,version,description,components[],bindings[]} key, per §6.
type document struct {
	System struct {
		Name        string          `yaml:"name"`
		Version     string          `yaml:"version"`
		Description string          `yaml:"description"`
		Components  []ComponentSpec `yaml:"components"`
		Bindings    []Binding       `yaml:"bindings"`
	} `yaml:"system"`
}

// Parse decodes a YAML blueprint document and validates its structural
// invariants. It never mutates global state and is safe for concurrent use.
func Parse(r io.Reader) (*Blueprint, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("blueprint: read: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("blueprint: parse yaml: %w", err)
	}

	bp := &Blueprint{
		Name:        doc.System.Name,
		Version:     doc.System.Version,
		Description: doc.System.Description,
		Components:  doc.System.Components,
		Bindings:    doc.System.Bindings,
	}

	for i := range bp.Components {
		normalizePortDirections(&bp.Components[i])
	}

	if err := bp.Validate(); err != nil {
		return nil, fmt.Errorf("blueprint: %w", err)
	}

	return bp, nil
}

func normalizePortDirections(c *ComponentSpec) {
	for i := range c.Inputs {
		if c.Inputs[i].Direction == "" {
			c.Inputs[i].Direction = Input
		}
	}
	for i := range c.Outputs {
		if c.Outputs[i].Direction == "" {
			c.Outputs[i].Direction = Output
		}
	}
}

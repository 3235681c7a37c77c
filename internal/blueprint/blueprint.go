// Package blueprint defines the declarative input to the control loop: a
// named graph of components and the bindings that connect their ports.
package blueprint

import (
	"fmt"
)

// Direction is the direction of a port.
type Direction string

const (
	Input  Direction = "input"
	Output Direction = "output"
)

// PortSpec is one endpoint of a component.
type PortSpec struct {
	Name      string    `yaml:"name"`
	Schema    string    `yaml:"schema"`
	Direction Direction `yaml:"direction"`

	// BoundaryIngress marks an input port that receives external traffic.
	BoundaryIngress bool `yaml:"boundary_ingress,omitempty"`
	// ReplyRequired marks an input port whose messages must be answered by
	// a reply-satisfying output.
	ReplyRequired bool `yaml:"reply_required,omitempty"`
	// SatisfiesReply marks an output port whose emission discharges a reply obligation.
	SatisfiesReply bool `yaml:"satisfies_reply,omitempty"`
	// ObservabilityExport marks an output port whose emission constitutes observability.
	ObservabilityExport bool `yaml:"observability_export,omitempty"`
}

// Validate checks the direction-only-flags invariant from §3.
func (p PortSpec) Validate() error {
	if p.Direction != Input && p.Direction != Output {
		return fmt.Errorf("port %q: direction must be %q or %q, got %q", p.Name, Input, Output, p.Direction)
	}
	if p.Direction == Output && (p.BoundaryIngress || p.ReplyRequired) {
		return fmt.Errorf("port %q: boundary_ingress/reply_required only valid on input ports", p.Name)
	}
	if p.Direction == Input && (p.SatisfiesReply || p.ObservabilityExport) {
		return fmt.Errorf("port %q: satisfies_reply/observability_export only valid on output ports", p.Name)
	}
	return nil
}

// ComponentSpec is the declarative description of one component.
type ComponentSpec struct {
	Name        string         `yaml:"name"`
	Type        string         `yaml:"type"`
	Description string         `yaml:"description,omitempty"`
	Config      map[string]any `yaml:"config,omitempty"`
	Inputs      []PortSpec     `yaml:"inputs,omitempty"`
	Outputs     []PortSpec     `yaml:"outputs,omitempty"`

	// Durable marks a component that persists incoming messages.
	Durable bool `yaml:"durable,omitempty"`
	// MonitoredBusOK marks a component that may satisfy its reachability
	// obligation through an observability export rather than a reply or
	// durable sink.
	MonitoredBusOK bool `yaml:"monitored_bus_ok,omitempty"`
}

// InputPort returns the named input port, if present.
func (c ComponentSpec) InputPort(name string) (PortSpec, bool) {
	for _, p := range c.Inputs {
		if p.Name == name {
			return p, true
		}
	}
	return PortSpec{}, false
}

// OutputPort returns the named output port, if present.
func (c ComponentSpec) OutputPort(name string) (PortSpec, bool) {
	for _, p := range c.Outputs {
		if p.Name == name {
			return p, true
		}
	}
	return PortSpec{}, false
}

// Binding is a directed edge between two component ports.
type Binding struct {
	SourceComponent string `yaml:"source_component"`
	SourcePort      string `yaml:"source_port"`
	TargetComponent string `yaml:"target_component"`
	TargetPort      string `yaml:"target_port"`
}

// Blueprint is the parsed, validated input to the control loop.
type Blueprint struct {
	Name        string          `yaml:"name"`
	Version     string          `yaml:"version"`
	Description string          `yaml:"description,omitempty"`
	Components  []ComponentSpec `yaml:"components"`
	Bindings    []Binding       `yaml:"bindings"`
}

// ComponentByName returns the component with the given name, if present.
func (b *Blueprint) ComponentByName(name string) (*ComponentSpec, bool) {
	for i := range b.Components {
		if b.Components[i].Name == name {
			return &b.Components[i], true
		}
	}
	return nil, false
}

// Validate checks the structural invariants in §3: every binding endpoint
// references an existing component and a declared port of matching direction,
// and every port satisfies its own direction-only-flags invariant.
func (b *Blueprint) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("blueprint: name is required")
	}
	names := make(map[string]struct{}, len(b.Components))
	for _, c := range b.Components {
		if c.Name == "" {
			return fmt.Errorf("blueprint: component with empty name")
		}
		if _, dup := names[c.Name]; dup {
			return fmt.Errorf("blueprint: duplicate component name %q", c.Name)
		}
		names[c.Name] = struct{}{}

		if c.Type == "" {
			return fmt.Errorf("component %q: type is required", c.Name)
		}
		for _, p := range c.Inputs {
			if p.Direction == "" {
				p.Direction = Input
			}
			if err := p.Validate(); err != nil {
				return fmt.Errorf("component %q: %w", c.Name, err)
			}
		}
		for _, p := range c.Outputs {
			if p.Direction == "" {
				p.Direction = Output
			}
			if err := p.Validate(); err != nil {
				return fmt.Errorf("component %q: %w", c.Name, err)
			}
		}
	}

	for i, bnd := range b.Bindings {
		src, ok := b.ComponentByName(bnd.SourceComponent)
		if !ok {
			return fmt.Errorf("binding %d: source component %q not found", i, bnd.SourceComponent)
		}
		if _, ok := src.OutputPort(bnd.SourcePort); !ok {
			return fmt.Errorf("binding %d: source port %q not an output of %q", i, bnd.SourcePort, bnd.SourceComponent)
		}
		dst, ok := b.ComponentByName(bnd.TargetComponent)
		if !ok {
			return fmt.Errorf("binding %d: target component %q not found", i, bnd.TargetComponent)
		}
		if _, ok := dst.InputPort(bnd.TargetPort); !ok {
			return fmt.Errorf("binding %d: target port %q not an input of %q", i, bnd.TargetPort, bnd.TargetComponent)
		}
	}

	return nil
}

// BindingsFrom returns all bindings whose source is (component, port).
func (b *Blueprint) BindingsFrom(component, port string) []Binding {
	var out []Binding
	for _, bnd := range b.Bindings {
		if bnd.SourceComponent == component && bnd.SourcePort == port {
			out = append(out, bnd)
		}
	}
	return out
}

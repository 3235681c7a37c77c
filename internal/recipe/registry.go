// Package recipe maps a component type to a structural skeleton: a base
// primitive, a default port layout, and default config. Recipes carry no
// executable behavior — see expander.go for the deliberate "implementation
// required" contract this enforces.
package recipe

import (
	"fmt"
	"sort"

	"github.com/c360studio/autocoder/internal/blueprint"
)

// Primitive is one of five structural kinds a generated component implements.
type Primitive string

const (
	Source      Primitive = "Source"
	Sink        Primitive = "Sink"
	Transformer Primitive = "Transformer"
	Splitter    Primitive = "Splitter"
	Merger      Primitive = "Merger"
)

// PrimaryMethod returns the primitive's primary processing method name,
// per spec.md §4.2 ("transform / generate / consume / split / merge").
func (p Primitive) PrimaryMethod() string {
	switch p {
	case Source:
		return "Generate"
	case Sink:
		return "Consume"
	case Transformer:
		return "Transform"
	case Splitter:
		return "Split"
	case Merger:
		return "Merge"
	default:
		return "Process"
	}
}

// Recipe is a static, external record mapping a component type to a base
// primitive, a default port layout, and a default config.
type Recipe struct {
	Type           string
	BasePrimitive  Primitive
	DefaultInputs  []blueprint.PortSpec
	DefaultOutputs []blueprint.PortSpec
	DefaultConfig  map[string]any
}

// registry is the closed set of known component types, grounded on
// recipes/registry.py's RECIPE_REGISTRY and spec.md §4.1's coupling table.
var registry = map[string]Recipe{
	"APIEndpoint": {
		Type:          "APIEndpoint",
		BasePrimitive: Transformer,
		DefaultInputs: []blueprint.PortSpec{
			{Name: "request", Schema: "RequestSchema", Direction: blueprint.Input},
		},
		DefaultOutputs: []blueprint.PortSpec{
			{Name: "response", Schema: "ResponseSchema", Direction: blueprint.Output},
		},
		DefaultConfig: map[string]any{"method": "POST", "path": "/"},
	},
	"Controller": {
		Type:          "Controller",
		BasePrimitive: Transformer,
		DefaultInputs: []blueprint.PortSpec{
			{Name: "action", Schema: "ActionSchema", Direction: blueprint.Input},
		},
		DefaultOutputs: []blueprint.PortSpec{
			{Name: "result", Schema: "ResultSchema", Direction: blueprint.Output},
		},
		DefaultConfig: map[string]any{},
	},
	"Store": {
		Type:          "Store",
		BasePrimitive: Transformer,
		DefaultInputs: []blueprint.PortSpec{
			{Name: "write", Schema: "WriteSchema", Direction: blueprint.Input},
			{Name: "read", Schema: "ReadSchema", Direction: blueprint.Input},
		},
		DefaultOutputs: []blueprint.PortSpec{
			{Name: "write_status", Schema: "StatusSchema", Direction: blueprint.Output},
			{Name: "data", Schema: "DataSchema", Direction: blueprint.Output},
		},
		DefaultConfig: map[string]any{"backend": "memory"},
	},
	"Transformer": {
		Type:          "Transformer",
		BasePrimitive: Transformer,
		DefaultInputs: []blueprint.PortSpec{
			{Name: "in", Schema: "InputSchema", Direction: blueprint.Input},
		},
		DefaultOutputs: []blueprint.PortSpec{
			{Name: "out", Schema: "OutputSchema", Direction: blueprint.Output},
		},
		DefaultConfig: map[string]any{},
	},
	"WebSocket": {
		Type:          "WebSocket",
		BasePrimitive: Transformer,
		DefaultInputs: []blueprint.PortSpec{
			{Name: "connection_request", Schema: "ConnectionRequestSchema", Direction: blueprint.Input},
			{Name: "message_in", Schema: "MessageSchema", Direction: blueprint.Input},
		},
		DefaultOutputs: []blueprint.PortSpec{
			{Name: "connection_status", Schema: "ConnectionStatusSchema", Direction: blueprint.Output},
			{Name: "message_out", Schema: "MessageSchema", Direction: blueprint.Output},
		},
		DefaultConfig: map[string]any{},
	},
	"EventBus": {
		Type:          "EventBus",
		BasePrimitive: Splitter,
		DefaultInputs: []blueprint.PortSpec{
			{Name: "publish", Schema: "EventSchema", Direction: blueprint.Input},
		},
		DefaultOutputs: []blueprint.PortSpec{
			{Name: "deliver", Schema: "EventSchema", Direction: blueprint.Output},
		},
		DefaultConfig: map[string]any{},
	},
	"MessageQueue": {
		Type:          "MessageQueue",
		BasePrimitive: Merger,
		DefaultInputs: []blueprint.PortSpec{
			{Name: "enqueue", Schema: "MessageSchema", Direction: blueprint.Input},
		},
		DefaultOutputs: []blueprint.PortSpec{
			{Name: "dequeue", Schema: "MessageSchema", Direction: blueprint.Output},
		},
		DefaultConfig: map[string]any{},
	},
	"Source": {
		Type:           "Source",
		BasePrimitive:  Source,
		DefaultInputs:  nil,
		DefaultOutputs: []blueprint.PortSpec{{Name: "out", Schema: "OutputSchema", Direction: blueprint.Output}},
		DefaultConfig:  map[string]any{},
	},
	"Sink": {
		Type:           "Sink",
		BasePrimitive:  Sink,
		DefaultInputs:  []blueprint.PortSpec{{Name: "in", Schema: "InputSchema", Direction: blueprint.Input}},
		DefaultOutputs: nil,
		DefaultConfig:  map[string]any{},
	},
}

// ErrUnknownRecipe is returned by Get for an unregistered component type.
type ErrUnknownRecipe struct {
	Type  string
	Known []string
}

func (e *ErrUnknownRecipe) Error() string {
	return fmt.Sprintf("recipe: unknown component type %q, known types: %v", e.Type, e.Known)
}

// Get looks up the recipe for a component type. Unknown types return a
// structured error including the set of known types, per spec.md §4.2.
func Get(componentType string) (Recipe, error) {
	r, ok := registry[componentType]
	if !ok {
		return Recipe{}, &ErrUnknownRecipe{Type: componentType, Known: knownTypes()}
	}
	return r, nil
}

func knownTypes() []string {
	out := make([]string, 0, len(registry))
	for t := range registry {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

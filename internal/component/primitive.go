// Package component defines the discovery-protocol interfaces generated
// components implement, per spec.md §9's "dynamic class discovery → interface
// abstraction" design note: rather than the validator inspecting a module's
// namespace, each generated file exports a symbol implementing one of five
// known primitive capabilities, and a generated registration record tells
// the validator the name, type, and constructor for each.
package component

import "context"

// Lifecycle is embedded by every primitive interface.
type Lifecycle interface {
	Setup(ctx context.Context) error
	Cleanup(ctx context.Context) error
}

// Source produces messages without consuming any (0→N).
type Source interface {
	Lifecycle
	Generate(ctx context.Context) (any, error)
}

// Sink consumes messages without producing any (N→0).
type Sink interface {
	Lifecycle
	Consume(ctx context.Context, msg any) error
}

// Transformer maps one input to at most one output (1→{0..1}).
type Transformer interface {
	Lifecycle
	Transform(ctx context.Context, msg any) (any, error)
}

// Splitter maps one input to many outputs (1→N).
type Splitter interface {
	Lifecycle
	Split(ctx context.Context, msg any) ([]any, error)
}

// Merger maps many inputs to one output (N→1).
type Merger interface {
	Lifecycle
	Merge(ctx context.Context, msgs []any) (any, error)
}

// Registration is the record a generated registry file hands the validator:
// the component's name, its recipe type, and a constructor. The validator
// type-asserts the constructed value against the five primitive interfaces
// rather than pattern-matching on class names.
type Registration struct {
	Name string
	Type string
	New  func() any
}

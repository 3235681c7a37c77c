package reachability

import (
	"fmt"
	"regexp"
	"strings"
)

// ErrorCategory is one of the five top-level VR1 error categories.
type ErrorCategory string

const (
	CategoryIngress      ErrorCategory = "ingress_issues"
	CategoryReachability ErrorCategory = "reachability_issues"
	CategoryTermination  ErrorCategory = "termination_issues"
	CategoryStructural   ErrorCategory = "structural_issues"
	CategorySemantic     ErrorCategory = "semantic_issues"
)

// ErrorType is one of the 27 distinct VR1 error types, grounded on
// blueprint_validation/vr1_error_taxonomy.py's VR1ErrorType.
type ErrorType string

const (
	// Ingress issues (5)
	NoBoundaryIngress      ErrorType = "no_boundary_ingress"
	IngressPortNotFound    ErrorType = "ingress_port_not_found"
	InvalidIngressConfig   ErrorType = "invalid_ingress_config"
	ConflictingIngressFlags ErrorType = "conflicting_ingress_flags"
	IngressWithoutComponent ErrorType = "ingress_without_component"

	// Reachability issues (8)
	NoReachableTermination ErrorType = "no_reachable_termination"
	HopLimitExceeded       ErrorType = "hop_limit_exceeded"
	DisconnectedComponent  ErrorType = "disconnected_component"
	InvalidConnection      ErrorType = "invalid_connection"
	MissingOutputPort      ErrorType = "missing_output_port"
	MissingInputPort       ErrorType = "missing_input_port"
	SCCCycleDetected       ErrorType = "scc_cycle_detected"
	PortCouplingViolation  ErrorType = "port_coupling_violation"

	// Termination issues (7)
	ReplyCommitmentUnmet          ErrorType = "reply_commitment_unmet"
	DurableCommitmentUnmet        ErrorType = "durable_commitment_unmet"
	ObservabilityCommitmentUnmet  ErrorType = "observability_commitment_unmet"
	WebSocketHandshakeFailed      ErrorType = "websocket_handshake_failed"
	GRPCStreamingFailed           ErrorType = "grpc_streaming_failed"
	CompoundCommitmentFailed      ErrorType = "compound_commitment_failed"
	TerminationSemanticsInvalid   ErrorType = "termination_semantics_invalid"

	// Structural issues (4)
	ComponentNotFound    ErrorType = "component_not_found"
	MalformedBlueprint   ErrorType = "malformed_blueprint"
	MissingComponentType ErrorType = "missing_component_type"
	InvalidComponentType ErrorType = "invalid_component_type"

	// Semantic issues (3)
	InconsistentBoundarySemantics  ErrorType = "inconsistent_boundary_semantics"
	DurabilityInconsistency       ErrorType = "durability_inconsistency"
	MonitoredBusMisconfiguration  ErrorType = "monitored_bus_misconfiguration"
)

var categoryOf = map[ErrorType]ErrorCategory{
	NoBoundaryIngress:       CategoryIngress,
	IngressPortNotFound:     CategoryIngress,
	InvalidIngressConfig:    CategoryIngress,
	ConflictingIngressFlags: CategoryIngress,
	IngressWithoutComponent: CategoryIngress,

	NoReachableTermination: CategoryReachability,
	HopLimitExceeded:       CategoryReachability,
	DisconnectedComponent:  CategoryReachability,
	InvalidConnection:      CategoryReachability,
	MissingOutputPort:      CategoryReachability,
	MissingInputPort:       CategoryReachability,
	SCCCycleDetected:       CategoryReachability,
	PortCouplingViolation:  CategoryReachability,

	ReplyCommitmentUnmet:         CategoryTermination,
	DurableCommitmentUnmet:       CategoryTermination,
	ObservabilityCommitmentUnmet: CategoryTermination,
	WebSocketHandshakeFailed:     CategoryTermination,
	GRPCStreamingFailed:          CategoryTermination,
	CompoundCommitmentFailed:     CategoryTermination,
	TerminationSemanticsInvalid:  CategoryTermination,

	ComponentNotFound:    CategoryStructural,
	MalformedBlueprint:   CategoryStructural,
	MissingComponentType: CategoryStructural,
	InvalidComponentType: CategoryStructural,

	InconsistentBoundarySemantics: CategorySemantic,
	DurabilityInconsistency:       CategorySemantic,
	MonitoredBusMisconfiguration:  CategorySemantic,
}

// ErrorContext is rich, PII-sanitized context attached to a ValidationError.
type ErrorContext struct {
	ComponentName        string
	PortName              string
	ConnectionSource       string
	ConnectionTarget       string
	PathTrace              []string
	HopsTraversed          int
	ExpectedTermination    string
	ActualTermination      string
	ComponentType          string
}

// ValidationError is a structured VR1 error: stable code, category, message,
// context, and remediation suggestions.
type ValidationError struct {
	Code        string
	Type        ErrorType
	Category    ErrorCategory
	Message     string
	Context     ErrorContext
	Suggestions []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var pathDataPattern = regexp.MustCompile(`\(.*?\)`)

// sanitizeContext redacts any literal data from the path trace, keeping only
// component.port identifiers, per spec.md §7's PII redaction rule. Grounded
// on vr1_error_taxonomy.py's _sanitize_context / _sanitize_path_step.
func sanitizeContext(ctx ErrorContext) ErrorContext {
	out := ctx
	if len(ctx.PathTrace) > 0 {
		out.PathTrace = make([]string, len(ctx.PathTrace))
		for i, step := range ctx.PathTrace {
			out.PathTrace[i] = pathDataPattern.ReplaceAllString(step, "(data)")
		}
	}
	return out
}

func newError(t ErrorType, message string, ctx ErrorContext, suggestions ...string) *ValidationError {
	cat := categoryOf[t]
	return &ValidationError{
		Code:        fmt.Sprintf("VR1-%s-%s", strings.ToUpper(string(cat)), strings.ToUpper(string(t))),
		Type:        t,
		Category:    cat,
		Message:     message,
		Context:     sanitizeContext(ctx),
		Suggestions: suggestions,
	}
}

// Error factory functions, grounded on vr1_error_taxonomy.py's VR1ErrorFactory.

func errNoBoundaryIngress() *ValidationError {
	return newError(NoBoundaryIngress,
		"no boundary ingress points found - blueprint has no external entry points",
		ErrorContext{},
		"Add boundary_ingress=true to at least one input port",
		"Verify component inputs are properly configured",
		"Check if this is an internal-only blueprint",
	)
}

func errReplyCommitmentUnmet(component, port string, trace []string) *ValidationError {
	return newError(ReplyCommitmentUnmet,
		fmt.Sprintf("reply commitment unmet: %s.%s requires reply but cannot reach satisfies_reply=true port", component, port),
		ErrorContext{ComponentName: component, PortName: port, PathTrace: trace, ExpectedTermination: "satisfies_reply=true"},
		"Add satisfies_reply=true to an appropriate output port",
		"Verify path connectivity to the response port",
	)
}

func errDurableCommitmentUnmet(component, port string, trace []string) *ValidationError {
	return newError(DurableCommitmentUnmet,
		fmt.Sprintf("durable commitment unmet: %s.%s requires a durable sink but none is reachable", component, port),
		ErrorContext{ComponentName: component, PortName: port, PathTrace: trace, ExpectedTermination: "durable=true"},
		"Mark a reachable component durable=true",
		"Verify path connectivity to a durable component",
	)
}

func errObservabilityCommitmentUnmet(component, port string, trace []string) *ValidationError {
	return newError(ObservabilityCommitmentUnmet,
		fmt.Sprintf("observability commitment unmet: %s.%s cannot reach any valid termination", component, port),
		ErrorContext{ComponentName: component, PortName: port, PathTrace: trace, ExpectedTermination: "observability_export=true"},
		"Add observability_export=true to an appropriate output port",
		"Add satisfies_reply or durable termination along the path",
	)
}

func errHopLimitExceeded(component, port string, hops int, trace []string) *ValidationError {
	return newError(HopLimitExceeded,
		fmt.Sprintf("hop limit exceeded: path from %s.%s used %d hops, limit is %d", component, port, hops, MaxIngressHops),
		ErrorContext{ComponentName: component, PortName: port, HopsTraversed: hops, PathTrace: trace},
		"Shorten the component chain between ingress and termination",
		"Introduce an intermediate durable or reply-satisfying component",
	)
}

func errComponentNotFound(name string) *ValidationError {
	return newError(ComponentNotFound,
		fmt.Sprintf("component %q referenced but not found in blueprint", name),
		ErrorContext{ComponentName: name},
		"Check the component name for typos",
		"Verify the component is declared in the blueprint's components list",
	)
}

func errWebSocketHandshakeFailed(component string, trace []string) *ValidationError {
	return newError(WebSocketHandshakeFailed,
		fmt.Sprintf("websocket handshake failed: %s.connection_request cannot reach connection_status", component),
		ErrorContext{ComponentName: component, PathTrace: trace, ExpectedTermination: "connection_status.satisfies_reply=true"},
		"Add satisfies_reply=true to the connection_status output",
	)
}

func errCompoundCommitmentFailed(component, port, detail string, trace []string) *ValidationError {
	return newError(CompoundCommitmentFailed,
		fmt.Sprintf("compound commitment failed for %s.%s: %s", component, port, detail),
		ErrorContext{ComponentName: component, PortName: port, PathTrace: trace},
		"Review the compound termination predicate for this component type",
	)
}

func errMissingComponentType(name string) *ValidationError {
	return newError(MissingComponentType,
		fmt.Sprintf("component %q has no type", name),
		ErrorContext{ComponentName: name},
		"Set a recipe type on the component",
	)
}

func errInvalidComponentType(name, typ string, known []string) *ValidationError {
	return newError(InvalidComponentType,
		fmt.Sprintf("component %q has unknown type %q", name, typ),
		ErrorContext{ComponentName: name, ComponentType: typ},
		fmt.Sprintf("Known types: %s", strings.Join(known, ", ")),
	)
}

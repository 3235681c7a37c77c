package reachability

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/autocoder/internal/blueprint"
	"github.com/c360studio/autocoder/internal/metrics"
)

// componentIndex is a cheap read model over the blueprint for the traversal.
type componentIndex struct {
	bp   *blueprint.Blueprint
	byID map[string]*blueprint.ComponentSpec
}

func newComponentIndex(bp *blueprint.Blueprint) *componentIndex {
	idx := &componentIndex{bp: bp, byID: make(map[string]*blueprint.ComponentSpec, len(bp.Components))}
	for i := range bp.Components {
		idx.byID[bp.Components[i].Name] = &bp.Components[i]
	}
	return idx
}

// Analyze runs the boundary-termination search over every ingress point in
// the blueprint, per spec.md §4.1. The blueprint is admitted iff every
// ingress point terminates.
func Analyze(bp *blueprint.Blueprint) *Result {
	idx := newComponentIndex(bp)
	ingressPoints := identifyBoundaryIngress(bp)

	if len(ingressPoints) == 0 {
		metrics.ReachabilityChecks.WithLabelValues("rejected").Inc()
		metrics.ReachabilityErrors.WithLabelValues(string(CategoryIngress), string(NoBoundaryIngress)).Inc()
		return &Result{
			Admitted: false,
			Ingress: []ReachabilityResult{{
				IngressPoint:     "",
				TerminationFound: false,
				Errors:           []*ValidationError{errNoBoundaryIngress()},
			}},
		}
	}

	results := make([]ReachabilityResult, 0, len(ingressPoints))
	admitted := true
	for _, ip := range ingressPoints {
		r := validateIngress(idx, ip.component, ip.port)
		if !r.TerminationFound {
			admitted = false
			for _, e := range r.Errors {
				metrics.ReachabilityErrors.WithLabelValues(string(e.Category), string(e.Type)).Inc()
			}
		} else {
			metrics.ReachabilityHops.Observe(float64(len(r.PathTrace)))
		}
		results = append(results, r)
	}
	if admitted {
		metrics.ReachabilityChecks.WithLabelValues("admitted").Inc()
	} else {
		metrics.ReachabilityChecks.WithLabelValues("rejected").Inc()
	}

	return &Result{Admitted: admitted, Ingress: results}
}

type ingressPoint struct {
	component string
	port      string
}

func identifyBoundaryIngress(bp *blueprint.Blueprint) []ingressPoint {
	var out []ingressPoint
	for _, c := range bp.Components {
		for _, p := range c.Inputs {
			if p.BoundaryIngress {
				out = append(out, ingressPoint{component: c.Name, port: p.Name})
			}
		}
	}
	return out
}

func validateIngress(idx *componentIndex, componentName, portName string) ReachabilityResult {
	ingressID := fmt.Sprintf("%s.%s", componentName, portName)

	comp, ok := idx.byID[componentName]
	if !ok {
		return ReachabilityResult{
			IngressPoint: ingressID,
			Errors:       []*ValidationError{errComponentNotFound(componentName)},
		}
	}
	port, ok := comp.InputPort(portName)
	if !ok {
		return ReachabilityResult{
			IngressPoint: ingressID,
			Errors: []*ValidationError{newError(IngressPortNotFound,
				fmt.Sprintf("declared ingress port %s.%s not found", componentName, portName),
				ErrorContext{ComponentName: componentName, PortName: portName})},
		}
	}

	mode := determineTerminationCommitment(port)

	initial := PathTraversalState{
		CurrentComponent:  componentName,
		CurrentPort:       portName,
		HopsUsed:          0,
		VisitedComponents: map[string]struct{}{componentName: {}},
		VisitedEdges:      map[string]struct{}{},
		PathTrace:         []string{fmt.Sprintf("%s.%s(ingress)", componentName, portName)},
	}

	found, finalTrace, hopLimitExceeded, maxHops := executeReachabilitySearch(idx, initial, mode)

	// Compound commitments layered on top of the base search, per spec.md §4.1.
	if comp.Type == "WebSocket" {
		if cf, ctrace, handled := checkWebSocketCompound(idx, comp, portName, initial); handled {
			found, finalTrace = cf, ctrace
		}
	}

	result := ReachabilityResult{
		IngressPoint:     ingressID,
		TerminationFound: found,
		Mode:             mode,
		PathTrace:        finalTrace,
	}
	if !found {
		switch {
		case hopLimitExceeded:
			result.Errors = []*ValidationError{errHopLimitExceeded(componentName, portName, maxHops, finalTrace)}
		case comp.Type == "WebSocket" && portName == "connection_request":
			result.Errors = []*ValidationError{errWebSocketHandshakeFailed(componentName, finalTrace)}
		case comp.Type == "WebSocket" && portName == "message_in":
			result.Errors = []*ValidationError{errCompoundCommitmentFailed(componentName, portName,
				"neither a reply path nor an observability path (monitored_bus_ok) was reachable", finalTrace)}
		default:
			result.Errors = []*ValidationError{terminationError(mode, comp, portName, finalTrace)}
		}
	}
	return result
}

func determineTerminationCommitment(ingress blueprint.PortSpec) TerminationMode {
	switch {
	case ingress.ReplyRequired:
		return ReplyCommitment
	case ingress.BoundaryIngress:
		return DurableCommitment
	default:
		return ObservabilityOK
	}
}

func terminationError(mode TerminationMode, comp *blueprint.ComponentSpec, port string, trace []string) *ValidationError {
	switch mode {
	case ReplyCommitment:
		return errReplyCommitmentUnmet(comp.Name, port, trace)
	case DurableCommitment:
		return errDurableCommitmentUnmet(comp.Name, port, trace)
	default:
		return errObservabilityCommitmentUnmet(comp.Name, port, trace)
	}
}

// executeReachabilitySearch runs the bounded BFS described in spec.md §4.1:
// state = (component, port); each step is either zero-cost intra-component
// coupling or a hop-incrementing binding traversal. Cycles are suppressed by
// the visited-state key (component, port, sorted visited components).
func executeReachabilitySearch(idx *componentIndex, initial PathTraversalState, mode TerminationMode) (found bool, trace []string, hopLimitExceeded bool, maxHops int) {
	queue := []PathTraversalState{initial}
	seen := map[string]struct{}{}

	var last PathTraversalState
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		last = cur

		if cur.HopsUsed > MaxIngressHops {
			hopLimitExceeded = true
			if cur.HopsUsed > maxHops {
				maxHops = cur.HopsUsed
			}
			continue
		}

		key := stateKey(cur)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if checkTerminationCommitment(idx, cur, mode) {
			return true, cur.PathTrace, false, 0
		}

		queue = append(queue, nextStates(idx, cur)...)
	}

	return false, last.PathTrace, hopLimitExceeded, maxHops
}

func stateKey(s PathTraversalState) string {
	comps := make([]string, 0, len(s.VisitedComponents))
	for c := range s.VisitedComponents {
		comps = append(comps, c)
	}
	sort.Strings(comps)
	return fmt.Sprintf("%s|%s|%s", s.CurrentComponent, s.CurrentPort, strings.Join(comps, ","))
}

// nextStates generates the reachable next states, honoring port-faithful
// coupling (intra-component, free) and binding traversal (inter-component,
// one hop). Grounded on vr1_validator.py's _generate_next_states, generalized
// from the single-component case to the full blueprint graph via Bindings.
func nextStates(idx *componentIndex, s PathTraversalState) []PathTraversalState {
	comp, ok := idx.byID[s.CurrentComponent]
	if !ok {
		return nil
	}

	var out []PathTraversalState

	if _, isInput := comp.InputPort(s.CurrentPort); isInput {
		for _, outPort := range coupledOutputs(comp, s.CurrentPort) {
			next := s.clone()
			next.CurrentPort = outPort
			next.PathTrace = append(next.PathTrace, fmt.Sprintf("%s.%s(internal)", s.CurrentComponent, outPort))
			out = append(out, next)
		}
	}

	if _, isOutput := comp.OutputPort(s.CurrentPort); isOutput {
		for _, binding := range idx.bp.BindingsFrom(s.CurrentComponent, s.CurrentPort) {
			edgeKey := fmt.Sprintf("%s.%s->%s.%s", binding.SourceComponent, binding.SourcePort, binding.TargetComponent, binding.TargetPort)
			if _, dup := s.VisitedEdges[edgeKey]; dup {
				continue
			}
			next := s.clone()
			next.CurrentComponent = binding.TargetComponent
			next.CurrentPort = binding.TargetPort
			next.HopsUsed = s.HopsUsed + 1
			next.VisitedComponents[binding.TargetComponent] = struct{}{}
			next.VisitedEdges[edgeKey] = struct{}{}
			next.PathTrace = append(next.PathTrace, fmt.Sprintf("%s.%s(external)", binding.TargetComponent, binding.TargetPort))
			out = append(out, next)
		}
	}

	return out
}

func checkTerminationCommitment(idx *componentIndex, s PathTraversalState, mode TerminationMode) bool {
	comp, ok := idx.byID[s.CurrentComponent]
	if !ok {
		return false
	}

	switch mode {
	case ReplyCommitment:
		if p, ok := comp.OutputPort(s.CurrentPort); ok && p.SatisfiesReply {
			return true
		}
		return false

	case DurableCommitment:
		if _, ok := comp.InputPort(s.CurrentPort); ok && comp.Durable {
			return true
		}
		return false

	default: // ObservabilityOK
		if p, ok := comp.OutputPort(s.CurrentPort); ok && p.ObservabilityExport {
			return true
		}
		if checkTerminationCommitment(idx, s, ReplyCommitment) {
			return true
		}
		if checkTerminationCommitment(idx, s, DurableCommitment) {
			return true
		}
		return false
	}
}

// checkWebSocketCompound implements the WebSocket handshake and messaging
// compound commitments from spec.md §4.1: connection_request requires a
// REPLY path to connection_status; message_in requires EITHER a reply path
// OR (when monitored_bus_ok=true) an observability path.
func checkWebSocketCompound(idx *componentIndex, comp *blueprint.ComponentSpec, port string, initial PathTraversalState) (bool, []string, bool) {
	switch port {
	case "connection_request":
		found, trace, _, _ := executeReachabilitySearch(idx, initial, ReplyCommitment)
		return found, trace, true

	case "message_in":
		found, trace, _, _ := executeReachabilitySearch(idx, initial, ReplyCommitment)
		if found {
			return true, trace, true
		}
		if comp.MonitoredBusOK {
			found, trace, _, _ = executeReachabilitySearch(idx, initial, ObservabilityOK)
			return found, trace, true
		}
		return false, trace, true

	default:
		return false, nil, false
	}
}

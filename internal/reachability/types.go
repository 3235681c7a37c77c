// Package reachability implements the boundary-termination static analyzer
// (C1): before any code is emitted, it proves that every externally
// observable ingress on a blueprint can reach a termination commitment via a
// port-faithful path through the component graph.
package reachability

// TerminationMode classifies what an ingress point must reach to terminate.
type TerminationMode string

const (
	// ReplyCommitment: ingress has reply_required=true; must reach satisfies_reply.
	ReplyCommitment TerminationMode = "REPLY"
	// DurableCommitment: boundary ingress with no reply requirement; must
	// reach a durable component via an input port.
	DurableCommitment TerminationMode = "DURABLE"
	// ObservabilityOK: internal ingress; may terminate at reply, durable, or
	// an observability export.
	ObservabilityOK TerminationMode = "OBSERVABILITY_OK"
)

// MaxIngressHops bounds the BFS search depth, per spec.md §4.1.
const MaxIngressHops = 10

// PathTraversalState is analyzer bookkeeping for one point in the search.
type PathTraversalState struct {
	CurrentComponent  string
	CurrentPort       string
	HopsUsed          int
	VisitedComponents map[string]struct{}
	VisitedEdges      map[string]struct{}
	PathTrace         []string
}

func (s PathTraversalState) clone() PathTraversalState {
	comps := make(map[string]struct{}, len(s.VisitedComponents))
	for k := range s.VisitedComponents {
		comps[k] = struct{}{}
	}
	edges := make(map[string]struct{}, len(s.VisitedEdges))
	for k := range s.VisitedEdges {
		edges[k] = struct{}{}
	}
	trace := make([]string, len(s.PathTrace))
	copy(trace, s.PathTrace)
	return PathTraversalState{
		CurrentComponent:  s.CurrentComponent,
		CurrentPort:       s.CurrentPort,
		HopsUsed:          s.HopsUsed,
		VisitedComponents: comps,
		VisitedEdges:      edges,
		PathTrace:         trace,
	}
}

// ReachabilityResult is the per-ingress outcome of the search.
type ReachabilityResult struct {
	IngressPoint     string
	TerminationFound bool
	Mode             TerminationMode
	PathTrace        []string
	Errors           []*ValidationError
}

// Result is the overall outcome for a blueprint.
type Result struct {
	Admitted bool
	Ingress  []ReachabilityResult
}

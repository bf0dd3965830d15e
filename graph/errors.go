package graph

import "errors"

// Sentinel errors for WorkingGraph operations (spec §4.1, §7 Structural
// errors).
var (
	// ErrDuplicateNode indicates AddNode was called with a name already
	// present in the graph.
	ErrDuplicateNode = errors.New("graph: duplicate node")

	// ErrMissingEndpoint indicates AddEdge referenced a source or target
	// that is not a node in the graph.
	ErrMissingEndpoint = errors.New("graph: missing endpoint")

	// ErrDuplicateEdge indicates AddEdge was called with a key already
	// present in the graph.
	ErrDuplicateEdge = errors.New("graph: duplicate edge key")

	// ErrUnknownNode indicates RemoveNode, or any query, referenced a node
	// name that does not exist.
	ErrUnknownNode = errors.New("graph: unknown node")

	// ErrUnknownEdge indicates RemoveEdge, or any query, referenced an edge
	// key that does not exist.
	ErrUnknownEdge = errors.New("graph: unknown edge")

	// ErrUnknownFlow indicates RemoveFlow referenced a flow index with no
	// recorded contribution on the edge.
	ErrUnknownFlow = errors.New("graph: unknown flow index")

	// ErrCapacityInvariant indicates a placement would violate
	// 0 <= flow <= capacity+epsilon or sum(flows) == flow beyond tolerance.
	// This is a fail-fast bug signal, never a user-facing condition (spec §7
	// Numeric).
	ErrCapacityInvariant = errors.New("graph: capacity invariant violated")
)

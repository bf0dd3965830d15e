package graph

// Node is a vertex in a WorkingGraph. Attrs carries through from the
// originating netnodel.Node (or pseudo source/sink synthesis in the demand
// package); it is not interpreted by this package.
type Node struct {
	Name  string
	Attrs map[string]interface{}
}

// Edge is a directed arc in a WorkingGraph with a stable unique key.
// Per spec §3 "Working Graph", every edge always carries Capacity, Cost,
// Flow (aggregate assigned flow, initially 0), and Flows (per-flow
// contribution, initially empty).
type Edge struct {
	Key      string
	Source   string
	Target   string
	Capacity float64
	Cost     float64
	Flow     float64
	Flows    map[FlowIndex]float64
	Attrs    map[string]interface{}
}

func newEdge(key, source, target string, capacity, cost float64) *Edge {
	return &Edge{
		Key:      key,
		Source:   source,
		Target:   target,
		Capacity: capacity,
		Cost:     cost,
		Flows:    make(map[FlowIndex]float64),
		Attrs:    make(map[string]interface{}),
	}
}

// clone returns a deep-enough copy of e: Flows is duplicated, Attrs is a
// shallow copy (values are treated as immutable once attached, matching
// netnodel.AttrMap.Clone's convention).
func (e *Edge) clone() *Edge {
	ne := &Edge{
		Key:      e.Key,
		Source:   e.Source,
		Target:   e.Target,
		Capacity: e.Capacity,
		Cost:     e.Cost,
		Flow:     e.Flow,
		Flows:    make(map[FlowIndex]float64, len(e.Flows)),
		Attrs:    make(map[string]interface{}, len(e.Attrs)),
	}
	for k, v := range e.Flows {
		ne.Flows[k] = v
	}
	for k, v := range e.Attrs {
		ne.Attrs[k] = v
	}

	return ne
}

// ResidualCapacity returns Capacity - Flow (may be used directly by
// edge-selection policies in the spf package).
func (e *Edge) ResidualCapacity() float64 {
	return e.Capacity - e.Flow
}

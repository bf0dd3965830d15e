package graph

import "fmt"

// FlowIndex identifies a single Flow placed on a WorkingGraph: the demand's
// source/destination, a flow-class label (the policy/priority grouping),
// and a monotonic ID disambiguating multiple flows of the same class
// between the same endpoints (spec §3 Flow).
type FlowIndex struct {
	Src   string
	Dst   string
	Class string
	ID    uint64
}

// String renders a stable, human-readable key; used for map keys in
// exported/serialized form where a struct key is not JSON-safe.
func (f FlowIndex) String() string {
	return fmt.Sprintf("%s->%s|%s|%d", f.Src, f.Dst, f.Class, f.ID)
}

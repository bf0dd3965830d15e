package graph

// PathBundle is a compact representation of one-or-more equal-cost paths
// from Src to Dst as a reverse predecessor DAG (spec §3 Path-Bundle):
// Preds[v][u] lists the parallel edge keys used on the u->v hop, for every
// u that is an equal-cost predecessor of v on a shortest path from Src.
//
// Precondition (documented, not runtime-checked): Preds is acyclic. Callers
// — spf.SPF and ksp.KSP — are responsible for this; Enumerate does not
// detect cycles, matching spec §4.2.4's documented precondition.
type PathBundle struct {
	Src   string
	Dst   string
	Cost  float64
	Preds map[string]map[string][]string

	nodes map[string]struct{}
	edges map[string]struct{}
}

// NewPathBundle builds a PathBundle, computing the node and edge sets
// reachable backward from dst over preds, stopping at src.
func NewPathBundle(src, dst string, cost float64, preds map[string]map[string][]string) *PathBundle {
	b := &PathBundle{
		Src:   src,
		Dst:   dst,
		Cost:  cost,
		Preds: preds,
		nodes: make(map[string]struct{}),
		edges: make(map[string]struct{}),
	}
	b.collect(dst, make(map[string]struct{}))

	return b
}

func (b *PathBundle) collect(node string, visiting map[string]struct{}) {
	if _, ok := b.nodes[node]; ok {
		return
	}
	if _, ok := visiting[node]; ok {
		return // defense-in-depth only; Preds is documented acyclic.
	}
	b.nodes[node] = struct{}{}
	if node == b.Src {
		return
	}
	visiting[node] = struct{}{}
	for u, edgeIDs := range b.Preds[node] {
		for _, eid := range edgeIDs {
			b.edges[eid] = struct{}{}
		}
		b.collect(u, visiting)
	}
	delete(visiting, node)
}

// Nodes returns the set of node names appearing in the bundle.
func (b *PathBundle) Nodes() map[string]struct{} { return b.nodes }

// Edges returns the set of edge keys appearing in the bundle.
func (b *PathBundle) Edges() map[string]struct{} { return b.edges }

// Reachable reports whether Dst is actually connected back to Src through
// Preds (false for an empty/degenerate bundle where Src==Dst with no hops
// is still true).
func (b *PathBundle) Reachable() bool {
	_, ok := b.nodes[b.Src]

	return ok
}

// Enumerate lazily walks every distinct concrete Path encoded by the
// bundle via reverse DFS from Dst to Src, invoking yield for each. If
// splitParallelEdges is true, parallel edges at a hop are expanded into
// the Cartesian product (one path per edge choice at every hop);
// otherwise each hop keeps its full edge-ID tuple as one PathStep.
// Enumeration stops early if yield returns false.
func (b *PathBundle) Enumerate(splitParallelEdges bool, yield func(Path) bool) {
	if !b.Reachable() {
		return
	}
	b.enumerateFrom(b.Dst, nil, nil, b.Cost, splitParallelEdges, yield)
}

// enumerateFrom performs the reverse DFS. node is the current (walking
// backward) node; outEdges is the tuple node uses to leave for the step
// that follows it toward Dst (nil for Dst itself, which has no outgoing
// hop). tail holds the PathStep sequence already resolved for node and
// everything after it, in src-to-dst order; each recursive step prepends
// node's own PathStep, so by the time Src is reached tail is the
// complete, correctly ordered Path.
func (b *PathBundle) enumerateFrom(node string, outEdges []string, tail []PathStep, cost float64, split bool, yield func(Path) bool) bool {
	steps := append([]PathStep{{Node: node, Edges: outEdges}}, tail...)

	if node == b.Src {
		return yield(Path{Steps: steps, Cost: cost})
	}

	preds := b.Preds[node]
	if len(preds) == 0 {
		return true // dead end (should not occur for a well-formed bundle)
	}

	for u, edgeIDs := range preds {
		if split {
			for _, eid := range edgeIDs {
				if !b.enumerateFrom(u, []string{eid}, steps, cost, split, yield) {
					return false
				}
			}
		} else {
			edges := append([]string{}, edgeIDs...)
			if !b.enumerateFrom(u, edges, steps, cost, split, yield) {
				return false
			}
		}
	}

	return true
}

// EnumerateAll collects Enumerate's output into a slice. Use Enumerate
// directly with a yield callback when the bundle may expand combinatorially
// (many parallel edges at many hops) and only a bounded number of paths is
// needed.
func (b *PathBundle) EnumerateAll(splitParallelEdges bool) []Path {
	var out []Path
	b.Enumerate(splitParallelEdges, func(p Path) bool {
		out = append(out, p)

		return true
	})

	return out
}

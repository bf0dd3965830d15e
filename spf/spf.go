package spf

import (
	"container/heap"
	"math"
	"sort"

	"github.com/netgraph/netgraph/graph"
)

// Options configures SPF, following the teacher's functional-options
// convention (dijkstra.Options/dijkstra.Option).
type Options struct {
	// Destination, if non-empty, enables early termination: expansion
	// stops from the destination node once reached, but the heap keeps
	// draining while the next candidate's cost equals costs[Destination]
	// so every equal-cost predecessor is settled (spec §4.2.2).
	Destination string

	// Selector is the edge-selection policy applied at every hop.
	// Defaults to AllMinCost().
	Selector Selector

	// Multipath records every equal-cost predecessor of a node instead
	// of only the first one found. Defaults to true.
	Multipath bool

	// ExcludedEdges and ExcludedNodes are frozen for the duration of one
	// SPF call.
	ExcludedEdges map[string]struct{}
	ExcludedNodes map[string]struct{}
}

// Option is a functional option for SPF.
type Option func(*Options)

// WithDestination sets the optional destination for early termination.
func WithDestination(dst string) Option {
	return func(o *Options) { o.Destination = dst }
}

// WithSelector overrides the default edge-selection policy.
func WithSelector(sel Selector) Option {
	return func(o *Options) { o.Selector = sel }
}

// WithoutMultipath disables multipath predecessor recording: only the
// first-discovered minimal-cost predecessor is kept per node.
func WithoutMultipath() Option {
	return func(o *Options) { o.Multipath = false }
}

// WithExcludedEdges freezes a set of edge keys out of consideration.
func WithExcludedEdges(ids ...string) Option {
	return func(o *Options) {
		for _, id := range ids {
			o.ExcludedEdges[id] = struct{}{}
		}
	}
}

// WithExcludedNodes freezes a set of node names out of consideration.
func WithExcludedNodes(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.ExcludedNodes[n] = struct{}{}
		}
	}
}

// DefaultOptions returns SPF's default configuration: AllMinCost
// selection, multipath enabled, no destination, no exclusions.
func DefaultOptions() Options {
	return Options{
		Selector:      AllMinCost(),
		Multipath:     true,
		ExcludedEdges: make(map[string]struct{}),
		ExcludedNodes: make(map[string]struct{}),
	}
}

// SPF computes shortest costs and a predecessor DAG from src over g,
// applying cfg.Selector at every hop (spec §4.2.2).
//
// Returns costs (node -> minimal cost from src) and preds (node ->
// predecessor node -> parallel edge IDs used on that hop). costs[src] is
// always 0; preds[src] is always empty.
//
// Fails with ErrUnknownSource if src is not a node of g.
func SPF(g *graph.WorkingGraph, src string, opts ...Option) (map[string]float64, map[string]map[string][]string, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if !g.HasNode(src) {
		return nil, nil, ErrUnknownSource
	}

	costs := map[string]float64{src: 0}
	preds := map[string]map[string][]string{}
	visited := map[string]bool{}

	pq := make(nodePQ, 0)
	heap.Init(&pq)
	var counter uint64
	heap.Push(&pq, &nodeItem{node: src, cost: 0, counter: counter})
	counter++

	destSettled := false
	destCost := math.Inf(1)

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*nodeItem)
		u, d := item.node, item.cost

		if visited[u] {
			continue
		}
		if destSettled && d > destCost+Epsilon {
			break
		}
		visited[u] = true

		if cfg.Destination != "" && u == cfg.Destination {
			if !destSettled {
				destSettled = true
				destCost = d
			}

			continue // stop expansion from the destination
		}

		if _, excluded := cfg.ExcludedNodes[u]; excluded {
			continue
		}

		neighborSet := map[string]struct{}{}
		for _, e := range g.OutEdges(u) {
			neighborSet[e.Target] = struct{}{}
		}
		neighbors := make([]string, 0, len(neighborSet))
		for v := range neighborSet {
			neighbors = append(neighbors, v)
		}
		sort.Strings(neighbors)

		for _, v := range neighbors {
			if v == src {
				continue // src keeps cost 0 and no predecessors
			}
			if _, excluded := cfg.ExcludedNodes[v]; excluded {
				continue
			}
			edgeIDs := g.EdgesBetween(u, v)
			cost, edges, ok := cfg.Selector.Func(g, u, v, edgeIDs, cfg.ExcludedEdges, cfg.ExcludedNodes)
			if !ok {
				continue
			}

			newCost := d + cost
			old, seen := costs[v]

			switch {
			case !seen || newCost < old-Epsilon:
				costs[v] = newCost
				preds[v] = map[string][]string{u: append([]string{}, edges...)}
				heap.Push(&pq, &nodeItem{node: v, cost: newCost, counter: counter})
				counter++
			case cfg.Multipath && math.Abs(newCost-old) <= Epsilon:
				if preds[v] == nil {
					preds[v] = map[string][]string{}
				}
				preds[v][u] = append([]string{}, edges...)
			}
		}
	}

	return costs, preds, nil
}

// Bundle packages an SPF result for dst into a graph.PathBundle, or
// (nil, false) if dst was never reached.
func Bundle(src, dst string, costs map[string]float64, preds map[string]map[string][]string) (*graph.PathBundle, bool) {
	cost, ok := costs[dst]
	if !ok {
		return nil, false
	}

	return graph.NewPathBundle(src, dst, cost, preds), true
}

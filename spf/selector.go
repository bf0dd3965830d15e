package spf

import (
	"sort"

	"github.com/netgraph/netgraph/graph"
)

// Epsilon is the fixed numerical tolerance used for cost-tie and
// capacity-remaining comparisons.
const Epsilon = 1e-10

// SelectFunc is an edge-selection policy (spec §4.2.1): given the graph,
// the parallel edge IDs between src and dst, and the frozen exclusion
// sets, it returns the selected cost and the edges tied at that cost.
// ok is false when dst is excluded or no admissible edge exists.
type SelectFunc func(g *graph.WorkingGraph, src, dst string, edgeIDs []string, excludedEdges, excludedNodes map[string]struct{}) (cost float64, edges []string, ok bool)

// Selector names a built-in or user-supplied edge-selection policy.
type Selector struct {
	Name string
	Func SelectFunc
}

// AllMinCost selects every parallel edge tied at the minimum cost
// (spec §4.2.1 ALL_MIN_COST).
func AllMinCost() Selector {
	return Selector{Name: "ALL_MIN_COST", Func: allMinCost(false)}
}

// AllMinCostWithCapRemaining is AllMinCost restricted to edges with
// capacity - flow > Epsilon (spec §4.2.1 ALL_MIN_COST_WITH_CAP_REMAINING).
func AllMinCostWithCapRemaining() Selector {
	return Selector{Name: "ALL_MIN_COST_WITH_CAP_REMAINING", Func: allMinCost(true)}
}

// SingleMinCost selects one edge: lowest cost, ties broken by ascending
// key (spec §4.2.1 SINGLE_MIN_COST).
func SingleMinCost() Selector {
	return Selector{Name: "SINGLE_MIN_COST", Func: singleMinCost}
}

// UserDefinedSelector wraps a caller-supplied SelectFunc (spec §4.2.1
// USER_DEFINED).
func UserDefinedSelector(fn SelectFunc) Selector {
	return Selector{Name: "USER_DEFINED", Func: fn}
}

func allMinCost(requireCapRemaining bool) SelectFunc {
	return func(g *graph.WorkingGraph, src, dst string, edgeIDs []string, excludedEdges, excludedNodes map[string]struct{}) (float64, []string, bool) {
		if _, excluded := excludedNodes[dst]; excluded {
			return 0, nil, false
		}

		var candidates []*graph.Edge
		for _, id := range edgeIDs {
			if _, ex := excludedEdges[id]; ex {
				continue
			}
			e, ok := g.Edge(id)
			if !ok {
				continue
			}
			if requireCapRemaining && e.ResidualCapacity() <= Epsilon {
				continue
			}
			candidates = append(candidates, e)
		}
		if len(candidates) == 0 {
			return 0, nil, false
		}

		best := candidates[0].Cost
		for _, e := range candidates[1:] {
			if e.Cost < best {
				best = e.Cost
			}
		}

		var ids []string
		for _, e := range candidates {
			if e.Cost <= best+Epsilon {
				ids = append(ids, e.Key)
			}
		}
		sort.Strings(ids)

		return best, ids, true
	}
}

func singleMinCost(g *graph.WorkingGraph, src, dst string, edgeIDs []string, excludedEdges, excludedNodes map[string]struct{}) (float64, []string, bool) {
	if _, excluded := excludedNodes[dst]; excluded {
		return 0, nil, false
	}

	var best *graph.Edge
	for _, id := range edgeIDs {
		if _, ex := excludedEdges[id]; ex {
			continue
		}
		e, ok := g.Edge(id)
		if !ok {
			continue
		}
		switch {
		case best == nil:
			best = e
		case e.Cost < best.Cost-Epsilon:
			best = e
		case e.Cost <= best.Cost+Epsilon && e.Key < best.Key:
			best = e
		}
	}
	if best == nil {
		return 0, nil, false
	}

	return best.Cost, []string{best.Key}, true
}

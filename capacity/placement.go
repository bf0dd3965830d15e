package capacity

import (
	"sort"

	"github.com/netgraph/netgraph/graph"
)

// PlacementResult reports what a PlaceFlow call actually did (spec §4.3.3).
type PlacementResult struct {
	Placed       float64
	Remaining    float64
	TouchedNodes []string
	TouchedEdges []string
}

// PlaceFlow computes the maximum flow placeable along preds (clamped to
// amount), writes each participating edge's Flow and Flows[flowIndex]
// contribution, and reports what was placed. Returns ErrUnsupportedStrategy
// for any Strategy other than Proportional or EqualBalanced.
func PlaceFlow(g *graph.WorkingGraph, src, dst string, preds map[string]map[string][]string, amount float64, flowIndex graph.FlowIndex, strategy Strategy) (PlacementResult, error) {
	result, err := Compute(g, src, dst, preds, strategy)
	if err != nil {
		return PlacementResult{}, err
	}
	if result.TotalFlow <= Epsilon || amount <= Epsilon {
		return PlacementResult{Placed: 0, Remaining: amount}, nil
	}

	placed := result.TotalFlow
	if placed > amount {
		placed = amount
	}

	nodeSet := make(map[string]struct{})
	var touchedEdges []string
	for edgeID, fraction := range result.EdgeFraction {
		e, ok := g.Edge(edgeID)
		if !ok {
			continue
		}
		share := fraction * placed
		if share <= Epsilon {
			continue
		}
		e.Flow += share
		e.Flows[flowIndex] += share
		touchedEdges = append(touchedEdges, edgeID)
		nodeSet[e.Source] = struct{}{}
		nodeSet[e.Target] = struct{}{}
	}

	touchedNodes := make([]string, 0, len(nodeSet))
	for n := range nodeSet {
		touchedNodes = append(touchedNodes, n)
	}
	sort.Strings(touchedNodes)
	sort.Strings(touchedEdges)

	return PlacementResult{
		Placed:       placed,
		Remaining:    amount - placed,
		TouchedNodes: touchedNodes,
		TouchedEdges: touchedEdges,
	}, nil
}

// RemoveFlow subtracts flowIndex's contribution from every edge that
// carries it, or — when flowIndex is nil — zeroes Flow and clears Flows
// on every edge in the graph (spec §4.3.3 remove_flow_from_graph).
func RemoveFlow(g *graph.WorkingGraph, flowIndex *graph.FlowIndex) {
	for _, e := range g.Edges() {
		if flowIndex == nil {
			e.Flow = 0
			for k := range e.Flows {
				delete(e.Flows, k)
			}

			continue
		}
		contrib, ok := e.Flows[*flowIndex]
		if !ok {
			continue
		}
		e.Flow -= contrib
		if e.Flow < 0 {
			e.Flow = 0
		}
		delete(e.Flows, *flowIndex)
	}
}

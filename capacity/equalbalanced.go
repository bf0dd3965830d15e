package capacity

import (
	"math"

	"github.com/netgraph/netgraph/graph"
)

// fwdArc is a forward-oriented view of one concrete parallel edge,
// indexed by its tail node (forward[u] lists arcs leaving u).
type fwdArc struct {
	id  string
	to  string
	cap float64
}

// invertForward turns preds (child -> parent -> edge IDs) into a
// forward adjacency (parent -> children arcs), since equalBalanced
// propagates flow in the src->dst direction.
func invertForward(g *graph.WorkingGraph, preds map[string]map[string][]string) map[string][]fwdArc {
	forward := make(map[string][]fwdArc)
	for v, predMap := range preds {
		for u, edgeIDs := range predMap {
			for _, id := range edgeIDs {
				e, ok := g.Edge(id)
				if !ok {
					continue
				}
				forward[u] = append(forward[u], fwdArc{id: id, to: v, cap: e.ResidualCapacity()})
			}
		}
	}

	return forward
}

// topoOrder computes a Kahn's-algorithm topological ordering of the
// nodes reachable from src within forward, restricted to the subgraph
// src can reach (preds is already acyclic by precondition, so this
// always succeeds over that reachable subgraph).
func topoOrder(forward map[string][]fwdArc, src string) []string {
	reachable := map[string]struct{}{src: {}}
	queue := []string{src}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, a := range forward[u] {
			if _, ok := reachable[a.to]; ok {
				continue
			}
			reachable[a.to] = struct{}{}
			queue = append(queue, a.to)
		}
	}

	indegree := make(map[string]int, len(reachable))
	for n := range reachable {
		indegree[n] = 0
	}
	for u := range reachable {
		for _, a := range forward[u] {
			indegree[a.to]++
		}
	}

	var order []string
	ready := []string{}
	for _, n := range queue {
		if indegree[n] == 0 {
			ready = append(ready, n)
		}
	}
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)
		for _, a := range forward[n] {
			indegree[a.to]--
			if indegree[a.to] == 0 {
				ready = append(ready, a.to)
			}
		}
	}

	return order
}

// equalBalanced propagates a nominal unit of flow from src, splitting
// it equally across every out-arc at each hop in topological order
// (spec §4.3.2), then scales the whole assignment down to the largest
// value that keeps every arc within its residual capacity.
func equalBalanced(g *graph.WorkingGraph, src, dst string, preds map[string]map[string][]string) Result {
	forward := invertForward(g, preds)
	if _, ok := forward[src]; !ok {
		return emptyResult()
	}

	order := topoOrder(forward, src)
	if len(order) == 0 {
		return emptyResult()
	}

	nominal := make(map[string]float64, len(order))
	nominal[src] = 1.0
	arcNominal := make(map[string]float64)

	reachesDst := computeReachesDst(forward, order, dst)

	for _, u := range order {
		out := forward[u]
		if len(out) == 0 {
			continue
		}
		var live []fwdArc
		for _, a := range out {
			if reachesDst[a.to] {
				live = append(live, a)
			}
		}
		if len(live) == 0 {
			continue
		}
		share := nominal[u] / float64(len(live))
		for _, a := range live {
			arcNominal[a.id] += share
			nominal[a.to] += share
		}
	}

	if nominal[dst] <= Epsilon {
		return emptyResult()
	}

	scale := math.Inf(1)
	arcByID := make(map[string]fwdArc)
	for _, out := range forward {
		for _, a := range out {
			arcByID[a.id] = a
		}
	}
	for id, n := range arcNominal {
		if n <= Epsilon {
			continue
		}
		a := arcByID[id]
		if a.cap <= Epsilon {
			return emptyResult()
		}
		if feasible := a.cap / n; feasible < scale {
			scale = feasible
		}
	}

	total := nominal[dst] * scale
	if total <= Epsilon {
		return emptyResult()
	}

	fraction := make(map[string]float64, len(arcNominal))
	for id, n := range arcNominal {
		flow := n * scale
		if flow > Epsilon {
			fraction[id] = flow / total
		}
	}

	return Result{TotalFlow: total, EdgeFraction: fraction}
}

// computeReachesDst marks every node (in the reachable subgraph) that
// has a forward path to dst, so dead branches don't absorb a share of
// flow that can never arrive.
func computeReachesDst(forward map[string][]fwdArc, order []string, dst string) map[string]bool {
	reaches := make(map[string]bool, len(order))
	reaches[dst] = true
	for i := len(order) - 1; i >= 0; i-- {
		u := order[i]
		if reaches[u] {
			continue
		}
		for _, a := range forward[u] {
			if reaches[a.to] {
				reaches[u] = true

				break
			}
		}
	}

	return reaches
}

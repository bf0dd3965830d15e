package capacity

import (
	"math"

	"github.com/netgraph/netgraph/graph"
)

// arc is one edge of the flow network built from a predecessor DAG: a
// single parallel edge from From to To, tracked with its own residual
// capacity and accumulated flow so per-edge fractions can be reported.
type arc struct {
	id       string
	from, to string
	cap      float64
	flow     float64
}

// buildArcs turns preds into a flat arc list plus an adjacency index
// (node -> arc indices leaving it), one arc per concrete parallel edge.
func buildArcs(g *graph.WorkingGraph, preds map[string]map[string][]string) ([]*arc, map[string][]int) {
	var arcs []*arc
	adj := make(map[string][]int)
	for v, predMap := range preds {
		for u, edgeIDs := range predMap {
			for _, id := range edgeIDs {
				e, ok := g.Edge(id)
				if !ok {
					continue
				}
				idx := len(arcs)
				arcs = append(arcs, &arc{id: id, from: u, to: v, cap: e.ResidualCapacity()})
				adj[u] = append(adj[u], idx)
			}
		}
	}

	return arcs, adj
}

// proportional computes max flow on the DAG via Dinic's level-graph BFS
// plus blocking-flow DFS (spec §4.3.1), adapted from the teacher's
// flow.Dinic: since preds is acyclic by construction, no reverse
// residual arcs are needed for correctness — a blocking flow on a pure
// forward DAG never benefits from flow cancellation.
func proportional(g *graph.WorkingGraph, src, dst string, preds map[string]map[string][]string) Result {
	arcs, adj := buildArcs(g, preds)
	if _, ok := adj[src]; !ok {
		return emptyResult()
	}

	var total float64
	for {
		level, reached := bfsLevels(arcs, adj, src, dst)
		if !reached {
			break
		}
		iter := make(map[string]int, len(adj))
		for {
			pushed := dfsBlockingPush(arcs, adj, level, iter, src, dst, math.Inf(1))
			if pushed <= Epsilon {
				break
			}
			total += pushed
		}
	}

	if total <= Epsilon {
		return emptyResult()
	}

	fraction := make(map[string]float64)
	for _, a := range arcs {
		if a.flow > Epsilon {
			fraction[a.id] = a.flow / total
		}
	}

	return Result{TotalFlow: total, EdgeFraction: fraction}
}

func bfsLevels(arcs []*arc, adj map[string][]int, src, dst string) (map[string]int, bool) {
	level := map[string]int{src: 0}
	queue := []string{src}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, idx := range adj[u] {
			a := arcs[idx]
			if a.cap-a.flow <= Epsilon {
				continue
			}
			if _, seen := level[a.to]; seen {
				continue
			}
			level[a.to] = level[u] + 1
			queue = append(queue, a.to)
		}
	}
	_, ok := level[dst]

	return level, ok
}

func dfsBlockingPush(arcs []*arc, adj map[string][]int, level map[string]int, iter map[string]int, u, dst string, avail float64) float64 {
	if u == dst {
		return avail
	}
	for ; iter[u] < len(adj[u]); iter[u]++ {
		idx := adj[u][iter[u]]
		a := arcs[idx]
		residual := a.cap - a.flow
		if residual <= Epsilon {
			continue
		}
		if lv, ok := level[a.to]; !ok || lv != level[u]+1 {
			continue
		}
		send := avail
		if residual < send {
			send = residual
		}
		pushed := dfsBlockingPush(arcs, adj, level, iter, a.to, dst, send)
		if pushed > Epsilon {
			a.flow += pushed

			return pushed
		}
	}

	return 0
}

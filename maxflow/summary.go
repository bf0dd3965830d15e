package maxflow

import (
	"sort"

	"github.com/netgraph/netgraph/graph"
)

// CutEdge identifies one edge crossing the min-cut: u reachable from src in
// the residual graph, v not, with residual capacity at or below tolerance.
type CutEdge struct {
	Key    string
	Source string
	Target string
}

// Summary reports the detailed outcome of a MaxFlow run (spec §4.4,
// optional summary block).
type Summary struct {
	TotalFlow                float64
	CostDistribution         map[float64]float64
	EdgeFlow                 map[string]float64
	ResidualCapacity         map[string]float64
	ReachableFromSrcResidual []string
	MinCut                   []CutEdge
}

func buildSummary(g *graph.WorkingGraph, src string, total float64, costDistribution map[float64]float64) Summary {
	edgeFlow := make(map[string]float64)
	residual := make(map[string]float64)
	for _, e := range g.Edges() {
		edgeFlow[e.Key] = e.Flow
		residual[e.Key] = e.ResidualCapacity()
	}

	reachable := reachableInResidual(g, src)
	reachableList := make([]string, 0, len(reachable))
	for n := range reachable {
		reachableList = append(reachableList, n)
	}
	sort.Strings(reachableList)

	var cut []CutEdge
	for _, e := range g.Edges() {
		if _, uReach := reachable[e.Source]; !uReach {
			continue
		}
		if _, vReach := reachable[e.Target]; vReach {
			continue
		}
		if e.ResidualCapacity() > Epsilon {
			continue
		}
		cut = append(cut, CutEdge{Key: e.Key, Source: e.Source, Target: e.Target})
	}
	sort.Slice(cut, func(i, j int) bool { return cut[i].Key < cut[j].Key })

	return Summary{
		TotalFlow:                total,
		CostDistribution:         costDistribution,
		EdgeFlow:                 edgeFlow,
		ResidualCapacity:         residual,
		ReachableFromSrcResidual: reachableList,
		MinCut:                   cut,
	}
}

// reachableInResidual returns the set of nodes reachable from src using
// only edges with residual capacity above tolerance.
func reachableInResidual(g *graph.WorkingGraph, src string) map[string]struct{} {
	reachable := map[string]struct{}{src: {}}
	queue := []string{src}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, e := range g.OutEdges(u) {
			if e.ResidualCapacity() <= Epsilon {
				continue
			}
			if _, ok := reachable[e.Target]; ok {
				continue
			}
			reachable[e.Target] = struct{}{}
			queue = append(queue, e.Target)
		}
	}

	return reachable
}

// SaturatedEdges returns every edge (u,v,k) whose residual capacity is at
// or below tolerance (spec §4.4 "Saturated edges and sensitivity").
func SaturatedEdges(g *graph.WorkingGraph) []CutEdge {
	var out []CutEdge
	for _, e := range g.Edges() {
		if e.ResidualCapacity() <= Epsilon {
			out = append(out, CutEdge{Key: e.Key, Source: e.Source, Target: e.Target})
		}
	}

	return out
}

// SensitivityResult reports the total-flow delta from perturbing one
// saturated edge's capacity.
type SensitivityResult struct {
	EdgeKey   string
	Delta     float64
	FlowDelta float64
}

// SensitivityAnalysis perturbs each saturated edge's capacity by delta
// (clamped so the resulting capacity never drops below 0) and reruns
// MaxFlow, reporting the resulting change in total flow (spec §4.4).
func SensitivityAnalysis(g *graph.WorkingGraph, src, dst string, delta float64, opts ...Option) ([]SensitivityResult, error) {
	baseline, err := MaxFlow(g, src, dst, append(append([]Option{}, opts...), WithoutSummary())...)
	if err != nil {
		return nil, err
	}

	var results []SensitivityResult
	for _, cut := range SaturatedEdges(baseline.Graph) {
		trial := g.Copy()
		e, ok := trial.Edge(cut.Key)
		if !ok {
			continue
		}
		newCap := e.Capacity + delta
		if newCap < 0 {
			newCap = 0
		}
		e.Capacity = newCap

		perturbed, err := MaxFlow(trial, src, dst, append(append([]Option{}, opts...), WithoutSummary())...)
		if err != nil {
			return nil, err
		}
		results = append(results, SensitivityResult{
			EdgeKey:   cut.Key,
			Delta:     delta,
			FlowDelta: perturbed.TotalFlow - baseline.TotalFlow,
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].EdgeKey < results[j].EdgeKey })

	return results, nil
}

package montecarlo

import (
	"github.com/netgraph/netgraph/demand"
	"github.com/netgraph/netgraph/graph"
	"github.com/netgraph/netgraph/maxflow"
	"github.com/netgraph/netgraph/netnodel"
)

// splitExclusions classifies failure.Apply's combined identifier list
// against net, since node names and link IDs share no namespace but
// graph.NewExclusionMask takes them separately.
func splitExclusions(net *netnodel.Network, excluded []string) (nodes, links []string) {
	for _, id := range excluded {
		if _, ok := net.Node(id); ok {
			nodes = append(nodes, id)

			continue
		}
		if _, ok := net.Link(id); ok {
			links = append(links, id)
		}
	}

	return nodes, links
}

// MaxFlowFunc adapts maxflow.MaxFlow into an AnalysisFunc, rebuilding the
// working graph under each iteration's exclusion mask since a
// graph.WorkingGraph is not itself safe to mutate and reuse across
// iterations run concurrently.
func MaxFlowFunc(net *netnodel.Network, src, dst string, opts ...maxflow.Option) AnalysisFunc {
	return func(excluded []string) (interface{}, error) {
		excludedNodes, excludedLinks := splitExclusions(net, excluded)
		g, err := graph.Build(net, graph.WithExclusionMask(graph.NewExclusionMask(excludedNodes, excludedLinks)))
		if err != nil {
			return nil, err
		}

		return maxflow.MaxFlow(g, src, dst, opts...)
	}
}

// SensitivityFunc adapts maxflow.SensitivityAnalysis into an AnalysisFunc.
func SensitivityFunc(net *netnodel.Network, src, dst string, delta float64, opts ...maxflow.Option) AnalysisFunc {
	return func(excluded []string) (interface{}, error) {
		excludedNodes, excludedLinks := splitExclusions(net, excluded)
		g, err := graph.Build(net, graph.WithExclusionMask(graph.NewExclusionMask(excludedNodes, excludedLinks)))
		if err != nil {
			return nil, err
		}

		return maxflow.SensitivityAnalysis(g, src, dst, delta, opts...)
	}
}

// DemandPlacementFunc adapts a demand.Manager over a set of user demands
// into an AnalysisFunc. Each iteration re-expands userDemands against a
// freshly built graph instance, since demand.Expand's pseudo-source and
// pseudo-sink nodes are minted against a specific graph.WorkingGraph and
// cannot be reused across rebuilt graphs.
func DemandPlacementFunc(net *netnodel.Network, mgr *demand.Manager, userDemands []demand.UserDemand) AnalysisFunc {
	return func(excluded []string) (interface{}, error) {
		excludedNodes, excludedLinks := splitExclusions(net, excluded)
		g, err := graph.Build(net, graph.WithExclusionMask(graph.NewExclusionMask(excludedNodes, excludedLinks)))
		if err != nil {
			return nil, err
		}

		var all []demand.Demand
		for _, u := range userDemands {
			set, err := demand.Expand(g, u)
			if err != nil {
				return nil, err
			}
			all = append(all, set.Demands...)
		}

		return mgr.Place(g, all)
	}
}

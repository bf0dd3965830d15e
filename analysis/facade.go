package analysis

import (
	"regexp"
	"sort"

	"github.com/netgraph/netgraph/demand"
	"github.com/netgraph/netgraph/failure"
	"github.com/netgraph/netgraph/graph"
	"github.com/netgraph/netgraph/montecarlo"
	"github.com/netgraph/netgraph/netnodel"
)

// infiniteCapacity mirrors maxflow.infiniteAmount()'s synthetic capacity
// for pseudo-node edges; the value itself has no special meaning beyond
// "large enough to never bind" (spec §4.4's pseudo-source/sink construction).
const infiniteCapacity = 1e18

// Build constructs a working graph from net (spec §6.2 item 1), a thin,
// documented pass-through to graph.Build kept at the facade so callers
// touch one package for the whole Analysis API surface.
func Build(net *netnodel.Network, opts ...graph.BuildOption) (*graph.WorkingGraph, error) {
	return graph.Build(net, opts...)
}

// PlaceDemandsScaled runs demand placement on demands with every volume
// multiplied by alpha (spec §6.2: "Run demand placement on a demand set
// with an alpha multiplier"). alpha=1 places the set unscaled.
func PlaceDemandsScaled(g *graph.WorkingGraph, mgr *demand.Manager, demands []demand.Demand, alpha float64) (demand.Summary, error) {
	scaled := make([]demand.Demand, len(demands))
	for i, d := range demands {
		scaled[i] = d
		scaled[i].Volume = d.Volume * alpha
	}

	return mgr.Place(g, scaled)
}

// RunMonteCarlo runs policy over nodes/links/riskGroups for iterations
// rounds (spec §6.2: "Run Monte Carlo analysis with a named policy,
// iteration count, and parallelism"), a thin pass-through to
// montecarlo.Run kept at the facade for API-surface discoverability.
func RunMonteCarlo(nodes []*netnodel.Node, links []*netnodel.Link, riskGroups map[string]*netnodel.RiskGroup, policy failure.Policy, f montecarlo.AnalysisFunc, iterations int, masterSeed uint64, opts ...montecarlo.Option) (montecarlo.Summary, error) {
	return montecarlo.Run(nodes, links, riskGroups, policy, f, iterations, masterSeed, opts...)
}

func compileAndMatch(names []string, pattern string) ([]string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, n := range names {
		if re.MatchString(n) {
			out = append(out, n)
		}
	}
	sort.Strings(out)

	return out, nil
}

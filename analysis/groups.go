package analysis

import (
	"errors"
	"fmt"

	"github.com/netgraph/netgraph/graph"
	"github.com/netgraph/netgraph/ksp"
	"github.com/netgraph/netgraph/maxflow"
	"github.com/netgraph/netgraph/spf"
)

// GroupMode selects how a node-group selector pair is resolved into
// concrete (source, target) work, mirroring demand.ExpansionMode (spec
// §6.2: "between node-group selectors with mode combine or pairwise").
type GroupMode int

const (
	GroupCombine GroupMode = iota
	GroupPairwise
)

// ErrUnknownGroupMode is returned for a GroupMode outside the two known
// values.
var ErrUnknownGroupMode = errors.New("analysis: unknown group mode")

const (
	pseudoGroupSrc = "__analysis_pseudo_src__"
	pseudoGroupDst = "__analysis_pseudo_dst__"
)

// attachPseudoGroupNodes attaches a zero-cost, infinite-capacity pseudo
// source to every node in sources and a symmetric pseudo sink for
// targets, grounded on maxflow.Combine's identical pseudo-node synthesis.
func attachPseudoGroupNodes(g *graph.WorkingGraph, sources, targets []string) (*graph.WorkingGraph, error) {
	work := g.Copy()
	if err := work.AddNode(pseudoGroupSrc, nil); err != nil {
		return nil, err
	}
	if err := work.AddNode(pseudoGroupDst, nil); err != nil {
		return nil, err
	}
	for i, s := range sources {
		if _, err := work.AddEdge(pseudoGroupSrc, s, fmt.Sprintf("__analysis_pseudo_src_edge_%d__", i), infiniteCapacity, 0); err != nil {
			return nil, err
		}
	}
	for i, t := range targets {
		if _, err := work.AddEdge(t, pseudoGroupDst, fmt.Sprintf("__analysis_pseudo_dst_edge_%d__", i), infiniteCapacity, 0); err != nil {
			return nil, err
		}
	}

	return work, nil
}

// PathGroupResult is one resolved (source, target) pair's shortest-cost
// outcome. Under GroupCombine there is exactly one PathGroupResult, whose
// Source/Target are the synthetic pseudo-node labels.
type PathGroupResult struct {
	Source  string
	Target  string
	Cost    float64
	Bundle  *graph.PathBundle
	Reached bool
}

// ShortestPathCosts computes shortest-path costs between every node
// matching srcPattern and every node matching dstPattern (spec §6.2: "shortest-path
// costs ... between node-group selectors with mode combine or pairwise").
func ShortestPathCosts(g *graph.WorkingGraph, srcPattern, dstPattern string, mode GroupMode, opts ...spf.Option) ([]PathGroupResult, error) {
	sources, err := selectGroupNodes(g, srcPattern)
	if err != nil {
		return nil, err
	}
	targets, err := selectGroupNodes(g, dstPattern)
	if err != nil {
		return nil, err
	}

	switch mode {
	case GroupCombine:
		return combinedPathResult(g, sources, targets, opts...)
	case GroupPairwise:
		return pairwisePathResults(g, sources, targets, opts...)
	default:
		return nil, ErrUnknownGroupMode
	}
}

// ShortestPaths resolves ShortestPathCosts into concrete, enumerated
// simple paths (spec §6.2: "concrete shortest paths").
func ShortestPaths(g *graph.WorkingGraph, srcPattern, dstPattern string, mode GroupMode, splitParallelEdges bool, opts ...spf.Option) (map[PathGroupResult][]graph.Path, error) {
	results, err := ShortestPathCosts(g, srcPattern, dstPattern, mode, opts...)
	if err != nil {
		return nil, err
	}

	out := make(map[PathGroupResult][]graph.Path, len(results))
	for _, r := range results {
		if !r.Reached {
			out[r] = nil

			continue
		}
		out[r] = r.Bundle.EnumerateAll(splitParallelEdges)
	}

	return out, nil
}

// KShortestPathGroupResult is one resolved (source, target) pair's
// K-shortest-paths outcome.
type KShortestPathGroupResult struct {
	Source  string
	Target  string
	Results []ksp.Result
}

// KShortestPaths computes up to K shortest paths between every matching
// (source, target) pair under mode (spec §6.2: "K-shortest paths between
// node-group selectors with mode combine or pairwise").
func KShortestPaths(g *graph.WorkingGraph, srcPattern, dstPattern string, mode GroupMode, opts ...ksp.Option) ([]KShortestPathGroupResult, error) {
	sources, err := selectGroupNodes(g, srcPattern)
	if err != nil {
		return nil, err
	}
	targets, err := selectGroupNodes(g, dstPattern)
	if err != nil {
		return nil, err
	}

	switch mode {
	case GroupCombine:
		if len(sources) == 0 || len(targets) == 0 {
			return nil, nil
		}
		work, err := attachPseudoGroupNodes(g, sources, targets)
		if err != nil {
			return nil, err
		}
		results, err := ksp.KSP(work, pseudoGroupSrc, pseudoGroupDst, opts...)
		if err != nil {
			return nil, err
		}

		return []KShortestPathGroupResult{{Source: pseudoGroupSrc, Target: pseudoGroupDst, Results: results}}, nil
	case GroupPairwise:
		var out []KShortestPathGroupResult
		for _, s := range sources {
			for _, t := range targets {
				if s == t {
					continue
				}
				results, err := ksp.KSP(g, s, t, opts...)
				if err != nil {
					return nil, err
				}
				out = append(out, KShortestPathGroupResult{Source: s, Target: t, Results: results})
			}
		}

		return out, nil
	default:
		return nil, ErrUnknownGroupMode
	}
}

func combinedPathResult(g *graph.WorkingGraph, sources, targets []string, opts ...spf.Option) ([]PathGroupResult, error) {
	if len(sources) == 0 || len(targets) == 0 {
		return nil, nil
	}
	work, err := attachPseudoGroupNodes(g, sources, targets)
	if err != nil {
		return nil, err
	}

	costs, preds, err := spf.SPF(work, pseudoGroupSrc, append(append([]spf.Option{}, opts...), spf.WithDestination(pseudoGroupDst))...)
	if err != nil {
		return nil, err
	}
	bundle, reached := spf.Bundle(pseudoGroupSrc, pseudoGroupDst, costs, preds)
	result := PathGroupResult{Source: pseudoGroupSrc, Target: pseudoGroupDst, Reached: reached}
	if reached {
		result.Cost = costs[pseudoGroupDst]
		result.Bundle = bundle
	}

	return []PathGroupResult{result}, nil
}

func pairwisePathResults(g *graph.WorkingGraph, sources, targets []string, opts ...spf.Option) ([]PathGroupResult, error) {
	var out []PathGroupResult
	for _, s := range sources {
		costs, preds, err := spf.SPF(g, s, opts...)
		if err != nil {
			return nil, err
		}
		for _, t := range targets {
			if s == t {
				continue
			}
			result := PathGroupResult{Source: s, Target: t}
			if cost, ok := costs[t]; ok {
				bundle, reached := spf.Bundle(s, t, costs, preds)
				result.Reached = reached
				result.Cost = cost
				result.Bundle = bundle
			}
			out = append(out, result)
		}
	}

	return out, nil
}

func selectGroupNodes(g *graph.WorkingGraph, pattern string) ([]string, error) {
	return compileAndMatch(g.Nodes(), pattern)
}

// MaxFlowGroup resolves group-mode max flow between node-group selectors
// (spec §4.4, §6.2), delegating to maxflow.Combine/maxflow.Pairwise —
// facade-level sugar over operations the maxflow package already exposes.
func MaxFlowGroup(g *graph.WorkingGraph, srcPattern, dstPattern string, mode GroupMode, opts ...maxflow.Option) (interface{}, error) {
	switch mode {
	case GroupCombine:
		return maxflow.Combine(g, srcPattern, dstPattern, opts...)
	case GroupPairwise:
		return maxflow.Pairwise(g, srcPattern, dstPattern, opts...)
	default:
		return nil, ErrUnknownGroupMode
	}
}

package ksp

import (
	"math"
	"sort"

	"github.com/netgraph/netgraph/graph"
	"github.com/netgraph/netgraph/spf"
)

// Result is one yielded path: its total cost and a predecessor-DAG
// representation compatible with graph.NewPathBundle (spec §4.2.3
// "(costs, preds) tuples"). Each Result encodes exactly one concrete
// simple path; Preds forms a straight chain from src to dst (ties among
// parallel edges at a single hop are kept as a multi-edge step, never
// split across Results).
type Result struct {
	Cost  float64
	Preds map[string]map[string][]string
	Path  graph.Path
}

const epsilon = spf.Epsilon

// KSP yields up to cfg.MaxK simple paths from src to dst in ascending
// cost order (spec §4.2.3). Returns fewer than MaxK results if the
// candidate set is exhausted or cost filters reject all remaining
// candidates.
func KSP(g *graph.WorkingGraph, src, dst string, opts ...Option) ([]Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	first, ok, err := shortestSinglePath(g, src, dst, cfg.Selector, cfg.ExcludedEdges, cfg.ExcludedNodes)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	results := []Result{first}
	bestCost := first.Cost

	var candidates []Result
	seen := map[string]struct{}{pathKey(first.Path): {}}

	for len(results) < cfg.MaxK {
		prev := results[len(results)-1].Path

		for i := 0; i < len(prev.Steps)-1; i++ {
			rootNodes := make([]string, i+1)
			for j := 0; j <= i; j++ {
				rootNodes[j] = prev.Steps[j].Node
			}
			spurNode := rootNodes[i]
			rootCost := pathPrefixCost(g, prev, i)

			excludedEdges := cloneSet(cfg.ExcludedEdges)
			for _, p := range results {
				if sharesRootPrefix(p.Path, rootNodes) && len(p.Path.Steps) > i+1 {
					for _, e := range p.Path.Steps[i].Edges {
						excludedEdges[e] = struct{}{}
					}
				}
			}
			excludedNodes := cloneSet(cfg.ExcludedNodes)
			for _, n := range rootNodes[:i] {
				excludedNodes[n] = struct{}{}
			}

			spurResult, ok, err := shortestSinglePath(g, spurNode, dst, cfg.Selector, excludedEdges, excludedNodes)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}

			totalCost := rootCost + spurResult.Cost
			if totalCost > cfg.MaxPathCost+epsilon {
				continue
			}
			if !math.IsInf(cfg.MaxPathCostFactor, 1) && totalCost > cfg.MaxPathCostFactor*bestCost+epsilon {
				continue
			}

			totalPath := joinPaths(prev, i, spurResult.Path, totalCost)
			key := pathKey(totalPath)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			candidates = append(candidates, Result{
				Cost:  totalCost,
				Preds: chainPreds(totalPath),
				Path:  totalPath,
			})
		}

		if len(candidates) == 0 {
			break
		}

		sort.SliceStable(candidates, func(a, b int) bool { return candidates[a].Cost < candidates[b].Cost })
		next := candidates[0]
		candidates = candidates[1:]
		results = append(results, next)
	}

	return results, nil
}

// shortestSinglePath runs a single-path (non-multipath) SPF from src to
// dst and extracts the one concrete Path it describes.
func shortestSinglePath(g *graph.WorkingGraph, src, dst string, sel spf.Selector, excludedEdges, excludedNodes map[string]struct{}) (Result, bool, error) {
	opts := []spf.Option{
		spf.WithDestination(dst),
		spf.WithSelector(sel),
		spf.WithoutMultipath(),
	}
	if len(excludedEdges) > 0 {
		opts = append(opts, spf.WithExcludedEdges(setKeys(excludedEdges)...))
	}
	if len(excludedNodes) > 0 {
		opts = append(opts, spf.WithExcludedNodes(setKeys(excludedNodes)...))
	}

	costs, preds, err := spf.SPF(g, src, opts...)
	if err != nil {
		return Result{}, false, err
	}
	cost, ok := costs[dst]
	if !ok {
		return Result{}, false, nil
	}

	bundle := graph.NewPathBundle(src, dst, cost, preds)
	paths := bundle.EnumerateAll(false)
	if len(paths) == 0 {
		return Result{}, false, nil
	}

	return Result{Cost: cost, Preds: chainPreds(paths[0]), Path: paths[0]}, true, nil
}

func pathPrefixCost(g *graph.WorkingGraph, p graph.Path, uptoIndex int) float64 {
	var cost float64
	for i := 0; i < uptoIndex; i++ {
		if len(p.Steps[i].Edges) == 0 {
			continue
		}
		e, ok := g.Edge(p.Steps[i].Edges[0])
		if ok {
			cost += e.Cost
		}
	}

	return cost
}

func sharesRootPrefix(p graph.Path, rootNodes []string) bool {
	if len(p.Steps) < len(rootNodes) {
		return false
	}
	for i, n := range rootNodes {
		if p.Steps[i].Node != n {
			return false
		}
	}

	return true
}

func joinPaths(root graph.Path, spurNodeIndex int, spur graph.Path, cost float64) graph.Path {
	steps := make([]graph.PathStep, 0, spurNodeIndex+len(spur.Steps))
	steps = append(steps, root.Steps[:spurNodeIndex]...)
	steps = append(steps, spur.Steps...)

	return graph.Path{Steps: steps, Cost: cost}
}

func chainPreds(p graph.Path) map[string]map[string][]string {
	preds := make(map[string]map[string][]string, len(p.Steps))
	for i := 1; i < len(p.Steps); i++ {
		preds[p.Steps[i].Node] = map[string][]string{
			p.Steps[i-1].Node: append([]string{}, p.Steps[i-1].Edges...),
		}
	}

	return preds
}

func pathKey(p graph.Path) string {
	var b []byte
	for _, s := range p.Steps {
		b = append(b, s.Node...)
		b = append(b, '|')
		for _, e := range s.Edges {
			b = append(b, e...)
			b = append(b, ',')
		}
		b = append(b, ';')
	}

	return string(b)
}

func cloneSet(m map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}

	return out
}

func setKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	return out
}

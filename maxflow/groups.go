package maxflow

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/netgraph/netgraph/graph"
)

// PairResult is one (source-label, target-label) pair's outcome under the
// pairwise group mode.
type PairResult struct {
	Source string
	Target string
	Result Result
}

// selectNodes returns the sorted node names matching pattern.
func selectNodes(g *graph.WorkingGraph, pattern string) ([]string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, n := range g.Nodes() {
		if re.MatchString(n) {
			out = append(out, n)
		}
	}
	sort.Strings(out)

	return out, nil
}

// Combine implements spec §4.4's "combine" group mode: attach a
// zero-cost, infinite-capacity pseudo-source to every node matching
// srcPattern, and a symmetric pseudo-sink for dstPattern, then solve once.
func Combine(g *graph.WorkingGraph, srcPattern, dstPattern string, opts ...Option) (Result, error) {
	sources, err := selectNodes(g, srcPattern)
	if err != nil {
		return Result{}, err
	}
	targets, err := selectNodes(g, dstPattern)
	if err != nil {
		return Result{}, err
	}
	if len(sources) == 0 || len(targets) == 0 {
		return Result{TotalFlow: 0}, nil
	}

	work := g.Copy()
	const pseudoSrc = "__pseudo_src__"
	const pseudoDst = "__pseudo_dst__"
	if err := work.AddNode(pseudoSrc, nil); err != nil {
		return Result{}, err
	}
	if err := work.AddNode(pseudoDst, nil); err != nil {
		return Result{}, err
	}
	for i, s := range sources {
		if _, err := work.AddEdge(pseudoSrc, s, fmt.Sprintf("__pseudo_src_edge_%d__", i), infiniteAmount(), 0); err != nil {
			return Result{}, err
		}
	}
	for i, t := range targets {
		if _, err := work.AddEdge(t, pseudoDst, fmt.Sprintf("__pseudo_dst_edge_%d__", i), infiniteAmount(), 0); err != nil {
			return Result{}, err
		}
	}

	opts = append(append([]Option{}, opts...), WithoutGraphCopy())

	return MaxFlow(work, pseudoSrc, pseudoDst, opts...)
}

// Pairwise implements spec §4.4's "pairwise" group mode: solve each
// (source-label, target-label) pair independently, excluding self-pairs.
func Pairwise(g *graph.WorkingGraph, srcPattern, dstPattern string, opts ...Option) ([]PairResult, error) {
	sources, err := selectNodes(g, srcPattern)
	if err != nil {
		return nil, err
	}
	targets, err := selectNodes(g, dstPattern)
	if err != nil {
		return nil, err
	}

	var results []PairResult
	for _, s := range sources {
		for _, t := range targets {
			if s == t {
				continue
			}
			r, err := MaxFlow(g, s, t, opts...)
			if err != nil {
				return nil, err
			}
			results = append(results, PairResult{Source: s, Target: t, Result: r})
		}
	}

	return results, nil
}

package maxflow

import (
	"fmt"

	"github.com/netgraph/netgraph/capacity"
	"github.com/netgraph/netgraph/graph"
	"github.com/netgraph/netgraph/spf"
)

// Result is the outcome of a MaxFlow run.
type Result struct {
	TotalFlow float64
	Summary   *Summary
	Graph     *graph.WorkingGraph
}

// MaxFlow computes the maximum feasible flow from src to dst by iterative
// augmentation (spec §4.4): each round runs SPF with
// ALL_MIN_COST_WITH_CAP_REMAINING to find an augmenting predecessor DAG,
// then widens flow along it via the capacity package, until no further
// increment clears Epsilon.
func MaxFlow(g *graph.WorkingGraph, src, dst string, opts ...Option) (Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	work := g
	if cfg.CopyGraph {
		work = g.Copy()
	}
	capacity.RemoveFlow(work, nil)

	flowIndex := graph.FlowIndex{Src: src, Dst: dst, Class: "maxflow", ID: 1}
	costDistribution := make(map[float64]float64)

	if cfg.SingleAugmentationOnly && cfg.Verbose && cfg.Trace != nil {
		fmt.Fprintf(cfg.Trace, "maxflow: single-augmentation-only mode, result is NOT true max-flow\n")
	}

	var total float64
	for round := 1; ; round++ {
		costs, preds, err := spf.SPF(work, src,
			spf.WithDestination(dst),
			spf.WithSelector(spf.AllMinCostWithCapRemaining()),
		)
		if err != nil {
			return Result{}, err
		}
		bundle, ok := spf.Bundle(src, dst, costs, preds)
		if !ok || !bundle.Reachable() {
			break
		}

		placement, err := capacity.PlaceFlow(work, src, dst, bundle.Preds, infiniteAmount(), flowIndex, cfg.Strategy)
		if err != nil {
			return Result{}, err
		}
		if placement.Placed <= Epsilon {
			break
		}

		total += placement.Placed
		costDistribution[costs[dst]] += placement.Placed
		if cfg.Verbose && cfg.Trace != nil {
			fmt.Fprintf(cfg.Trace, "maxflow: round %d placed %.6f at cost %.6f\n", round, placement.Placed, costs[dst])
		}

		if cfg.SingleAugmentationOnly {
			break
		}
	}

	result := Result{TotalFlow: total, Graph: work}
	if cfg.WithSummary {
		s := buildSummary(work, src, total, costDistribution)
		result.Summary = &s
	}

	return result, nil
}

// infiniteAmount is the "unbounded" request passed to PlaceFlow: each
// augmentation round is naturally bounded by the DAG's own residual
// capacity, so the amount clamp never binds.
func infiniteAmount() float64 {
	return 1e18
}

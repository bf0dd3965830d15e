package capacity

import (
	"errors"

	"github.com/netgraph/netgraph/graph"
)

// Epsilon is the fixed numerical tolerance for capacity/flow comparisons
// (spec §7 Numeric, §9 "fixed relative tolerance 1e-10").
const Epsilon = 1e-10

// ErrUnsupportedStrategy is returned by Compute/PlaceFlow for a Strategy
// value other than Proportional or EqualBalanced (spec §7 "unsupported
// flow-placement strategy").
var ErrUnsupportedStrategy = errors.New("capacity: unsupported flow-placement strategy")

// Strategy selects a flow-splitting discipline.
type Strategy int

const (
	// Proportional splits flow in proportion to residual capacity
	// (spec §4.3.1).
	Proportional Strategy = iota

	// EqualBalanced splits flow equally across out-edges at every hop,
	// scaled to the largest feasible value (spec §4.3.2).
	EqualBalanced
)

// Result is the output of a capacity computation: the total feasible
// flow and each participating edge's fraction of it (forward-oriented,
// src -> dst). A Result with TotalFlow == 0 carries an empty
// EdgeFraction (spec §4.3: "Return (0.0, {}) if src or dst is
// unreachable").
type Result struct {
	TotalFlow    float64
	EdgeFraction map[string]float64
}

func emptyResult() Result {
	return Result{TotalFlow: 0, EdgeFraction: map[string]float64{}}
}

// Compute dispatches to the requested placement strategy. Returns
// ErrUnsupportedStrategy for any Strategy other than Proportional or
// EqualBalanced.
func Compute(g *graph.WorkingGraph, src, dst string, preds map[string]map[string][]string, strategy Strategy) (Result, error) {
	if src == dst {
		return emptyResult(), nil
	}
	switch strategy {
	case Proportional:
		return proportional(g, src, dst, preds), nil
	case EqualBalanced:
		return equalBalanced(g, src, dst, preds), nil
	default:
		return Result{}, ErrUnsupportedStrategy
	}
}

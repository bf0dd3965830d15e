package ksp

import (
	"math"

	"github.com/netgraph/netgraph/spf"
)

// Options configures KSP, following the same functional-options shape as
// package spf.
type Options struct {
	// Selector is the edge-selection policy each spur-node SPF run uses.
	Selector spf.Selector

	// MaxK bounds the number of paths yielded. Generation stops early if
	// the candidate set is exhausted first (spec §4.2.3).
	MaxK int

	// MaxPathCost is an absolute cost ceiling; candidates above it are
	// discarded. Defaults to +Inf (no ceiling).
	MaxPathCost float64

	// MaxPathCostFactor is a ceiling relative to the best (first) path's
	// cost; candidates above MaxPathCostFactor*best are discarded.
	// Defaults to +Inf (no ceiling).
	MaxPathCostFactor float64

	// ExcludedEdges and ExcludedNodes are frozen for the duration of one
	// KSP call, applied on top of the per-candidate Yen exclusions.
	ExcludedEdges map[string]struct{}
	ExcludedNodes map[string]struct{}
}

// Option is a functional option for KSP.
type Option func(*Options)

// WithSelector overrides the default edge-selection policy.
func WithSelector(sel spf.Selector) Option {
	return func(o *Options) { o.Selector = sel }
}

// WithMaxK sets the maximum number of paths to yield. Must be ≥ 1.
func WithMaxK(k int) Option {
	return func(o *Options) { o.MaxK = k }
}

// WithMaxPathCost sets an absolute cost ceiling on yielded paths.
func WithMaxPathCost(cost float64) Option {
	return func(o *Options) { o.MaxPathCost = cost }
}

// WithMaxPathCostFactor sets a cost ceiling relative to the best path's
// cost (e.g. 2.0 means "no more than twice the shortest path's cost").
func WithMaxPathCostFactor(factor float64) Option {
	return func(o *Options) { o.MaxPathCostFactor = factor }
}

// WithExcludedEdges freezes a set of edge keys out of consideration.
func WithExcludedEdges(ids ...string) Option {
	return func(o *Options) {
		for _, id := range ids {
			o.ExcludedEdges[id] = struct{}{}
		}
	}
}

// WithExcludedNodes freezes a set of node names out of consideration.
func WithExcludedNodes(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.ExcludedNodes[n] = struct{}{}
		}
	}
}

// DefaultOptions returns KSP's default configuration: AllMinCost
// selection, a single path (MaxK=1), no cost ceilings, no exclusions.
func DefaultOptions() Options {
	return Options{
		Selector:          spf.AllMinCost(),
		MaxK:              1,
		MaxPathCost:       math.Inf(1),
		MaxPathCostFactor: math.Inf(1),
		ExcludedEdges:     make(map[string]struct{}),
		ExcludedNodes:     make(map[string]struct{}),
	}
}

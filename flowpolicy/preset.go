package flowpolicy

import (
	"github.com/netgraph/netgraph/capacity"
	"github.com/netgraph/netgraph/spf"
)

// Preset names a routing configuration (spec §4.5 table).
type Preset int

const (
	// ShortestPathsECMP: SPF multipath, ALL_MIN_COST, equal-balanced
	// splitting, one flow bundle.
	ShortestPathsECMP Preset = iota
	// ShortestPathsWCMP: SPF multipath, ALL_MIN_COST, proportional
	// splitting, one flow bundle.
	ShortestPathsWCMP
	// TEUCMPUnlim: KSP, ALL_MIN_COST_WITH_CAP_REMAINING, proportional
	// splitting, unbounded LSP count.
	TEUCMPUnlim
	// TEECMPUpTo256LSP: KSP, ALL_MIN_COST_WITH_CAP_REMAINING,
	// equal-balanced splitting, at most 256 LSPs.
	TEECMPUpTo256LSP
	// TEECMP16LSP: as TEECMPUpTo256LSP, capped at 16 LSPs.
	TEECMP16LSP
)

// pathAlgo distinguishes a single SPF-multipath bundle from a KSP-driven
// multi-LSP placement.
type pathAlgo int

const (
	algoSPF pathAlgo = iota
	algoKSP
)

// config is one preset's resolved routing configuration.
type config struct {
	algo     pathAlgo
	selector spf.Selector
	strategy capacity.Strategy
	maxFlows int
	lspLike  bool
}

// unboundedLSPCap is the practical ceiling applied to TE_UCMP_UNLIM so
// placement always terminates even when the graph admits many distinct
// paths; the loop still stops earlier on capacity exhaustion.
const unboundedLSPCap = 4096

var table = map[Preset]config{
	ShortestPathsECMP: {
		algo:     algoSPF,
		selector: spf.AllMinCost(),
		strategy: capacity.EqualBalanced,
		maxFlows: 1,
		lspLike:  false,
	},
	ShortestPathsWCMP: {
		algo:     algoSPF,
		selector: spf.AllMinCost(),
		strategy: capacity.Proportional,
		maxFlows: 1,
		lspLike:  false,
	},
	TEUCMPUnlim: {
		algo:     algoKSP,
		selector: spf.AllMinCostWithCapRemaining(),
		strategy: capacity.Proportional,
		maxFlows: unboundedLSPCap,
		lspLike:  true,
	},
	TEECMPUpTo256LSP: {
		algo:     algoKSP,
		selector: spf.AllMinCostWithCapRemaining(),
		strategy: capacity.EqualBalanced,
		maxFlows: 256,
		lspLike:  true,
	},
	TEECMP16LSP: {
		algo:     algoKSP,
		selector: spf.AllMinCostWithCapRemaining(),
		strategy: capacity.EqualBalanced,
		maxFlows: 16,
		lspLike:  true,
	},
}

func (p Preset) config() config {
	return table[p]
}

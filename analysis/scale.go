package analysis

import (
	"errors"

	"github.com/netgraph/netgraph/demand"
	"github.com/netgraph/netgraph/graph"
	"github.com/netgraph/netgraph/netnodel"
)

// ErrProbeBudgetExceeded is returned by MaxUniformScale when MaxProbes is
// exhausted before the bracketing/bisection loop converges to Resolution.
var ErrProbeBudgetExceeded = errors.New("analysis: probe budget exceeded before convergence")

// FeasibilityFunc reports the total dropped volume a uniform demand scale
// of alpha produces — the oracle MaxUniformScale searches over. A uniform
// signature, following the teacher's function-object convention for
// interchangeable policies (spf.SelectFunc).
type FeasibilityFunc func(alpha float64) (dropped float64, err error)

// ScaleOptions configures MaxUniformScale's exponential-bracketing binary
// search (spec §6.2, §8 scenario 6).
type ScaleOptions struct {
	// AlphaMin is a scale known feasible in advance (typically 0).
	AlphaMin float64

	// AlphaStart is the first nonzero probe in the exponential bracketing
	// phase.
	AlphaStart float64

	// GrowthFactor multiplies the high probe each bracketing step until
	// an infeasible scale is found.
	GrowthFactor float64

	// Resolution is the convergence width: the search stops once the
	// feasible/infeasible bracket is this narrow.
	Resolution float64

	// Tolerance is the maximum dropped volume still considered feasible
	// ("dropped == 0 within tolerance").
	Tolerance float64

	// MaxProbes bounds total oracle calls across both phases.
	MaxProbes int
}

// ScaleOption mutates ScaleOptions.
type ScaleOption func(*ScaleOptions)

// DefaultScaleOptions returns AlphaMin=0, AlphaStart=1, GrowthFactor=2,
// Resolution=1e-3, Tolerance=1e-6, MaxProbes=64.
func DefaultScaleOptions() ScaleOptions {
	return ScaleOptions{
		AlphaMin:     0,
		AlphaStart:   1,
		GrowthFactor: 2,
		Resolution:   1e-3,
		Tolerance:    1e-6,
		MaxProbes:    64,
	}
}

// WithAlphaStart sets the first nonzero bracketing probe.
func WithAlphaStart(a float64) ScaleOption { return func(o *ScaleOptions) { o.AlphaStart = a } }

// WithGrowthFactor sets the exponential bracketing growth factor.
func WithGrowthFactor(f float64) ScaleOption { return func(o *ScaleOptions) { o.GrowthFactor = f } }

// WithResolution sets the bisection convergence width.
func WithResolution(r float64) ScaleOption { return func(o *ScaleOptions) { o.Resolution = r } }

// WithTolerance sets the maximum dropped volume still considered feasible.
func WithTolerance(t float64) ScaleOption { return func(o *ScaleOptions) { o.Tolerance = t } }

// WithMaxProbes bounds the total number of oracle calls.
func WithMaxProbes(n int) ScaleOption { return func(o *ScaleOptions) { o.MaxProbes = n } }

// MaxUniformScale finds the maximum uniform-scale alpha* for which feasible
// reports a dropped volume within Tolerance (spec §6.2, §8 scenario 6):
// exponential bracketing from AlphaStart doubles (by GrowthFactor) until an
// infeasible scale is found, then binary search narrows the
// feasible/infeasible bracket to Resolution. Returns the largest confirmed
// feasible alpha and the number of oracle probes used.
func MaxUniformScale(feasible FeasibilityFunc, opts ...ScaleOption) (alpha float64, probes int, err error) {
	cfg := DefaultScaleOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	low := cfg.AlphaMin
	if dropped, err := feasible(low); err != nil {
		return 0, 1, err
	} else if dropped > cfg.Tolerance {
		return low, 1, errors.New("analysis: AlphaMin is not feasible")
	}
	probes = 1

	high := cfg.AlphaStart
	for {
		if probes >= cfg.MaxProbes {
			return low, probes, ErrProbeBudgetExceeded
		}
		dropped, ferr := feasible(high)
		probes++
		if ferr != nil {
			return 0, probes, ferr
		}
		if dropped > cfg.Tolerance {
			break
		}
		low = high
		high *= cfg.GrowthFactor
	}

	for high-low > cfg.Resolution {
		if probes >= cfg.MaxProbes {
			return low, probes, ErrProbeBudgetExceeded
		}
		mid := low + (high-low)/2
		dropped, ferr := feasible(mid)
		probes++
		if ferr != nil {
			return 0, probes, ferr
		}
		if dropped <= cfg.Tolerance {
			low = mid
		} else {
			high = mid
		}
	}

	return low, probes, nil
}

// DemandFeasibilityOracle adapts a demand.Manager and a base demand set
// into a FeasibilityFunc: each probe rebuilds a fresh working graph (a
// graph.WorkingGraph accumulates flow state across placements and is not
// safe to reuse across probes) and scales every demand's volume by alpha.
func DemandFeasibilityOracle(net *netnodel.Network, mgr *demand.Manager, demands []demand.Demand, mask graph.ExclusionMask) FeasibilityFunc {
	return func(alpha float64) (float64, error) {
		g, err := graph.Build(net, graph.WithExclusionMask(mask))
		if err != nil {
			return 0, err
		}

		scaled := make([]demand.Demand, len(demands))
		for i, d := range demands {
			scaled[i] = d
			scaled[i].Volume = d.Volume * alpha
		}

		summary, err := mgr.Place(g, scaled)
		if err != nil {
			return 0, err
		}

		return summary.TotalDropped, nil
	}
}

package flowpolicy

import (
	"github.com/netgraph/netgraph/capacity"
	"github.com/netgraph/netgraph/graph"
	"github.com/netgraph/netgraph/ksp"
	"github.com/netgraph/netgraph/spf"
)

// Epsilon is the fixed numerical tolerance used throughout this package.
const Epsilon = 1e-10

type flowKey struct {
	Src, Dst, Class string
}

// Policy places demands on a graph.WorkingGraph according to one of the
// five presets (spec §4.5). It tracks the FlowIndex values it has created
// per (src, dst, class) so RemoveDemand and RebalanceDemand can find them
// again.
type Policy struct {
	Preset Preset

	flows  map[flowKey][]graph.FlowIndex
	nextID map[flowKey]uint64
}

// New returns a Policy configured for preset, or ErrUnknownPreset if
// preset is not one of the five defined values.
func New(preset Preset) (*Policy, error) {
	if _, ok := table[preset]; !ok {
		return nil, ErrUnknownPreset
	}

	return &Policy{
		Preset: preset,
		flows:  make(map[flowKey][]graph.FlowIndex),
		nextID: make(map[flowKey]uint64),
	}, nil
}

func (p *Policy) nextFlowIndex(key flowKey) graph.FlowIndex {
	id := p.nextID[key] + 1
	p.nextID[key] = id

	return graph.FlowIndex{Src: key.Src, Dst: key.Dst, Class: key.Class, ID: id}
}

// PlaceDemand creates or updates the flows backing (src, dst, class),
// placing up to volume of traffic (or targetFlowVolume, if given, as the
// per-flow quota for multi-flow presets). Returns (placed, remaining).
func (p *Policy) PlaceDemand(g *graph.WorkingGraph, src, dst, class string, volume float64, targetFlowVolume ...float64) (float64, float64, error) {
	cfg := p.Preset.config()
	key := flowKey{Src: src, Dst: dst, Class: class}

	if cfg.algo == algoSPF {
		return p.placeBundle(g, key, cfg, volume)
	}

	// Equal-share per flow, per spec §4.5 "create up to max_flows
	// equal-share flows"; a caller-supplied target overrides the share
	// (used by the Demand Manager's priority-aware rounds).
	target := volume / float64(cfg.maxFlows)
	if len(targetFlowVolume) > 0 {
		target = targetFlowVolume[0]
	}

	return p.placeLSPs(g, key, cfg, volume, target)
}

// placeBundle handles the single-bundle SPF-multipath presets
// (SHORTEST_PATHS_ECMP / SHORTEST_PATHS_WCMP): one SPF call, one flow.
func (p *Policy) placeBundle(g *graph.WorkingGraph, key flowKey, cfg config, volume float64) (float64, float64, error) {
	costs, preds, err := spf.SPF(g, key.Src, spf.WithDestination(key.Dst), spf.WithSelector(cfg.selector))
	if err != nil {
		return 0, volume, err
	}
	bundle, ok := spf.Bundle(key.Src, key.Dst, costs, preds)
	if !ok || !bundle.Reachable() {
		return 0, volume, nil
	}

	existing := p.flows[key]
	var fi graph.FlowIndex
	if len(existing) > 0 {
		fi = existing[0]
	} else {
		fi = p.nextFlowIndex(key)
		p.flows[key] = []graph.FlowIndex{fi}
	}

	placement, err := capacity.PlaceFlow(g, key.Src, key.Dst, bundle.Preds, volume, fi, cfg.strategy)
	if err != nil {
		return 0, volume, err
	}

	return placement.Placed, volume - placement.Placed, nil
}

// placeLSPs handles the KSP-driven multi-flow TE presets: each flow is a
// single KSP path, excluding edges already saturated by earlier flows in
// this same placement call.
func (p *Policy) placeLSPs(g *graph.WorkingGraph, key flowKey, cfg config, volume, perFlowTarget float64) (float64, float64, error) {
	var placed float64
	remaining := volume
	excluded := make(map[string]struct{})

	for i := 0; i < cfg.maxFlows && remaining > Epsilon; i++ {
		var excludeIDs []string
		for id := range excluded {
			excludeIDs = append(excludeIDs, id)
		}
		results, err := ksp.KSP(g, key.Src, key.Dst, ksp.WithSelector(cfg.selector), ksp.WithMaxK(1), ksp.WithExcludedEdges(excludeIDs...))
		if err != nil {
			return placed, remaining, err
		}
		if len(results) == 0 {
			break
		}

		target := perFlowTarget
		if target > remaining {
			target = remaining
		}

		fi := p.nextFlowIndex(key)
		placement, err := capacity.PlaceFlow(g, key.Src, key.Dst, results[0].Preds, target, fi, cfg.strategy)
		if err != nil {
			return placed, remaining, err
		}
		if placement.Placed <= Epsilon {
			break
		}
		p.flows[key] = append(p.flows[key], fi)
		placed += placement.Placed
		remaining -= placement.Placed

		for _, e := range g.Edges() {
			if e.ResidualCapacity() <= Epsilon {
				excluded[e.Key] = struct{}{}
			}
		}
	}

	return placed, remaining, nil
}

// RebalanceDemand removes every flow currently tracked for (src, dst,
// class) and re-places targetFlowVolume as the demand's total volume
// (spec §4.5 "fairness pass"). SPF presets re-place it as one bundle; KSP
// presets split it evenly across as many flows as were tracked before the
// call. With no tracked flows it places targetFlowVolume via PlaceDemand.
// targetFlowVolume is not a per-flow quota.
func (p *Policy) RebalanceDemand(g *graph.WorkingGraph, src, dst, class string, targetFlowVolume float64) (float64, error) {
	key := flowKey{Src: src, Dst: dst, Class: class}
	existing := p.flows[key]
	if len(existing) == 0 {
		placed, _, err := p.PlaceDemand(g, src, dst, class, targetFlowVolume)

		return placed, err
	}

	for _, fi := range existing {
		capacity.RemoveFlow(g, &fi)
	}
	p.flows[key] = nil
	p.nextID[key] = 0

	cfg := p.Preset.config()
	if cfg.algo == algoSPF {
		placed, _, err := p.placeBundle(g, key, cfg, targetFlowVolume)

		return placed, err
	}
	placed, _, err := p.placeLSPs(g, key, cfg, targetFlowVolume, targetFlowVolume/float64(len(existing)))

	return placed, err
}

// RemoveDemand removes every flow this Policy has placed on g, across all
// (src, dst, class) keys, without forgetting its internal bookkeeping —
// a subsequent PlaceDemand call reuses the same FlowIndex series.
func (p *Policy) RemoveDemand(g *graph.WorkingGraph) {
	for _, indices := range p.flows {
		for _, fi := range indices {
			capacity.RemoveFlow(g, &fi)
		}
	}
}

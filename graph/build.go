package graph

import (
	"github.com/netgraph/netgraph/netnodel"
)

// BuildOptions configures Build, following the teacher's functional-options
// convention (dijkstra.Option, builder.BuilderOption).
type BuildOptions struct {
	// AddReverseEdges adds, for every included link u->v, a reverse edge
	// v->u with the same capacity and cost, enabling bidirectional
	// analysis (spec §3 "Working Graph": "An optional reverse edge for
	// each link is added by default"). Default true.
	AddReverseEdges bool

	// Mask filters the Network before construction; zero value behaves as
	// EmptyMask() (no exclusions).
	Mask ExclusionMask
}

// BuildOption is a functional option for Build.
type BuildOption func(*BuildOptions)

// WithoutReverseEdges disables automatic reverse-edge synthesis.
func WithoutReverseEdges() BuildOption {
	return func(o *BuildOptions) { o.AddReverseEdges = false }
}

// WithExclusionMask sets the exclusion mask to filter the Network by.
func WithExclusionMask(mask ExclusionMask) BuildOption {
	return func(o *BuildOptions) { o.Mask = mask }
}

// DefaultBuildOptions returns the default Build configuration: reverse
// edges enabled, no exclusions.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{AddReverseEdges: true, Mask: EmptyMask()}
}

const reverseEdgeOf = "reverse_of"

// Build constructs a WorkingGraph from net, filtering out disabled and
// excluded nodes/links, and (by default) synthesizing a reverse edge for
// every included link. net is never mutated (spec §3 invariant).
func Build(net *netnodel.Network, opts ...BuildOption) (*WorkingGraph, error) {
	cfg := DefaultBuildOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	g := NewWorkingGraph()

	included := make(map[string]struct{})
	for _, n := range net.Nodes() {
		if !n.Enabled || cfg.Mask.ExcludesNode(n.Name) {
			continue
		}
		if err := g.AddNode(n.Name, map[string]interface{}(n.Attrs.Clone())); err != nil {
			return nil, err
		}
		included[n.Name] = struct{}{}
	}

	for _, l := range net.Links() {
		if !l.Enabled || cfg.Mask.ExcludesLink(l.ID) {
			continue
		}
		if _, ok := included[l.Source]; !ok {
			continue
		}
		if _, ok := included[l.Target]; !ok {
			continue
		}
		if _, err := g.AddEdge(l.Source, l.Target, l.ID, l.Capacity, l.Cost); err != nil {
			return nil, err
		}
		if cfg.AddReverseEdges {
			revKey, err := g.AddEdge(l.Target, l.Source, "", l.Capacity, l.Cost)
			if err != nil {
				return nil, err
			}
			if e, ok := g.Edge(revKey); ok {
				e.Attrs[reverseEdgeOf] = l.ID
			}
		}
	}

	return g, nil
}

package graph

import (
	"encoding/base64"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// WorkingGraph is an ephemeral, strict, multi-directed graph built per
// analysis call. Adjacency is stored as nested maps
// (from -> to -> edgeKey -> struct{}{}) with a flat edgeKey -> *Edge store,
// the same shape as the teacher's core.Graph adjacencyList/edges pair, so
// every algorithm dereferences edges through the key store rather than
// holding stale pointers across mutation.
//
// Two separate RWMutex locks (muNodes, muEdgeAdj) minimize contention
// between node and edge/adjacency operations, mirroring core.Graph's
// muVert/muEdgeAdj split. A WorkingGraph is owned by exactly one worker
// during a Monte Carlo iteration (spec §5), so this locking is a safety net
// for callers who share a graph across goroutines by mistake, not a
// load-bearing concurrency feature.
type WorkingGraph struct {
	muNodes   sync.RWMutex
	muEdgeAdj sync.RWMutex

	nodes      map[string]*Node
	nodeOrder  []string
	edges      map[string]*Edge
	adjacency  map[string]map[string]map[string]struct{} // from -> to -> key -> {}
	graphAttrs map[string]interface{}
}

// NewWorkingGraph returns an empty WorkingGraph.
func NewWorkingGraph() *WorkingGraph {
	return &WorkingGraph{
		nodes:      make(map[string]*Node),
		edges:      make(map[string]*Edge),
		adjacency:  make(map[string]map[string]map[string]struct{}),
		graphAttrs: make(map[string]interface{}),
	}
}

// AddNode inserts a node named name, failing with ErrDuplicateNode if it
// already exists.
func (g *WorkingGraph) AddNode(name string, attrs map[string]interface{}) error {
	g.muNodes.Lock()
	defer g.muNodes.Unlock()
	if _, exists := g.nodes[name]; exists {
		return ErrDuplicateNode
	}
	g.nodes[name] = &Node{Name: name, Attrs: attrs}
	g.nodeOrder = append(g.nodeOrder, name)

	g.muEdgeAdj.Lock()
	g.ensureAdjRow(name)
	g.muEdgeAdj.Unlock()

	return nil
}

// HasNode reports whether name is a node in the graph.
func (g *WorkingGraph) HasNode(name string) bool {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	_, ok := g.nodes[name]

	return ok
}

// Node returns the node named name, or (nil, false).
func (g *WorkingGraph) Node(name string) (*Node, bool) {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	n, ok := g.nodes[name]

	return n, ok
}

// RemoveNode deletes name and all incident edges, failing with
// ErrUnknownNode if it does not exist.
func (g *WorkingGraph) RemoveNode(name string) error {
	g.muNodes.Lock()
	defer g.muNodes.Unlock()
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if _, ok := g.nodes[name]; !ok {
		return ErrUnknownNode
	}
	for key, e := range g.edges {
		if e.Source == name || e.Target == name {
			g.removeEdgeLocked(key)
		}
	}
	delete(g.nodes, name)
	for i, n := range g.nodeOrder {
		if n == name {
			g.nodeOrder = append(g.nodeOrder[:i], g.nodeOrder[i+1:]...)

			break
		}
	}

	return nil
}

// newEdgeKey mints a fresh 22-char URL-safe base64 edge key from a v4 UUID,
// exactly the suffix format used by netnodel.NewLinkID (spec §4.1 AddEdge:
// "assigning a fresh 22-char URL-safe base64 UUID when absent").
func newEdgeKey() string {
	u := uuid.New()

	return base64.RawURLEncoding.EncodeToString(u[:])
}

// AddEdge inserts a directed edge source->target with the given key (a
// fresh one is minted if key == ""), capacity, and cost.
//
// Fails with ErrMissingEndpoint if source or target is not a node, and
// ErrDuplicateEdge if key is already in use. Returns the key used.
func (g *WorkingGraph) AddEdge(source, target, key string, capacity, cost float64) (string, error) {
	if !g.HasNode(source) || !g.HasNode(target) {
		return "", ErrMissingEndpoint
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if key == "" {
		key = newEdgeKey()
		for {
			if _, exists := g.edges[key]; !exists {
				break
			}
			key = newEdgeKey()
		}
	} else if _, exists := g.edges[key]; exists {
		return "", ErrDuplicateEdge
	}

	e := newEdge(key, source, target, capacity, cost)
	g.edges[key] = e
	g.ensureAdjRow(source)
	if g.adjacency[source][target] == nil {
		g.adjacency[source][target] = make(map[string]struct{})
	}
	g.adjacency[source][target][key] = struct{}{}

	return key, nil
}

// RemoveEdge deletes the edge keyed by key, failing with ErrUnknownEdge if
// it does not exist.
func (g *WorkingGraph) RemoveEdge(key string) error {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()
	if _, ok := g.edges[key]; !ok {
		return ErrUnknownEdge
	}
	g.removeEdgeLocked(key)

	return nil
}

// removeEdgeLocked assumes muEdgeAdj is held for writing.
func (g *WorkingGraph) removeEdgeLocked(key string) {
	e, ok := g.edges[key]
	if !ok {
		return
	}
	delete(g.edges, key)
	if m := g.adjacency[e.Source][e.Target]; m != nil {
		delete(m, key)
		if len(m) == 0 {
			delete(g.adjacency[e.Source], e.Target)
		}
	}
}

// Edge returns the edge keyed by key, or (nil, false). The returned
// pointer is shared live state: callers must not retain it across
// concurrent mutation.
func (g *WorkingGraph) Edge(key string) (*Edge, bool) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	e, ok := g.edges[key]

	return e, ok
}

// EdgesBetween returns the ordered (ascending key) list of edge keys from
// source to target.
func (g *WorkingGraph) EdgesBetween(source, target string) []string {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	inner := g.adjacency[source][target]
	out := make([]string, 0, len(inner))
	for k := range inner {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// OutEdges returns all edges keyed by ascending key whose Source is name.
func (g *WorkingGraph) OutEdges(name string) []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	var out []*Edge
	for _, inner := range g.adjacency[name] {
		for key := range inner {
			out = append(out, g.edges[key])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	return out
}

// Nodes returns node names in insertion order.
func (g *WorkingGraph) Nodes() []string {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	out := make([]string, len(g.nodeOrder))
	copy(out, g.nodeOrder)

	return out
}

// Edges returns all edges sorted by key ascending (deterministic iteration,
// matching core.Graph.Edges()'s convention).
func (g *WorkingGraph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	return out
}

func (g *WorkingGraph) ensureAdjRow(name string) {
	if _, ok := g.adjacency[name]; !ok {
		g.adjacency[name] = make(map[string]map[string]struct{})
	}
}

// Copy returns a deep copy of g, safe against subsequent mutation of either
// graph (spec §4.1 "copy() — deep copy; must be safe against subsequent
// mutation").
func (g *WorkingGraph) Copy() *WorkingGraph {
	g.muNodes.RLock()
	g.muEdgeAdj.RLock()
	defer g.muNodes.RUnlock()
	defer g.muEdgeAdj.RUnlock()

	clone := NewWorkingGraph()
	for k, v := range g.graphAttrs {
		clone.graphAttrs[k] = v
	}
	clone.nodeOrder = make([]string, len(g.nodeOrder))
	copy(clone.nodeOrder, g.nodeOrder)
	for name, n := range g.nodes {
		attrsCopy := make(map[string]interface{}, len(n.Attrs))
		for k, v := range n.Attrs {
			attrsCopy[k] = v
		}
		clone.nodes[name] = &Node{Name: name, Attrs: attrsCopy}
		clone.ensureAdjRow(name)
	}
	for key, e := range g.edges {
		ne := e.clone()
		clone.edges[key] = ne
		clone.ensureAdjRow(ne.Source)
		if clone.adjacency[ne.Source][ne.Target] == nil {
			clone.adjacency[ne.Source][ne.Target] = make(map[string]struct{})
		}
		clone.adjacency[ne.Source][ne.Target][key] = struct{}{}
	}

	return clone
}

// SetGraphAttr sets a graph-level attribute (surfaced by ToNodeLinkDict's
// "graph" field).
func (g *WorkingGraph) SetGraphAttr(key string, val interface{}) {
	g.muNodes.Lock()
	defer g.muNodes.Unlock()
	g.graphAttrs[key] = val
}

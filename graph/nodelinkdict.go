package graph

// NodeLinkDict is the canonical JSON-safe representation of a WorkingGraph
// (spec §4.1 to_node_link_dict): graph-level attrs, an ordered node list,
// and an ordered link list referencing node indices.
type NodeLinkDict struct {
	Graph map[string]interface{} `json:"graph"`
	Nodes []NodeLinkNode         `json:"nodes"`
	Links []NodeLinkLink         `json:"links"`
}

// NodeLinkNode is one entry of NodeLinkDict.Nodes.
type NodeLinkNode struct {
	ID   string                 `json:"id"`
	Attr map[string]interface{} `json:"attr"`
}

// NodeLinkLink is one entry of NodeLinkDict.Links; Source/Target are
// indices into NodeLinkDict.Nodes, matching the spec's compact encoding.
type NodeLinkLink struct {
	Source int                    `json:"source"`
	Target int                    `json:"target"`
	Key    string                 `json:"key"`
	Attr   map[string]interface{} `json:"attr"`
}

// ToNodeLinkDict exports g in the canonical, deterministic shape: nodes and
// links both ordered, nodes by insertion order and links by ascending key.
func (g *WorkingGraph) ToNodeLinkDict() NodeLinkDict {
	nodes := g.Nodes()
	index := make(map[string]int, len(nodes))
	out := NodeLinkDict{
		Graph: g.graphAttrs,
		Nodes: make([]NodeLinkNode, 0, len(nodes)),
	}
	for i, name := range nodes {
		index[name] = i
		n, _ := g.Node(name)
		out.Nodes = append(out.Nodes, NodeLinkNode{ID: name, Attr: n.Attrs})
	}
	for _, e := range g.Edges() {
		out.Links = append(out.Links, NodeLinkLink{
			Source: index[e.Source],
			Target: index[e.Target],
			Key:    e.Key,
			Attr: map[string]interface{}{
				"capacity": e.Capacity,
				"cost":     e.Cost,
				"flow":     e.Flow,
			},
		})
	}

	return out
}

// FromNodeLinkDict reconstructs a WorkingGraph from a NodeLinkDict produced
// by ToNodeLinkDict, preserving node order, edge keys, and capacity/cost
// attrs (flow/flows are reset to zero/empty: a reconstructed graph starts
// with no placed flow, matching Build's fresh-graph contract).
//
// Supplements spec §8's round-trip testable property for Graph Core.
func FromNodeLinkDict(d NodeLinkDict) (*WorkingGraph, error) {
	g := NewWorkingGraph()
	for k, v := range d.Graph {
		g.graphAttrs[k] = v
	}
	names := make([]string, len(d.Nodes))
	for i, n := range d.Nodes {
		if err := g.AddNode(n.ID, n.Attr); err != nil {
			return nil, err
		}
		names[i] = n.ID
	}
	for _, l := range d.Links {
		if l.Source < 0 || l.Source >= len(names) || l.Target < 0 || l.Target >= len(names) {
			return nil, ErrMissingEndpoint
		}
		capacity, _ := l.Attr["capacity"].(float64)
		cost, _ := l.Attr["cost"].(float64)
		if _, err := g.AddEdge(names[l.Source], names[l.Target], l.Key, capacity, cost); err != nil {
			return nil, err
		}
	}

	return g, nil
}

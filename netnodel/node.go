package netnodel

// Node is a named vertex in a Network. Name is unique within the owning
// Network (enforced by Network.AddNode). RiskGroups is the set of named
// failure domains this node belongs to; Attrs is an opaque, possibly
// nested, attribute dictionary.
type Node struct {
	Name       string
	Enabled    bool
	RiskGroups map[string]struct{}
	Attrs      AttrMap
}

// NewNode constructs an enabled Node with the given name and no risk-group
// memberships. Use NodeOption to customize before insertion.
func NewNode(name string, opts ...NodeOption) *Node {
	n := &Node{
		Name:       name,
		Enabled:    true,
		RiskGroups: make(map[string]struct{}),
		Attrs:      make(AttrMap),
	}
	for _, opt := range opts {
		opt(n)
	}

	return n
}

// NodeOption configures a Node at construction time.
type NodeOption func(*Node)

// WithNodeDisabled marks the node disabled at construction.
func WithNodeDisabled() NodeOption {
	return func(n *Node) { n.Enabled = false }
}

// WithNodeAttrs seeds the node's attribute map (the map is stored, not
// copied; callers should not mutate it afterwards).
func WithNodeAttrs(attrs AttrMap) NodeOption {
	return func(n *Node) { n.Attrs = attrs }
}

// WithNodeRiskGroups adds the node to the named risk groups.
func WithNodeRiskGroups(groups ...string) NodeOption {
	return func(n *Node) {
		for _, g := range groups {
			n.RiskGroups[g] = struct{}{}
		}
	}
}

// FlattenedAttrs returns the condition-evaluation view of this node: its
// top-level field disabled merged over Attrs, top-level wins on conflict,
// per spec §4.7.2.b. Risk-group memberships are not included.
func (n *Node) FlattenedAttrs() AttrMap {
	top := map[string]interface{}{
		"disabled": !n.Enabled,
	}

	return Flatten(top, n.Attrs)
}

// Clone returns a deep-enough copy of n safe for independent mutation of
// RiskGroups membership; Attrs values are not deep-copied (see AttrMap.Clone).
func (n *Node) Clone() *Node {
	clone := &Node{
		Name:       n.Name,
		Enabled:    n.Enabled,
		RiskGroups: make(map[string]struct{}, len(n.RiskGroups)),
		Attrs:      n.Attrs.Clone(),
	}
	for g := range n.RiskGroups {
		clone.RiskGroups[g] = struct{}{}
	}

	return clone
}

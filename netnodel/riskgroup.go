package netnodel

// RiskGroup is a named failure domain. Children form a tree (not a DAG):
// every risk group has at most one parent, enforced by AddRiskGroup's
// parent argument and validated acyclic by ValidateRiskGroups.
type RiskGroup struct {
	Name     string
	Parent   string // empty for a root group
	Children []string
	Disabled bool
	Attrs    AttrMap
}

// RiskGroupOption configures a RiskGroup at construction time.
type RiskGroupOption func(*RiskGroup)

// WithRiskGroupDisabled marks the group disabled at construction.
func WithRiskGroupDisabled() RiskGroupOption {
	return func(g *RiskGroup) { g.Disabled = true }
}

// WithRiskGroupAttrs seeds the group's attribute map.
func WithRiskGroupAttrs(attrs AttrMap) RiskGroupOption {
	return func(g *RiskGroup) { g.Attrs = attrs }
}

func newRiskGroup(name string, opts ...RiskGroupOption) *RiskGroup {
	g := &RiskGroup{Name: name, Attrs: make(AttrMap)}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// FlattenedAttrs returns the condition-evaluation view of this risk group.
func (g *RiskGroup) FlattenedAttrs() AttrMap {
	top := map[string]interface{}{
		"disabled": g.Disabled,
	}

	return Flatten(top, g.Attrs)
}

// dsu is a disjoint-set forest with path compression and union by rank,
// adapted from prim_kruskal.Kruskal's find/union helpers (there: accepting
// MST edges; here: detecting a cycle while walking the risk-group
// parent/child forest).
type dsu struct {
	parent map[string]string
	rank   map[string]int
}

func newDSU(names []string) *dsu {
	d := &dsu{parent: make(map[string]string, len(names)), rank: make(map[string]int, len(names))}
	for _, n := range names {
		d.parent[n] = n
	}

	return d
}

func (d *dsu) find(x string) string {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]] // path compression (halving)
		x = d.parent[x]
	}

	return x
}

// union returns false if x and y were already in the same set (i.e. adding
// this edge would close a cycle).
func (d *dsu) union(x, y string) bool {
	rx, ry := d.find(x), d.find(y)
	if rx == ry {
		return false
	}
	if d.rank[rx] < d.rank[ry] {
		rx, ry = ry, rx
	}
	d.parent[ry] = rx
	if d.rank[rx] == d.rank[ry] {
		d.rank[rx]++
	}

	return true
}

// ValidateRiskGroups walks every parent→child edge in groups and reports
// ErrRiskGroupCycle if the forest is not acyclic. Must be run before any
// Failure Policy evaluation (spec §9 "Cycles"); evaluation code keeps its
// own visited set only as defense-in-depth, never as the sole guard.
func ValidateRiskGroups(groups map[string]*RiskGroup) error {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	d := newDSU(names)
	for _, g := range groups {
		for _, childName := range g.Children {
			child, ok := groups[childName]
			if !ok {
				return ErrUnknownRiskGroup
			}
			if child.Parent != g.Name {
				// Structural inconsistency also indicates a malformed forest;
				// treat it the same as a cycle since downstream algorithms
				// assume a consistent parent/child pairing.
				return ErrRiskGroupCycle
			}
			if !d.union(g.Name, childName) {
				return ErrRiskGroupCycle
			}
		}
	}

	return nil
}

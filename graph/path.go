package graph

// PathStep is one hop of a Path: a node name, and the tuple of parallel
// edge IDs used to leave it for the next step. The final step of a Path
// always has an empty Edges tuple (spec §3 Path).
type PathStep struct {
	Node  string
	Edges []string
}

// Path is an ordered sequence of PathStep from a source to a destination,
// carrying the path's total cost. Two paths compare equal iff their
// sequences are structurally equal (spec §3 Path).
type Path struct {
	Steps []PathStep
	Cost  float64
}

// Equal reports whether p and other have structurally identical step
// sequences (node names and, at each step, the same edge-ID tuple in the
// same order). Cost is not compared: it is derived from the steps and two
// structurally equal paths always carry the same cost.
func (p Path) Equal(other Path) bool {
	if len(p.Steps) != len(other.Steps) {
		return false
	}
	for i := range p.Steps {
		a, b := p.Steps[i], other.Steps[i]
		if a.Node != b.Node || len(a.Edges) != len(b.Edges) {
			return false
		}
		for j := range a.Edges {
			if a.Edges[j] != b.Edges[j] {
				return false
			}
		}
	}

	return true
}

// Source returns the first node in the path, or "" if empty.
func (p Path) Source() string {
	if len(p.Steps) == 0 {
		return ""
	}

	return p.Steps[0].Node
}

// Destination returns the last node in the path, or "" if empty.
func (p Path) Destination() string {
	if len(p.Steps) == 0 {
		return ""
	}

	return p.Steps[len(p.Steps)-1].Node
}

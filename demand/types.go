package demand

// ExpansionMode selects how a UserDemand's selector patterns turn into
// concrete (src, dst) pairs (spec §4.6).
type ExpansionMode int

const (
	// ExpandCombine attaches a pseudo-source to every matched source node
	// and a pseudo-sink to every matched target node, yielding one
	// concrete Demand at the full requested volume.
	ExpandCombine ExpansionMode = iota

	// ExpandPairwise forms every (s,t) Cartesian pair (excluding
	// self-pairs), splitting the requested volume evenly across pairs.
	ExpandPairwise
)

// GroupingMode controls how matched nodes are clustered before expansion
// when GroupBy names a node attribute (spec §4.6 "Grouping modes").
type GroupingMode int

const (
	// Flatten ignores grouping: all matched nodes are treated as one
	// selection, as if GroupBy were unset.
	Flatten GroupingMode = iota

	// PerGroup yields one demand per distinct source-side group value,
	// combining that group's nodes against the full target selection.
	PerGroup

	// GroupPairwise forms the Cartesian product of source groups and
	// target groups, one demand per (source-group, target-group) pair.
	GroupPairwise
)

// UserDemand is a single user-level traffic request: source/target node
// selectors (regex patterns over node names), an expansion mode, and the
// requested volume, class, and priority.
type UserDemand struct {
	SrcPattern string
	DstPattern string
	Mode       ExpansionMode
	Volume     float64
	Class      string
	Priority   int

	// GroupBy, if non-empty, names a node attribute key used to cluster
	// matched nodes per GroupingMode before expansion.
	GroupBy  string
	Grouping GroupingMode
}

// Demand is one concrete, already-expanded (src, dst) traffic request
// ready for placement.
type Demand struct {
	Src      string
	Dst      string
	Volume   float64
	Class    string
	Priority int
	Group    string
}

// Set is the unified container for expanded demands (spec open question:
// exactly one demand.Set type, no separate "matrix" abstraction).
type Set struct {
	Demands []Demand
}

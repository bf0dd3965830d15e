package demand

import (
	"sort"

	"github.com/netgraph/netgraph/flowpolicy"
	"github.com/netgraph/netgraph/graph"
)

// autoDiminishingFraction bounds the "auto" placement-rounds heuristic
// (spec §4.6 step 3): a pass whose incremental placement falls below this
// fraction of the class's total demand is treated as diminishing returns.
const autoDiminishingFraction = 0.01

// autoMaxRounds is the pass ceiling under placement_rounds = "auto".
const autoMaxRounds = 3

// ManagerOptions configures a Manager's placement procedure.
type ManagerOptions struct {
	DefaultPreset flowpolicy.Preset

	// PlacementRounds fixes the number of rounds per priority class when
	// Auto is false; a value of 0 or less then means one round. It is
	// ignored while Auto is true.
	PlacementRounds int

	// Auto selects spec §4.6 step 3's "auto" round count: at most
	// autoMaxRounds passes, stopping early on diminishing returns.
	Auto bool

	// ReoptimizeAfterEachRound calls Policy.RebalanceDemand for every
	// demand in a class after each round (spec §4.6 step 2).
	ReoptimizeAfterEachRound bool
}

// Option mutates ManagerOptions.
type Option func(*ManagerOptions)

// DefaultManagerOptions returns the "auto" round count, no reoptimization,
// and SHORTEST_PATHS_WCMP as the default preset.
func DefaultManagerOptions() ManagerOptions {
	return ManagerOptions{
		DefaultPreset: flowpolicy.ShortestPathsWCMP,
		Auto:          true,
	}
}

// WithPreset sets the default flow-policy preset.
func WithPreset(p flowpolicy.Preset) Option {
	return func(o *ManagerOptions) { o.DefaultPreset = p }
}

// WithFixedRounds disables "auto" and fixes the round count per priority
// class.
func WithFixedRounds(n int) Option {
	return func(o *ManagerOptions) { o.Auto = false; o.PlacementRounds = n }
}

// WithReoptimizeAfterEachRound enables the fairness rebalancing pass.
func WithReoptimizeAfterEachRound() Option {
	return func(o *ManagerOptions) { o.ReoptimizeAfterEachRound = true }
}

// Manager places expanded demands onto a graph.WorkingGraph via a single
// flowpolicy.Policy, using the priority-aware round-robin procedure of
// spec §4.6.
type Manager struct {
	Options ManagerOptions
	policy  *flowpolicy.Policy
}

// NewManager constructs a Manager for preset DefaultPreset (or the
// caller's override via WithPreset).
func NewManager(opts ...Option) (*Manager, error) {
	cfg := DefaultManagerOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	policy, err := flowpolicy.New(cfg.DefaultPreset)
	if err != nil {
		return nil, err
	}

	return &Manager{Options: cfg, policy: policy}, nil
}

// DemandReport is one expanded demand's placement outcome.
type DemandReport struct {
	Priority  int
	Src       string
	Dst       string
	Class     string
	Requested float64
	Placed    float64
	Dropped   float64
}

// Summary aggregates every DemandReport from a Place call.
type Summary struct {
	Reports        []DemandReport
	TotalRequested float64
	TotalPlaced    float64
	TotalDropped   float64
}

// Place runs the priority-aware round-robin placement procedure over
// demands on g (spec §4.6): demands are sorted ascending by priority
// (lower = higher priority) and placed class by class.
func (m *Manager) Place(g *graph.WorkingGraph, demands []Demand) (Summary, error) {
	ordered := make([]Demand, len(demands))
	copy(ordered, demands)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Priority < ordered[j].Priority })

	reports := make([]DemandReport, len(ordered))
	for i, d := range ordered {
		reports[i] = DemandReport{Priority: d.Priority, Src: d.Src, Dst: d.Dst, Class: d.Class, Requested: d.Volume}
	}

	for start := 0; start < len(ordered); {
		end := start
		for end < len(ordered) && ordered[end].Priority == ordered[start].Priority {
			end++
		}
		if err := m.placeClass(g, ordered[start:end], reports[start:end]); err != nil {
			return Summary{}, err
		}
		start = end
	}

	var summary Summary
	summary.Reports = reports
	for _, r := range reports {
		summary.TotalRequested += r.Requested
		summary.TotalPlaced += r.Placed
		summary.TotalDropped += r.Requested - r.Placed
	}

	return summary, nil
}

func (m *Manager) placeClass(g *graph.WorkingGraph, class []Demand, reports []DemandReport) error {
	var classTotal float64
	remaining := make([]float64, len(class))
	for i, d := range class {
		remaining[i] = d.Volume
		classTotal += d.Volume
	}

	rounds := m.Options.PlacementRounds
	if m.Options.Auto {
		rounds = autoMaxRounds
	}
	if rounds <= 0 {
		rounds = 1
	}

	for round := 0; round < rounds; round++ {
		roundsLeft := rounds - round
		var roundPlaced float64

		for i, d := range class {
			if remaining[i] <= 0 {
				continue
			}
			target := remaining[i] / float64(roundsLeft)
			placed, _, err := m.policy.PlaceDemand(g, d.Src, d.Dst, d.Class, remaining[i], target)
			if err != nil {
				return err
			}
			reports[i].Placed += placed
			remaining[i] -= placed
			roundPlaced += placed
		}

		if m.Options.ReoptimizeAfterEachRound {
			for i, d := range class {
				if _, err := m.policy.RebalanceDemand(g, d.Src, d.Dst, d.Class, reports[i].Placed); err != nil {
					return err
				}
			}
		}

		if m.Options.Auto && classTotal > 0 && roundPlaced < autoDiminishingFraction*classTotal {
			break
		}
	}

	for i := range reports {
		reports[i].Dropped = reports[i].Requested - reports[i].Placed
	}

	return nil
}

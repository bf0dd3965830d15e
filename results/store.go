package results

// Step is one workflow step's recorded outcome: a small metadata dict
// (e.g. duration, parameters) and the step's actual output data.
type Step struct {
	Metadata map[string]interface{}
	Data     map[string]interface{}
}

// Scenario is the run-level context a Store snapshots alongside its
// steps (spec §6.3 "scenario" key): the master seed plus named snapshots
// of the failure policies and demand sets that were in effect.
type Scenario struct {
	Seed            uint64
	FailurePolicies map[string]interface{}
	DemandSets      map[string]interface{}
}

// Store is the step-scoped, deterministic Result Store (spec §3). Writes
// happen on the driver after worker results are collected; Store itself
// has no concurrency guard since it is never shared across workers.
type Store struct {
	scenario Scenario
	steps    *orderedMap[Step]
}

// NewStore returns an empty Store scoped to the given master seed.
func NewStore(seed uint64) *Store {
	return &Store{
		scenario: Scenario{
			Seed:            seed,
			FailurePolicies: make(map[string]interface{}),
			DemandSets:      make(map[string]interface{}),
		},
		steps: newOrderedMap[Step](),
	}
}

// SetStep records or overwrites a step's metadata and data, preserving the
// step's original position in insertion order on overwrite.
func (s *Store) SetStep(name string, metadata, data map[string]interface{}) {
	s.steps.Set(name, Step{Metadata: metadata, Data: data})
}

// Step returns the recorded Step for name, if any.
func (s *Store) Step(name string) (Step, bool) {
	return s.steps.Get(name)
}

// StepNames returns every recorded step name in insertion order.
func (s *Store) StepNames() []string {
	return s.steps.Keys()
}

// SetFailurePolicySnapshot records a named failure policy's snapshot for
// scenario export.
func (s *Store) SetFailurePolicySnapshot(name string, snapshot interface{}) {
	s.scenario.FailurePolicies[name] = snapshot
}

// SetDemandSetSnapshot records a named demand set's snapshot for scenario
// export.
func (s *Store) SetDemandSetSnapshot(name string, snapshot interface{}) {
	s.scenario.DemandSets[name] = snapshot
}

// ToDict returns the canonical, JSON-safe export shape (spec §6.3):
//
//	{
//	  "workflow": { step-name -> metadata },
//	  "steps":    { step-name -> { "metadata": {...}, "data": {...} } },
//	  "scenario": { "seed": ..., "failure_policies": {...}, "demand_sets": {...} }
//	}
func (s *Store) ToDict() map[string]interface{} {
	workflow := make(map[string]interface{}, s.steps.Len())
	steps := make(map[string]interface{}, s.steps.Len())
	for _, name := range s.steps.Keys() {
		step, _ := s.steps.Get(name)
		workflow[name] = sanitize(step.Metadata)
		steps[name] = map[string]interface{}{
			"metadata": sanitize(step.Metadata),
			"data":     sanitize(step.Data),
		}
	}

	scenario := map[string]interface{}{
		"seed":             s.scenario.Seed,
		"failure_policies": sanitize(s.scenario.FailurePolicies),
		"demand_sets":      sanitize(s.scenario.DemandSets),
	}

	return map[string]interface{}{
		"workflow": workflow,
		"steps":    steps,
		"scenario": scenario,
	}
}

package results

// yamlSnapshot is an order-stable mirror of Store's contents, used only
// for YAML round-trip golden fixtures in tests. A plain map[string]Step
// would marshal through gopkg.in/yaml.v3 in Go's randomized map order;
// this type pins step order to the Store's own insertion order instead.
type yamlSnapshot struct {
	Seed            uint64                 `yaml:"seed"`
	FailurePolicies map[string]interface{} `yaml:"failure_policies"`
	DemandSets      map[string]interface{} `yaml:"demand_sets"`
	Steps           []yamlStep             `yaml:"steps"`
}

type yamlStep struct {
	Name     string                 `yaml:"name"`
	Metadata map[string]interface{} `yaml:"metadata"`
	Data     map[string]interface{} `yaml:"data"`
}

// Snapshot returns an order-stable, YAML-marshalable view of the Store,
// suitable for golden-fixture round-trip tests via gopkg.in/yaml.v3.
func (s *Store) Snapshot() interface{} {
	steps := make([]yamlStep, 0, s.steps.Len())
	for _, name := range s.steps.Keys() {
		step, _ := s.steps.Get(name)
		steps = append(steps, yamlStep{
			Name:     name,
			Metadata: sanitizedMap(step.Metadata),
			Data:     sanitizedMap(step.Data),
		})
	}

	return yamlSnapshot{
		Seed:            s.scenario.Seed,
		FailurePolicies: sanitizedMap(s.scenario.FailurePolicies),
		DemandSets:      sanitizedMap(s.scenario.DemandSets),
		Steps:           steps,
	}
}

func sanitizedMap(m map[string]interface{}) map[string]interface{} {
	out, _ := sanitize(m).(map[string]interface{})

	return out
}

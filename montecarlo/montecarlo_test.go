package montecarlo_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/netgraph/netgraph/failure"
	"github.com/netgraph/netgraph/maxflow"
	"github.com/netgraph/netgraph/montecarlo"
	"github.com/netgraph/netgraph/netnodel"
)

type MonteCarloSuite struct {
	suite.Suite
}

func TestMonteCarloSuite(t *testing.T) {
	suite.Run(t, new(MonteCarloSuite))
}

// diamond: A->B->D and A->C->D, each leg capacity 5, cost 1. Max-flow is
// 10 with both legs up, 5 with either leg's middle link excluded.
func (s *MonteCarloSuite) diamond() *netnodel.Network {
	net := netnodel.NewNetwork()
	for _, n := range []string{"A", "B", "C", "D"} {
		require.NoError(s.T(), net.AddNode(netnodel.NewNode(n)))
	}
	ab, err := netnodel.NewLink("A", "B", 5, 1, netnodel.WithLinkID("ab"))
	require.NoError(s.T(), err)
	bd, err := netnodel.NewLink("B", "D", 5, 1, netnodel.WithLinkID("bd"))
	require.NoError(s.T(), err)
	ac, err := netnodel.NewLink("A", "C", 5, 1, netnodel.WithLinkID("ac"))
	require.NoError(s.T(), err)
	cd, err := netnodel.NewLink("C", "D", 5, 1, netnodel.WithLinkID("cd"))
	require.NoError(s.T(), err)
	require.NoError(s.T(), net.AddLink(ab))
	require.NoError(s.T(), net.AddLink(bd))
	require.NoError(s.T(), net.AddLink(ac))
	require.NoError(s.T(), net.AddLink(cd))

	return net
}

func (s *MonteCarloSuite) neverFailsPolicy() failure.Policy {
	return failure.Policy{
		Name: "never",
		Modes: []failure.Mode{
			{Name: "idle", Weight: 1, Rules: []failure.Rule{
				{Scope: failure.ScopeLink, NamePattern: "^nonexistent$", Selection: failure.SelectAll},
			}},
		},
	}
}

func (s *MonteCarloSuite) singleLinkPolicy() failure.Policy {
	return failure.Policy{
		Name: "single-link-down",
		Modes: []failure.Mode{
			{Name: "down", Weight: 1, Rules: []failure.Rule{
				{Scope: failure.ScopeLink, Selection: failure.SelectChoice, Count: 1},
			}},
		},
	}
}

func totalFlow(v interface{}) float64 {
	return v.(maxflow.Result).TotalFlow
}

func (s *MonteCarloSuite) TestRunBaselineHasNoExclusionsAndFullFlow() {
	net := s.diamond()
	f := montecarlo.MaxFlowFunc(net, "A", "D")

	summary, err := montecarlo.Run(net.Nodes(), net.Links(), net.RiskGroups(), s.neverFailsPolicy(), f, 5, 42)
	require.NoError(s.T(), err)
	require.Empty(s.T(), summary.Baseline.Excluded)
	require.InDelta(s.T(), 10.0, totalFlow(summary.Baseline.Result), 1e-9)
}

func (s *MonteCarloSuite) TestRunDeduplicatesRepeatedPatterns() {
	net := s.diamond()
	f := montecarlo.MaxFlowFunc(net, "A", "D")

	summary, err := montecarlo.Run(net.Nodes(), net.Links(), net.RiskGroups(), s.neverFailsPolicy(), f, 25, 7)
	require.NoError(s.T(), err)
	// neverFailsPolicy's rule never matches anything, so every iteration
	// produces the same (empty) exclusion pattern.
	require.Len(s.T(), summary.Patterns, 1)
	require.Equal(s.T(), 25, summary.Patterns[0].OccurrenceCount)
	require.InDelta(s.T(), 10.0, totalFlow(summary.Patterns[0].Result), 1e-9)
}

func (s *MonteCarloSuite) TestRunOccurrenceCountsSumToIterations() {
	net := s.diamond()
	f := montecarlo.MaxFlowFunc(net, "A", "D")

	const iterations = 200
	summary, err := montecarlo.Run(net.Nodes(), net.Links(), net.RiskGroups(), s.singleLinkPolicy(), f, iterations, 11, montecarlo.WithParallelism(4))
	require.NoError(s.T(), err)

	total := 0
	for _, p := range summary.Patterns {
		total += p.OccurrenceCount
		require.Len(s.T(), p.Excluded, 1)
		// any single link excluded from the diamond still leaves 5 units
		// of max-flow through the other leg.
		require.InDelta(s.T(), 5.0, totalFlow(p.Result), 1e-9)
	}
	require.Equal(s.T(), iterations, total)
	require.LessOrEqual(s.T(), len(summary.Patterns), 4)
}

func (s *MonteCarloSuite) TestRunWithoutFailurePatternsNeverDeduplicates() {
	net := s.diamond()
	f := montecarlo.MaxFlowFunc(net, "A", "D")

	const iterations = 10
	summary, err := montecarlo.Run(net.Nodes(), net.Links(), net.RiskGroups(), s.neverFailsPolicy(), f, iterations, 3, montecarlo.WithoutFailurePatterns())
	require.NoError(s.T(), err)
	require.Len(s.T(), summary.Patterns, iterations)
	for _, p := range summary.Patterns {
		require.Equal(s.T(), 1, p.OccurrenceCount)
	}
}

func (s *MonteCarloSuite) TestRunBaselineFailureAbortsRun() {
	net := s.diamond()
	wantErr := errors.New("boom")
	f := func(excluded []string) (interface{}, error) {
		return nil, wantErr
	}

	_, err := montecarlo.Run(net.Nodes(), net.Links(), net.RiskGroups(), s.neverFailsPolicy(), f, 5, 1)
	require.ErrorIs(s.T(), err, wantErr)
}

func (s *MonteCarloSuite) TestRunPolicyEvaluationFailureAborts() {
	net := s.diamond()
	badPolicy := failure.Policy{Modes: []failure.Mode{{Weight: 0}}}
	f := montecarlo.MaxFlowFunc(net, "A", "D")

	_, err := montecarlo.Run(net.Nodes(), net.Links(), net.RiskGroups(), badPolicy, f, 5, 1)
	require.ErrorIs(s.T(), err, failure.ErrZeroSumWeights)
}

func (s *MonteCarloSuite) TestRunCapturesPerIterationAnalysisErrorWithoutAborting() {
	net := s.diamond()
	wantErr := errors.New("analysis exploded")
	calls := 0
	f := func(excluded []string) (interface{}, error) {
		calls++
		if calls == 1 {
			// baseline call.
			return "ok", nil
		}

		return nil, wantErr
	}

	summary, err := montecarlo.Run(net.Nodes(), net.Links(), net.RiskGroups(), s.singleLinkPolicy(), f, 4, 1)
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), summary.Patterns)
	for _, p := range summary.Patterns {
		require.ErrorIs(s.T(), p.Err, wantErr)
	}
}

func (s *MonteCarloSuite) TestRunIsDeterministicAcrossParallelism() {
	net := s.diamond()
	f := montecarlo.MaxFlowFunc(net, "A", "D")

	serial, err := montecarlo.Run(net.Nodes(), net.Links(), net.RiskGroups(), s.singleLinkPolicy(), f, 60, 99, montecarlo.WithParallelism(1))
	require.NoError(s.T(), err)
	parallel, err := montecarlo.Run(net.Nodes(), net.Links(), net.RiskGroups(), s.singleLinkPolicy(), f, 60, 99, montecarlo.WithParallelism(8))
	require.NoError(s.T(), err)

	require.Equal(s.T(), len(serial.Patterns), len(parallel.Patterns))
	serialTotals := map[string]int{}
	for _, p := range serial.Patterns {
		serialTotals[p.PatternHash] = p.OccurrenceCount
	}
	for _, p := range parallel.Patterns {
		require.Equal(s.T(), serialTotals[p.PatternHash], p.OccurrenceCount)
	}
}

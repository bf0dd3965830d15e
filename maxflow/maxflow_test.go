package maxflow_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/netgraph/netgraph/graph"
	"github.com/netgraph/netgraph/maxflow"
)

// MaxFlowSuite exercises iterative-augmentation max-flow over small
// synthetic graphs.
type MaxFlowSuite struct {
	suite.Suite
}

func TestMaxFlowSuite(t *testing.T) {
	suite.Run(t, new(MaxFlowSuite))
}

// diamond: A->B->D and A->C->D, legs cost 1, caps as given.
func (s *MaxFlowSuite) diamond(capAB, capBD, capAC, capCD float64) *graph.WorkingGraph {
	g := graph.NewWorkingGraph()
	for _, n := range []string{"A", "B", "C", "D"} {
		require.NoError(s.T(), g.AddNode(n, nil))
	}
	_, err := g.AddEdge("A", "B", "ab", capAB, 1)
	require.NoError(s.T(), err)
	_, err = g.AddEdge("A", "C", "ac", capAC, 1)
	require.NoError(s.T(), err)
	_, err = g.AddEdge("B", "D", "bd", capBD, 1)
	require.NoError(s.T(), err)
	_, err = g.AddEdge("C", "D", "cd", capCD, 1)
	require.NoError(s.T(), err)

	return g
}

func (s *MaxFlowSuite) TestTotalFlowMatchesBothPathsCapacity() {
	g := s.diamond(5, 5, 5, 5)
	result, err := maxflow.MaxFlow(g, "A", "D")
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 10.0, result.TotalFlow, 1e-9)
}

func (s *MaxFlowSuite) TestBottleneckedPathLimitsTotal() {
	g := s.diamond(2, 10, 8, 10)
	result, err := maxflow.MaxFlow(g, "A", "D")
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 10.0, result.TotalFlow, 1e-9)
}

func (s *MaxFlowSuite) TestUnreachableDestinationYieldsZero() {
	g := graph.NewWorkingGraph()
	require.NoError(s.T(), g.AddNode("A", nil))
	require.NoError(s.T(), g.AddNode("Z", nil))
	result, err := maxflow.MaxFlow(g, "A", "Z")
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0.0, result.TotalFlow)
}

func (s *MaxFlowSuite) TestSingleAugmentationOnlyStopsAfterOneRound() {
	g := s.diamond(5, 5, 5, 5)
	result, err := maxflow.MaxFlow(g, "A", "D", maxflow.WithSingleAugmentationOnly())
	require.NoError(s.T(), err)
	// Single SPF round places both equal-cost legs at once (multipath),
	// so this still saturates the bundle found in round one.
	require.InDelta(s.T(), 10.0, result.TotalFlow, 1e-9)
}

func (s *MaxFlowSuite) TestSummaryReportsMinCutAndResidual() {
	g := s.diamond(2, 10, 8, 10)
	result, err := maxflow.MaxFlow(g, "A", "D")
	require.NoError(s.T(), err)
	require.NotNil(s.T(), result.Summary)
	require.InDelta(s.T(), 0.0, result.Summary.ResidualCapacity["ab"], 1e-9)
	require.InDelta(s.T(), 0.0, result.Summary.ResidualCapacity["ac"], 1e-9)
	require.NotEmpty(s.T(), result.Summary.MinCut)
}

func (s *MaxFlowSuite) TestOriginalGraphUntouchedWhenCopying() {
	g := s.diamond(5, 5, 5, 5)
	_, err := maxflow.MaxFlow(g, "A", "D")
	require.NoError(s.T(), err)
	ab, ok := g.Edge("ab")
	require.True(s.T(), ok)
	require.Equal(s.T(), 0.0, ab.Flow)
}

func (s *MaxFlowSuite) TestWithoutGraphCopyMutatesInput() {
	g := s.diamond(5, 5, 5, 5)
	_, err := maxflow.MaxFlow(g, "A", "D", maxflow.WithoutGraphCopy())
	require.NoError(s.T(), err)
	ab, ok := g.Edge("ab")
	require.True(s.T(), ok)
	require.Greater(s.T(), ab.Flow, 0.0)
}

func (s *MaxFlowSuite) TestSaturatedEdges() {
	g := s.diamond(2, 10, 8, 10)
	result, err := maxflow.MaxFlow(g, "A", "D", maxflow.WithoutGraphCopy())
	require.NoError(s.T(), err)
	require.Greater(s.T(), result.TotalFlow, 0.0)
	saturated := maxflow.SaturatedEdges(g)
	var keys []string
	for _, c := range saturated {
		keys = append(keys, c.Key)
	}
	require.Contains(s.T(), keys, "ab")
	require.Contains(s.T(), keys, "ac")
}

func (s *MaxFlowSuite) TestCombineGroupSolvesOnce() {
	g := s.diamond(5, 5, 5, 5)
	result, err := maxflow.Combine(g, "^A$", "^D$")
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 10.0, result.TotalFlow, 1e-9)
}

func (s *MaxFlowSuite) TestPairwiseGroupSolvesEachPair() {
	g := s.diamond(5, 5, 5, 5)
	results, err := maxflow.Pairwise(g, "^A$", "^D$")
	require.NoError(s.T(), err)
	require.Len(s.T(), results, 1)
	require.Equal(s.T(), "A", results[0].Source)
	require.Equal(s.T(), "D", results[0].Target)
	require.InDelta(s.T(), 10.0, results[0].Result.TotalFlow, 1e-9)
}

package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/netgraph/netgraph/analysis"
	"github.com/netgraph/netgraph/demand"
	"github.com/netgraph/netgraph/graph"
	"github.com/netgraph/netgraph/ksp"
	"github.com/netgraph/netgraph/maxflow"
	"github.com/netgraph/netgraph/netnodel"
)

type AnalysisSuite struct {
	suite.Suite
}

func TestAnalysisSuite(t *testing.T) {
	suite.Run(t, new(AnalysisSuite))
}

// diamondNetwork: A->B->D and A->C->D, each leg capacity 5, cost 1.
func (s *AnalysisSuite) diamondNetwork() *netnodel.Network {
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

func (s *AnalysisSuite) buildDiamond() *graph.WorkingGraph {
	net := s.diamondNetwork()
	g, err := analysis.Build(net)
	require.NoError(s.T(), err)

	return g
}

func (s *AnalysisSuite) TestShortestPathCostsPairwise() {
	g := s.buildDiamond()
	results, err := analysis.ShortestPathCosts(g, "^A$", "^D$", analysis.GroupPairwise)
	require.NoError(s.T(), err)
	require.Len(s.T(), results, 1)
	require.True(s.T(), results[0].Reached)
	require.InDelta(s.T(), 2.0, results[0].Cost, 1e-9)
}

func (s *AnalysisSuite) TestShortestPathCostsCombine() {
	g := s.buildDiamond()
	results, err := analysis.ShortestPathCosts(g, "^(B|C)$", "^D$", analysis.GroupCombine)
	require.NoError(s.T(), err)
	require.Len(s.T(), results, 1)
	require.True(s.T(), results[0].Reached)
	require.InDelta(s.T(), 1.0, results[0].Cost, 1e-9)
}

func (s *AnalysisSuite) TestShortestPathsEnumeratesBothEqualCostLegs() {
	g := s.buildDiamond()
	paths, err := analysis.ShortestPaths(g, "^A$", "^D$", analysis.GroupPairwise, false)
	require.NoError(s.T(), err)
	require.Len(s.T(), paths, 1)
	for _, ps := range paths {
		require.Len(s.T(), ps, 2)
	}
}

func (s *AnalysisSuite) TestKShortestPathsPairwiseReturnsUpToK() {
	g := s.buildDiamond()
	results, err := analysis.KShortestPaths(g, "^A$", "^D$", analysis.GroupPairwise, ksp.WithMaxK(2))
	require.NoError(s.T(), err)
	require.Len(s.T(), results, 1)
	require.Len(s.T(), results[0].Results, 2)
	require.InDelta(s.T(), 2.0, results[0].Results[0].Cost, 1e-9)
}

func (s *AnalysisSuite) TestMaxFlowGroupCombine() {
	g := s.buildDiamond()
	result, err := analysis.MaxFlowGroup(g, "^A$", "^D$", analysis.GroupCombine)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 10.0, result.(maxflow.Result).TotalFlow, 1e-9)
}

func (s *AnalysisSuite) TestMaxFlowGroupPairwise() {
	g := s.buildDiamond()
	result, err := analysis.MaxFlowGroup(g, "^A$", "^D$", analysis.GroupPairwise)
	require.NoError(s.T(), err)
	results := result.([]maxflow.PairResult)
	require.Len(s.T(), results, 1)
	require.InDelta(s.T(), 10.0, results[0].Result.TotalFlow, 1e-9)
}

func (s *AnalysisSuite) TestMaxFlowGroupUnknownModeErrors() {
	g := s.buildDiamond()
	_, err := analysis.MaxFlowGroup(g, "^A$", "^D$", analysis.GroupMode(99))
	require.ErrorIs(s.T(), err, analysis.ErrUnknownGroupMode)
}

func (s *AnalysisSuite) TestPlaceDemandsScaled() {
	g := s.buildDiamond()
	mgr, err := demand.NewManager()
	require.NoError(s.T(), err)

	summary, err := analysis.PlaceDemandsScaled(g, mgr, []demand.Demand{
		{Src: "A", Dst: "D", Volume: 3, Class: "default", Priority: 0},
	}, 2)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 6.0, summary.TotalPlaced, 1e-9)
	require.InDelta(s.T(), 0.0, summary.TotalDropped, 1e-9)
}

// TestMaxUniformScaleConvergesWithinResolution reproduces spec §8
// scenario 6's shape: a single bottleneck link of capacity 10 and a base
// demand volume of 3.9 gives an analytically known alpha* = 10/3.9 ≈
// 2.564, which lies in (2.5, 2.6).
func (s *AnalysisSuite) TestMaxUniformScaleConvergesWithinResolution() {
	net := netnodel.NewNetwork()
	require.NoError(s.T(), net.AddNode(netnodel.NewNode("A")))
	require.NoError(s.T(), net.AddNode(netnodel.NewNode("B")))
	link, err := netnodel.NewLink("A", "B", 10, 1, netnodel.WithLinkID("ab"))
	require.NoError(s.T(), err)
	require.NoError(s.T(), net.AddLink(link))

	mgr, err := demand.NewManager()
	require.NoError(s.T(), err)

	demands := []demand.Demand{{Src: "A", Dst: "B", Volume: 3.9, Class: "default", Priority: 0}}
	oracle := analysis.DemandFeasibilityOracle(net, mgr, demands, graph.EmptyMask())

	const resolution = 1e-3
	alphaStar, probes, err := analysis.MaxUniformScale(oracle, analysis.WithResolution(resolution), analysis.WithTolerance(1e-6))
	require.NoError(s.T(), err)

	want := 10.0 / 3.9
	require.InDelta(s.T(), want, alphaStar, resolution*2)
	require.Greater(s.T(), want, 2.5)
	require.Less(s.T(), want, 2.6)
	require.LessOrEqual(s.T(), probes, 30)
}

func (s *AnalysisSuite) TestMaxUniformScaleAlphaMinInfeasibleErrors() {
	net := netnodel.NewNetwork()
	require.NoError(s.T(), net.AddNode(netnodel.NewNode("A")))
	require.NoError(s.T(), net.AddNode(netnodel.NewNode("B")))
	link, err := netnodel.NewLink("A", "B", 1, 1, netnodel.WithLinkID("ab"))
	require.NoError(s.T(), err)
	require.NoError(s.T(), net.AddLink(link))

	mgr, err := demand.NewManager()
	require.NoError(s.T(), err)

	demands := []demand.Demand{{Src: "A", Dst: "B", Volume: 5, Class: "default", Priority: 0}}
	oracle := analysis.DemandFeasibilityOracle(net, mgr, demands, graph.EmptyMask())

	_, _, err = analysis.MaxUniformScale(oracle, analysis.WithAlphaStart(1), func(o *analysis.ScaleOptions) { o.AlphaMin = 1 })
	require.Error(s.T(), err)
}

package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/netgraph/netgraph/graph"
)

// NodeLinkDictSuite exercises the JSON-safe node-link export/import
// round-trip (spec §8 Graph Core round-trip property).
type NodeLinkDictSuite struct {
	suite.Suite
}

func TestNodeLinkDictSuite(t *testing.T) {
	suite.Run(t, new(NodeLinkDictSuite))
}

func (s *NodeLinkDictSuite) TestRoundTripPreservesTopology() {
	g := graph.NewWorkingGraph()
	require.NoError(s.T(), g.AddNode("A", map[string]interface{}{"region": "east"}))
	require.NoError(s.T(), g.AddNode("B", nil))
	key, err := g.AddEdge("A", "B", "fixed", 10, 2)
	require.NoError(s.T(), err)

	d := g.ToNodeLinkDict()
	rebuilt, err := graph.FromNodeLinkDict(d)
	require.NoError(s.T(), err)

	require.Equal(s.T(), g.Nodes(), rebuilt.Nodes())
	e, ok := rebuilt.Edge(key)
	require.True(s.T(), ok)
	require.Equal(s.T(), 10.0, e.Capacity)
	require.Equal(s.T(), 2.0, e.Cost)
	require.Equal(s.T(), 0.0, e.Flow, "round trip resets flow to zero")
}

func (s *NodeLinkDictSuite) TestLinksOrderedByAscendingKey() {
	g := graph.NewWorkingGraph()
	require.NoError(s.T(), g.AddNode("A", nil))
	require.NoError(s.T(), g.AddNode("B", nil))
	_, err := g.AddEdge("A", "B", "z", 1, 1)
	require.NoError(s.T(), err)
	_, err = g.AddEdge("A", "B", "a", 1, 1)
	require.NoError(s.T(), err)

	d := g.ToNodeLinkDict()
	require.Equal(s.T(), "a", d.Links[0].Key)
	require.Equal(s.T(), "z", d.Links[1].Key)
}

func (s *NodeLinkDictSuite) TestFromNodeLinkDictRejectsOutOfRangeIndex() {
	d := graph.NodeLinkDict{
		Nodes: []graph.NodeLinkNode{{ID: "A"}},
		Links: []graph.NodeLinkLink{{Source: 0, Target: 5, Key: "x"}},
	}
	_, err := graph.FromNodeLinkDict(d)
	require.ErrorIs(s.T(), err, graph.ErrMissingEndpoint)
}

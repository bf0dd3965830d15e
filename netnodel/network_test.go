package netnodel_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netgraph/netgraph/netnodel"
)

func TestNetwork_AddNodeDuplicate(t *testing.T) {
	net := netnodel.NewNetwork()
	require.NoError(t, net.AddNode(netnodel.NewNode("A")))
	err := net.AddNode(netnodel.NewNode("A"))
	require.ErrorIs(t, err, netnodel.ErrDuplicateNode)
}

func TestNetwork_AddLinkUnknownEndpoint(t *testing.T) {
	net := netnodel.NewNetwork()
	require.NoError(t, net.AddNode(netnodel.NewNode("A")))
	link, err := netnodel.NewLink("A", "B", 10, 1)
	require.NoError(t, err)
	err = net.AddLink(link)
	require.ErrorIs(t, err, netnodel.ErrUnknownNode)
}

func TestNetwork_InsertionOrderPreserved(t *testing.T) {
	net := netnodel.NewNetwork()
	names := []string{"D", "B", "A", "C"}
	for _, n := range names {
		require.NoError(t, net.AddNode(netnodel.NewNode(n)))
	}
	require.Equal(t, names, net.NodeNames())
}

func TestLinkID_Format(t *testing.T) {
	id := netnodel.NewLinkID("A", "B")
	parts := strings.Split(id, "|")
	require.Len(t, parts, 3)
	require.Equal(t, "A", parts[0])
	require.Equal(t, "B", parts[1])
	require.Len(t, parts[2], 22)
	for _, c := range parts[2] {
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-'
		require.Truef(t, isAlnum, "unexpected char %q in link id suffix", c)
	}
}

func TestLinkID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := netnodel.NewLinkID("A", "B")
		_, dup := seen[id]
		require.False(t, dup, "duplicate link id generated")
		seen[id] = struct{}{}
	}
}

func TestNewLink_InvalidCapacityOrCost(t *testing.T) {
	_, err := netnodel.NewLink("A", "B", 0, 1)
	require.ErrorIs(t, err, netnodel.ErrNonPositiveCapacity)

	_, err = netnodel.NewLink("A", "B", 10, -1)
	require.ErrorIs(t, err, netnodel.ErrNegativeCost)
}

func TestValidateRiskGroups_DetectsCycle(t *testing.T) {
	net := netnodel.NewNetwork()
	require.NoError(t, net.AddRiskGroup("root", ""))
	require.NoError(t, net.AddRiskGroup("child", "root"))

	groups := net.RiskGroups()
	// Manually corrupt the forest into a cycle: root's parent becomes child.
	groups["root"].Parent = "child"
	groups["child"].Children = append(groups["child"].Children, "root")

	err := netnodel.ValidateRiskGroups(groups)
	require.Error(t, err)
}

func TestValidateRiskGroups_AcceptsForest(t *testing.T) {
	net := netnodel.NewNetwork()
	require.NoError(t, net.AddRiskGroup("root", ""))
	require.NoError(t, net.AddRiskGroup("childA", "root"))
	require.NoError(t, net.AddRiskGroup("childB", "root"))
	require.NoError(t, net.AddRiskGroup("grandchild", "childA"))

	require.NoError(t, net.Validate())
}

func TestAttrMap_ResolveDotPath(t *testing.T) {
	attrs := netnodel.AttrMap{
		"hardware": map[string]interface{}{
			"vendor": "acme",
		},
	}
	v, ok := attrs.Resolve("hardware.vendor")
	require.True(t, ok)
	require.Equal(t, "acme", v)

	_, ok = attrs.Resolve("hardware.missing")
	require.False(t, ok)
}

func TestFlatten_TopLevelWinsOnConflict(t *testing.T) {
	attrs := netnodel.AttrMap{"disabled": "stale"}
	flat := netnodel.Flatten(map[string]interface{}{"disabled": true}, attrs)
	require.Equal(t, true, flat["disabled"])
}

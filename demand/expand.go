package demand

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/google/uuid"

	"github.com/netgraph/netgraph/graph"
)

// selectNodes returns the sorted node names matching pattern.
func selectNodes(g *graph.WorkingGraph, pattern string) ([]string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, n := range g.Nodes() {
		if re.MatchString(n) {
			out = append(out, n)
		}
	}
	sort.Strings(out)

	return out, nil
}

// groupValue returns the stringified GroupBy attribute of node name, or
// "" if the node, the attribute, or GroupBy itself is absent.
func groupValue(g *graph.WorkingGraph, name, groupBy string) string {
	if groupBy == "" {
		return ""
	}
	n, ok := g.Node(name)
	if !ok {
		return ""
	}
	v, ok := n.Attrs[groupBy]
	if !ok {
		return ""
	}

	return fmt.Sprintf("%v", v)
}

// groupNodes clusters names by their GroupBy attribute value, returning
// groups in ascending key order for determinism.
func groupNodes(g *graph.WorkingGraph, names []string, groupBy string) []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, n := range names {
		v := groupValue(g, n, groupBy)
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			keys = append(keys, v)
		}
	}
	sort.Strings(keys)

	return keys
}

func filterByGroup(g *graph.WorkingGraph, names []string, groupBy, group string) []string {
	var out []string
	for _, n := range names {
		if groupValue(g, n, groupBy) == group {
			out = append(out, n)
		}
	}

	return out
}

// attachPseudoSource adds a pseudo node with zero-cost, infinite-capacity
// edges to every name in targets, returning the pseudo node's name.
func attachPseudoSource(g *graph.WorkingGraph, targets []string) (string, error) {
	pseudo := "__pseudo_src_" + uuid.NewString() + "__"
	if err := g.AddNode(pseudo, nil); err != nil {
		return "", err
	}
	for i, t := range targets {
		if _, err := g.AddEdge(pseudo, t, fmt.Sprintf("%s_e%d", pseudo, i), infiniteCapacity, 0); err != nil {
			return "", err
		}
	}

	return pseudo, nil
}

// attachPseudoSink is attachPseudoSource's mirror: edges run sources->pseudo.
func attachPseudoSink(g *graph.WorkingGraph, sources []string) (string, error) {
	pseudo := "__pseudo_dst_" + uuid.NewString() + "__"
	if err := g.AddNode(pseudo, nil); err != nil {
		return "", err
	}
	for i, s := range sources {
		if _, err := g.AddEdge(s, pseudo, fmt.Sprintf("%s_e%d", pseudo, i), infiniteCapacity, 0); err != nil {
			return "", err
		}
	}

	return pseudo, nil
}

const infiniteCapacity = 1e18

// Expand turns one UserDemand into a Set of concrete Demands, mutating g
// with any pseudo-source/pseudo-sink nodes the combine mode requires
// (spec §4.6).
func Expand(g *graph.WorkingGraph, u UserDemand) (Set, error) {
	sources, err := selectNodes(g, u.SrcPattern)
	if err != nil {
		return Set{}, err
	}
	targets, err := selectNodes(g, u.DstPattern)
	if err != nil {
		return Set{}, err
	}

	if u.GroupBy == "" || u.Grouping == Flatten {
		demands, err := expandPlain(g, u, sources, targets)

		return Set{Demands: demands}, err
	}

	return expandGrouped(g, u, sources, targets)
}

func expandPlain(g *graph.WorkingGraph, u UserDemand, sources, targets []string) ([]Demand, error) {
	switch u.Mode {
	case ExpandPairwise:
		return expandPairwise(sources, targets, u, "")
	default:
		return expandCombine(g, sources, targets, u, "")
	}
}

func expandGrouped(g *graph.WorkingGraph, u UserDemand, sources, targets []string) (Set, error) {
	srcGroups := groupNodes(g, sources, u.GroupBy)
	var demands []Demand

	switch u.Grouping {
	case PerGroup:
		for _, sg := range srcGroups {
			groupSources := filterByGroup(g, sources, u.GroupBy, sg)
			var err error
			var d []Demand
			if u.Mode == ExpandPairwise {
				d, err = expandPairwise(groupSources, targets, u, sg)
			} else {
				d, err = expandCombine(g, groupSources, targets, u, sg)
			}
			if err != nil {
				return Set{}, err
			}
			demands = append(demands, d...)
		}
	case GroupPairwise:
		dstGroups := groupNodes(g, targets, u.GroupBy)
		for _, sg := range srcGroups {
			groupSources := filterByGroup(g, sources, u.GroupBy, sg)
			for _, tg := range dstGroups {
				groupTargets := filterByGroup(g, targets, u.GroupBy, tg)
				label := sg + "->" + tg
				var err error
				var d []Demand
				if u.Mode == ExpandPairwise {
					d, err = expandPairwise(groupSources, groupTargets, u, label)
				} else {
					d, err = expandCombine(g, groupSources, groupTargets, u, label)
				}
				if err != nil {
					return Set{}, err
				}
				demands = append(demands, d...)
			}
		}
	default:
		d, err := expandPlain(g, u, sources, targets)
		if err != nil {
			return Set{}, err
		}
		demands = d
	}

	return Set{Demands: demands}, nil
}

func expandCombine(g *graph.WorkingGraph, sources, targets []string, u UserDemand, group string) ([]Demand, error) {
	if len(sources) == 0 || len(targets) == 0 {
		return nil, nil
	}
	pseudoSrc, err := attachPseudoSource(g, sources)
	if err != nil {
		return nil, err
	}
	pseudoDst, err := attachPseudoSink(g, targets)
	if err != nil {
		return nil, err
	}

	return []Demand{{
		Src: pseudoSrc, Dst: pseudoDst, Volume: u.Volume,
		Class: u.Class, Priority: u.Priority, Group: group,
	}}, nil
}

func expandPairwise(sources, targets []string, u UserDemand, group string) ([]Demand, error) {
	var pairs [][2]string
	for _, s := range sources {
		for _, t := range targets {
			if s == t {
				continue
			}
			pairs = append(pairs, [2]string{s, t})
		}
	}
	if len(pairs) == 0 {
		return nil, nil
	}

	perPair := u.Volume / float64(len(pairs))
	demands := make([]Demand, 0, len(pairs))
	for _, pair := range pairs {
		demands = append(demands, Demand{
			Src: pair[0], Dst: pair[1], Volume: perPair,
			Class: u.Class, Priority: u.Priority, Group: group,
		})
	}

	return demands, nil
}

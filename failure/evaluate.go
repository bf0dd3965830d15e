package failure

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"

	"github.com/netgraph/netgraph/netnodel"
)

// Apply evaluates policy against nodes, links, and riskGroups, returning
// the deterministic, sorted list of failing node and link identifiers
// (spec §4.7). rng must be a seeded, non-shared *rand.Rand (see package
// seed) — callers never pass a global math/rand source. riskGroups is
// checked with netnodel.ValidateRiskGroups first; a cyclic or malformed
// forest fails before any mode is chosen.
func Apply(nodes []*netnodel.Node, links []*netnodel.Link, riskGroups map[string]*netnodel.RiskGroup, policy Policy, rng *rand.Rand) ([]string, error) {
	if err := netnodel.ValidateRiskGroups(riskGroups); err != nil {
		return nil, err
	}

	mode, err := chooseMode(policy.Modes, rng)
	if err != nil {
		return nil, err
	}

	selected := make(map[entityRef]struct{})
	for _, rule := range mode.Rules {
		refs, err := applyRule(nodes, links, riskGroups, rule, rng)
		if err != nil {
			return nil, err
		}
		for _, ref := range refs {
			selected[ref] = struct{}{}
		}
	}

	if policy.ExpandChildren {
		expandChildren(riskGroups, selected)
	}
	if policy.ExpandGroups {
		expandGroups(nodes, links, selected)
	}

	return finalize(selected), nil
}

func applyRule(nodes []*netnodel.Node, links []*netnodel.Link, riskGroups map[string]*netnodel.RiskGroup, rule Rule, rng *rand.Rand) ([]entityRef, error) {
	var namePattern *regexp.Regexp
	if rule.NamePattern != "" {
		re, err := regexp.Compile(rule.NamePattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSelector, err)
		}
		namePattern = re
	}

	type candidate struct {
		id    string
		attrs netnodel.AttrMap
	}

	var candidates []candidate
	switch rule.Scope {
	case ScopeNode:
		for _, n := range nodes {
			if namePattern != nil && !namePattern.MatchString(n.Name) {
				continue
			}
			candidates = append(candidates, candidate{id: n.Name, attrs: n.FlattenedAttrs()})
		}
	case ScopeLink:
		for _, l := range links {
			if namePattern != nil && !namePattern.MatchString(l.ID) {
				continue
			}
			candidates = append(candidates, candidate{id: l.ID, attrs: l.FlattenedAttrs()})
		}
	case ScopeRiskGroup:
		names := make([]string, 0, len(riskGroups))
		for name := range riskGroups {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if namePattern != nil && !namePattern.MatchString(name) {
				continue
			}
			candidates = append(candidates, candidate{id: name, attrs: riskGroups[name].FlattenedAttrs()})
		}
	default:
		return nil, ErrUnknownScope
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].id < candidates[j].id })

	var matched []candidate
	for _, c := range candidates {
		ok, err := evaluateConditions(rule.Conditions, rule.Combine, c.attrs)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, c)
		}
	}

	ids := make([]string, len(matched))
	weights := make(map[string]float64, len(matched))
	for i, c := range matched {
		ids[i] = c.id
		if rule.WeightBy != "" {
			if v, ok := c.attrs.Resolve(rule.WeightBy); ok {
				if f, ok := toFloat(v); ok {
					weights[c.id] = f
				}
			}
		}
	}

	var chosenIDs []string
	switch rule.Selection {
	case SelectAll:
		chosenIDs = ids
	case SelectRandom:
		if rule.Probability < 0 || rule.Probability > 1 {
			return nil, ErrInvalidProbability
		}
		chosenIDs = selectRandom(ids, rule.Probability, rng)
	case SelectChoice:
		if rule.Count <= 0 {
			return nil, ErrNonPositiveChoiceCount
		}
		chosenIDs = selectChoice(ids, rule.Count, weights, rng)
	default:
		return nil, ErrUnknownSelectionKind
	}

	refs := make([]entityRef, len(chosenIDs))
	for i, id := range chosenIDs {
		refs[i] = entityRef{Scope: rule.Scope, ID: id}
	}

	return refs, nil
}

// expandChildren recursively includes children of every selected
// risk-group ref until a fixed point, guarded by a visited set (spec §4.7
// step 4; cycle safety is defense-in-depth, the forest is already
// validated acyclic by netnodel.ValidateRiskGroups before evaluation).
func expandChildren(riskGroups map[string]*netnodel.RiskGroup, selected map[entityRef]struct{}) {
	queue := make([]string, 0)
	for ref := range selected {
		if ref.Scope == ScopeRiskGroup {
			queue = append(queue, ref.ID)
		}
	}
	visited := make(map[string]struct{})
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if _, ok := visited[name]; ok {
			continue
		}
		visited[name] = struct{}{}
		g, ok := riskGroups[name]
		if !ok {
			continue
		}
		for _, child := range g.Children {
			selected[entityRef{Scope: ScopeRiskGroup, ID: child}] = struct{}{}
			queue = append(queue, child)
		}
	}
}

// expandGroups adds any node/link sharing a risk group with an already
// selected entity (spec §4.7 step 5): the target group set is every risk
// group directly selected, plus the risk-group memberships of every
// selected node/link.
func expandGroups(nodes []*netnodel.Node, links []*netnodel.Link, selected map[entityRef]struct{}) {
	nodeByName := make(map[string]*netnodel.Node, len(nodes))
	for _, n := range nodes {
		nodeByName[n.Name] = n
	}
	linkByID := make(map[string]*netnodel.Link, len(links))
	for _, l := range links {
		linkByID[l.ID] = l
	}

	targetGroups := make(map[string]struct{})
	for ref := range selected {
		switch ref.Scope {
		case ScopeRiskGroup:
			targetGroups[ref.ID] = struct{}{}
		case ScopeNode:
			if n, ok := nodeByName[ref.ID]; ok {
				for g := range n.RiskGroups {
					targetGroups[g] = struct{}{}
				}
			}
		case ScopeLink:
			if l, ok := linkByID[ref.ID]; ok {
				for g := range l.RiskGroups {
					targetGroups[g] = struct{}{}
				}
			}
		}
	}
	if len(targetGroups) == 0 {
		return
	}

	for _, n := range nodes {
		for g := range n.RiskGroups {
			if _, ok := targetGroups[g]; ok {
				selected[entityRef{Scope: ScopeNode, ID: n.Name}] = struct{}{}

				break
			}
		}
	}
	for _, l := range links {
		for g := range l.RiskGroups {
			if _, ok := targetGroups[g]; ok {
				selected[entityRef{Scope: ScopeLink, ID: l.ID}] = struct{}{}

				break
			}
		}
	}
}

// finalize returns the sorted node/link identifiers from selected,
// dropping any bare risk-group refs that expandGroups never resolved to
// a concrete member (spec §4.7 step 6: "the final set" feeds graph
// exclusion, and risk groups are not themselves graph entities).
func finalize(selected map[entityRef]struct{}) []string {
	var out []string
	for ref := range selected {
		if ref.Scope == ScopeNode || ref.Scope == ScopeLink {
			out = append(out, ref.ID)
		}
	}
	sort.Strings(out)

	return out
}

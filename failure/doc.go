// Package failure evaluates named failure policies against a Network's
// nodes, links, and risk groups, selecting a deterministic set of failing
// entity identifiers per spec §4.7.
//
// A Policy chooses exactly one Mode per evaluation by weighted sampling,
// applies each of the mode's rules (scope filter, regex name filter,
// condition evaluation, selection), unions the matches, and optionally
// expands the result through the risk-group parent/child forest
// (expand_children) and shared risk-group membership (expand_groups).
package failure

// Package flowpolicy converts a single (src, dst, volume, class) demand
// into one or more Flows placed on a graph.WorkingGraph, honoring one of
// five routing-configuration presets (spec §4.5).
//
// Each preset pins a path algorithm (spf multipath or ksp), an
// edge-selection policy, a capacity-splitting discipline, and a maximum
// flow count, dispatched from a table rather than a chain of
// conditionals — the same multi-strategy-dispatch shape the teacher uses
// in tsp.SolveWithMatrix to route between exact/approximate/branch-and-
// bound solvers.
package flowpolicy

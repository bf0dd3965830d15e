// Package capacity computes the maximum feasible flow and a normalized
// per-edge flow split over a predecessor DAG produced by spf or ksp, and
// applies the result to a graph.WorkingGraph's edges.
//
// Two placement disciplines are offered (spec §4.3):
//
//   - Proportional: a Dinic-like level-graph BFS plus blocking-flow DFS
//     run directly on the DAG's edges, splitting flow in proportion to
//     residual capacity (WCMP-style).
//   - EqualBalanced: a BFS-order nominal-flow propagation that splits
//     equally across out-edges at every hop, then scales to the largest
//     feasible value (ECMP-style).
//
// Both operate purely on the supplied predecessor DAG — never on the
// full working graph — so only edges actually reachable from src to dst
// within the bundle are ever touched.
package capacity

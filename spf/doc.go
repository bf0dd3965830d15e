// Package spf implements shortest-path-first, a Dijkstra-like multipath
// shortest-path algorithm over a graph.WorkingGraph with pluggable
// edge-selection policies.
//
// Unlike a plain single-path Dijkstra, SPF records every equal-cost
// predecessor of a node when multipath is enabled, producing a compact
// predecessor DAG (graph.PathBundle's Preds shape) rather than a single
// predecessor chain. This is what lets the capacity engine split flow
// across multiple equal-cost next hops.
//
// Complexity:
//
//   - Time:  O((V + E) log V), same shape as a classical Dijkstra; the
//     edge-selection policy itself runs in O(parallel edges at that hop).
//   - Space: O(V + E) for costs/preds; O(E) worst case in the heap under
//     the lazy-decrease-key pattern.
package spf

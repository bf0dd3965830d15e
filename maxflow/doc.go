// Package maxflow computes maximum feasible flow between a source and a
// destination on a graph.WorkingGraph by iterative augmentation: repeated
// shortest-path-first passes, each widened by the capacity package's
// placement strategies, until no further increment is found (spec §4.4).
//
// Unlike the teacher's flow.Dinic (a single blocking-flow algorithm),
// max_flow here is explicitly layered: spf finds the augmenting predecessor
// DAG, capacity computes and places the feasible increment along it. This
// keeps the per-edge flow attribution and the two splitting disciplines
// (proportional / equal-balanced) available to every augmentation round,
// not just to a final single pass.
package maxflow

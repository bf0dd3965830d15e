// Package netgraph is a network-topology simulation and capacity-analysis
// engine: build a network from nodes and links, run shortest-path and
// max-flow queries over it, place demand sets, evaluate failure policies,
// and sweep failure scenarios with Monte Carlo sampling.
//
// Subpackages are organized one per concern:
//
//	netnodel/    — Node, Link, RiskGroup and the Network container
//	graph/       — WorkingGraph: the mutable, exclusion-aware view analyses run over
//	spf/         — shortest path with pluggable edge-selection policies
//	ksp/         — K-shortest paths
//	capacity/    — feasible-flow computation and flow placement over a predecessor DAG
//	maxflow/     — iterative-augmentation max-flow, group and pairwise modes
//	flowpolicy/  — named flow-splitting presets
//	demand/      — demand sets, expansion, and placement
//	failure/     — failure policies and scenario evaluation
//	seed/        — deterministic RNG derivation
//	montecarlo/  — scenario sampling harness with pattern dedup
//	results/     — step-scoped, JSON/YAML-safe result store
//	analysis/    — facade wiring the above into the Analysis API surface
package netgraph

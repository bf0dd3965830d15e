// Package analysis is the top-level facade wiring netnodel, graph, spf,
// ksp, maxflow, demand, failure, and montecarlo into the programmatic
// Analysis API (spec §6.2): build a working graph, compute
// shortest/K-shortest paths between node-group selectors, run combine or
// pairwise group max-flow, place demand sets, find the maximum
// uniform-scale alpha a demand set fully tolerates, and run Monte Carlo
// analysis. Saturated-edge reporting and sensitivity analysis are not
// wrapped here; they are maxflow.SaturatedEdges and
// maxflow.SensitivityAnalysis.
package analysis

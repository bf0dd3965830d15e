// Package montecarlo runs a failure.Policy repeatedly against a Network,
// dispatching each iteration's resulting exclusion set to a caller-supplied
// analysis function, deduplicating iterations that land on the same
// failure pattern (spec §4.8).
//
// A run always evaluates one baseline iteration with no exclusions first;
// a baseline failure aborts the run. Remaining iterations run across
// Parallelism worker goroutines, each deriving its own seed via
// package seed so results are reproducible independent of scheduling.
package montecarlo

// Package demand expands user-level traffic demands (selector-based
// source/target groups, pairwise or combined) into concrete
// (src, dst, volume, class, priority) Demands, then places them on a
// graph.WorkingGraph via a flowpolicy.Policy using a priority-aware
// round-robin procedure (spec §4.6).
//
// There is exactly one demand container type, Set — the historically
// separate "matrix" and "demand set" abstractions are unified here (see
// DESIGN.md's Open-Question decisions).
package demand

// Package graph implements the Graph Core (spec §4.1): an ephemeral,
// strict, multi-directed working graph built on demand from a
// netnodel.Network for a single analysis call, plus the Path and
// PathBundle types that the path and flow engines operate on.
//
// "Strict" means: AddNode rejects a duplicate name; AddEdge rejects an
// unknown endpoint or a duplicate key; RemoveNode/RemoveEdge reject
// nonexistent entities. No algorithm in this module or its siblings may
// rely on implicit node creation — multiple algorithms key data on edge
// identity, and silent auto-creation would corrupt results.
//
// A WorkingGraph owns its own flow state (Flow, Flows per edge); the base
// netnodel.Network is never mutated by building or analyzing a
// WorkingGraph.
package graph

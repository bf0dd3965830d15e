// Package netnodel defines the declarative, immutable data model that the
// NetGraph analysis core consumes: Node, Link, RiskGroup, and the Network
// that owns them.
//
// A Network is produced by an external blueprint expander (out of scope for
// this module) and is never mutated once handed to the analysis core — every
// algorithm in sibling packages (graph, spf, maxflow, ...) reads a Network
// and writes to an ephemeral working graph instead. See graph.Build.
//
// Iteration over a Network's nodes and links is deterministic: insertion
// order, not map order, exactly as spec'd. RiskGroups form a tree (parent to
// children), validated acyclic by ValidateRiskGroups before any failure
// policy runs against them.
package netnodel

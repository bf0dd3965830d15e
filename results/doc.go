// Package results implements the step-scoped Result Store (spec §3, §6.3):
// a deterministic, insertion-ordered container keyed by workflow step name,
// where each step holds exactly two sub-keys, "metadata" and "data". Store
// exports a canonical, JSON-safe shape via ToDict, and a YAML-serializable
// snapshot for golden-fixture round-trip testing.
package results

// Package seed derives decorrelated child seeds from a single master seed
// and a tuple of string components (spec §5 "Determinism via seeds"): the
// master plus components are hashed with SHA-256 and truncated to 64 bits,
// giving deterministic, order-invariant per-iteration randomness without
// any global random state.
package seed

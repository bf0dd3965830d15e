package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// Derive mixes master with components (e.g. "failure_policy", a policy
// name, an iteration index) into a child 64-bit seed via a SHA-256 keyed
// hash, truncated to its first 8 bytes (spec §5). A zero-byte separator is
// written between components so ("ab", "c") and ("a", "bc") never collide.
func Derive(master uint64, components ...string) uint64 {
	h := sha256.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], master)
	h.Write(buf[:])
	for _, c := range components {
		h.Write([]byte(c))
		h.Write([]byte{0})
	}
	sum := h.Sum(nil)

	return binary.BigEndian.Uint64(sum[:8])
}

// RNG returns a deterministic *rand.Rand seeded via Derive. Per-worker and
// per-iteration streams must each call this with their own distinguishing
// components rather than sharing or advancing a single *rand.Rand across
// goroutines (math/rand.Rand is not goroutine-safe).
func RNG(master uint64, components ...string) *rand.Rand {
	return rand.New(rand.NewSource(int64(Derive(master, components...))))
}

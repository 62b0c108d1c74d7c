// Package randutil derives reproducible math/rand/v2 sources from seeds.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a generator seeded deterministically from seed.
func New(seed int64) *rand.Rand {
	return Derive(seed, 0)
}

// Derive returns an independent stream for the given index, so parallel
// workers sharing one seed never share a sequence.
func Derive(seed int64, stream int) *rand.Rand {
	u := uint64(seed) + uint64(stream)*goldenRatio64
	return rand.New(rand.NewPCG(mix(u), mix(u^goldenRatio64)))
}

// splitmix64 finaliser
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

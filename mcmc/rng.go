// Package mcmc - deterministic RNG streams for parallel chains.
//
// math/rand.Rand is not goroutine-safe, so every chain owns its own
// generator. Streams are derived from (base seed, chain index) through a
// SplitMix64-style avalanche mix: small input changes diffuse across all
// output bits, so consecutive chain indices yield decorrelated streams and
// the same seed reproduces the same run on every platform.
package mcmc

import "math/rand"

// deriveSeed mixes a base seed and a stream identifier into a new 64-bit
// seed using the canonical SplitMix64 multipliers (Vigna 2014).
func deriveSeed(base int64, stream uint64) int64 {
	x := uint64(base) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// chainRNG returns the deterministic generator for one chain.
func chainRNG(seed int64, chain int) *rand.Rand {
	return rand.New(rand.NewSource(deriveSeed(seed, uint64(chain))))
}

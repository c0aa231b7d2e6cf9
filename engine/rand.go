package engine

import "math/rand/v2"

// Rand is the randomness source for spawns, loot and weapon rolls
// *rand.Rand from math/rand/v2 satisfies it
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG source; seed 0 draws a random seed
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

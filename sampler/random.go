// Package sampler provides the 1D random generator and the family of 2D
// sample sequences (random, stratified, Halton, Hammersley) consumed by the
// integrator for hemisphere sampling and by the dispatcher for pixel
// jitter.
package sampler

import tmath "terra-go/math"

// Random is a PCG32 generator: a 64-bit LCG state with a permuted output
// function. The render dispatcher gives every tile its own, seeded once
// from a clock reading XORed with the tile's index.
type Random struct {
	state uint64
	inc   uint64
}

// NewRandom seeds a generator from a clock reading XORed with the
// worker's index, with one throwaway step to mix the seed into the state.
func NewRandom(clock tmath.Clock, workerID int) *Random {
	seed := uint64(clock.Ticks()) ^ uint64(workerID)*0x9E3779B97F4A7C15
	r := &Random{state: 0, inc: 1}
	r.Next()
	r.state += seed
	r.Next()
	return r
}

// Next returns a uniform float32 in [0, 1) via the standard PCG32
// xorshift-then-rotate output permutation, mapped to [0,1) by the 32-bit
// mantissa scaling 1/2^32.
func (r *Random) Next() float32 {
	old := r.state
	r.state = old*6364136223846793005 + r.inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	rndi := (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
	const resolution = 1.0 / 4294967296.0 // 1 / 2^32
	v := float32(rndi) * resolution
	if v >= 1 {
		// float32 rounding carries the largest outputs up to exactly 1.
		v = 1 - eps
	}
	return v
}

// Next2 draws two independent canonical samples, the shape every 2D
// sequence's per-pair consumer expects.
func (r *Random) Next2() (float32, float32) {
	return r.Next(), r.Next()
}

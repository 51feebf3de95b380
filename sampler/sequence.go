package sampler

import "math"

// Sequence2D produces a fixed number of canonical [0,1)^2 pairs, each
// consumed exactly once. Calling Next after the sequence is exhausted is a
// caller error — implementations here panic rather than silently
// wrapping.
type Sequence2D interface {
	// Next returns the next canonical pair and advances the cursor.
	Next() (float32, float32)
	// Len returns the total number of pairs the sequence will produce.
	Len() int
}

// NextPowerOfTwoSquare returns the smallest k^2 such that k is a power of
// two and k^2 >= n. Every Sequence2D constructor below rounds its
// requested sample count up to this value.
func NextPowerOfTwoSquare(n int) int {
	if n < 1 {
		n = 1
	}
	k := int(math.Ceil(math.Sqrt(float64(n))))
	k = nextPow2(k)
	return k * k
}

func nextPow2(v int) int {
	if v < 1 {
		return 1
	}
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}

// RadicalInverse is the van der Corput inverse of a in the given base,
// clamped below 1 by one ULP so samples never land exactly on the upper
// bound of [0,1).
func RadicalInverse(base, a uint64) float32 {
	invBase := 1.0 / float32(base)
	var seq uint64
	denom := float32(1)
	for a != 0 {
		next := a / base
		digit := a - next*base
		seq = seq*base + digit
		denom *= invBase
		a = next
	}
	v := float32(seq) * denom
	if v > 1-eps {
		return 1 - eps
	}
	return v
}

// eps is one float32 ULP below 1 (2^-24): 1-eps is the largest float32
// less than 1.
const eps = 1.0 / (1 << 24)

type baseSequence struct {
	pairs [][2]float32
	next  int
}

func (s *baseSequence) Next() (float32, float32) {
	p := s.pairs[s.next]
	s.next++
	return p[0], p[1]
}

func (s *baseSequence) Len() int { return len(s.pairs) }

// NewRandomSequence draws n (rounded up to the next power-of-two square)
// independent pairs from rng — two 1D draws per call.
func NewRandomSequence(n int, rng *Random) Sequence2D {
	total := NextPowerOfTwoSquare(n)
	pairs := make([][2]float32, total)
	for i := range pairs {
		pairs[i][0], pairs[i][1] = rng.Next2()
	}
	return &baseSequence{pairs: pairs}
}

// NewStratifiedSequence builds a jittered k x k grid, k^2 =
// NextPowerOfTwoSquare(n): sample (x,y) is ((x+u)/k, (y+v)/k) with u,v
// drawn from rng and the result clamped below 1 by one ULP.
func NewStratifiedSequence(n int, rng *Random) Sequence2D {
	total := NextPowerOfTwoSquare(n)
	k := int(math.Sqrt(float64(total)))
	invK := 1.0 / float32(k)
	pairs := make([][2]float32, 0, total)
	for y := 0; y < k; y++ {
		for x := 0; x < k; x++ {
			u, v := rng.Next2()
			sx := minf((float32(x)+u)*invK, 1-eps)
			sy := minf((float32(y)+v)*invK, 1-eps)
			pairs = append(pairs, [2]float32{sx, sy})
		}
	}
	return &baseSequence{pairs: pairs}
}

// NewHaltonSequence builds n (rounded up) pairs using van der Corput
// inverses in base 3 (x) and base 2 (y). Indices start at 1, not 0 — the
// radical inverse of 0 is 0 in every base, which would make the first
// sample of every run identical; starting at 1 yields
// (1/3,1/2), (2/3,1/4), (1/9,3/4), (4/9,1/8), ...
func NewHaltonSequence(n int) Sequence2D {
	total := NextPowerOfTwoSquare(n)
	pairs := make([][2]float32, total)
	for i := range pairs {
		a := uint64(i + 1)
		pairs[i][0] = RadicalInverse(3, a)
		pairs[i][1] = RadicalInverse(2, a)
	}
	return &baseSequence{pairs: pairs}
}

// NewHammersleySequence builds n (rounded up) pairs as (i/total, vdc_2(i)).
func NewHammersleySequence(n int) Sequence2D {
	total := NextPowerOfTwoSquare(n)
	pairs := make([][2]float32, total)
	invTotal := float32(1) / float32(total)
	for i := range pairs {
		pairs[i][0] = float32(i) * invTotal
		pairs[i][1] = RadicalInverse(2, uint64(i))
	}
	return &baseSequence{pairs: pairs}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

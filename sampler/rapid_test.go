package sampler

import (
	"testing"

	"pgregory.net/rapid"

	tmath "terra-go/math"
)

// TestHaltonSampleCountIsAlwaysAPerfectSquare checks that for any
// requested n the sequence produces exactly NextPowerOfTwoSquare(n)
// samples, all inside [0,1)^2.
func TestHaltonSampleCountIsAlwaysAPerfectSquare(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 5000).Draw(rt, "n")
		seq := NewHaltonSequence(n)
		want := NextPowerOfTwoSquare(n)
		if seq.Len() != want {
			rt.Fatalf("Len() = %d, want %d", seq.Len(), want)
		}
		for i := 0; i < seq.Len(); i++ {
			x, y := seq.Next()
			if x < 0 || x >= 1 || y < 0 || y >= 1 {
				rt.Fatalf("sample %d out of [0,1)^2: (%v,%v)", i, x, y)
			}
		}
	})
}

// TestNextPowerOfTwoSquareIsMonotonic checks that rounding a larger request
// up never yields a smaller sample count.
func TestNextPowerOfTwoSquareIsMonotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(1, 10000).Draw(rt, "a")
		b := rapid.IntRange(1, 10000).Draw(rt, "b")
		if a <= b && NextPowerOfTwoSquare(a) > NextPowerOfTwoSquare(b) {
			rt.Fatalf("NextPowerOfTwoSquare(%d)=%d > NextPowerOfTwoSquare(%d)=%d", a, NextPowerOfTwoSquare(a), b, NextPowerOfTwoSquare(b))
		}
	})
}

// TestRandomNextStaysInUnitIntervalUnderAnySeed exercises Random.Next across
// arbitrary worker IDs and clock readings.
func TestRandomNextStaysInUnitIntervalUnderAnySeed(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		workerID := rapid.IntRange(0, 1<<20).Draw(rt, "workerID")
		rng := NewRandom(tmath.NewClock(), workerID)
		for i := 0; i < 64; i++ {
			v := rng.Next()
			if v < 0 || v >= 1 {
				rt.Fatalf("Random.Next() = %v, want [0,1)", v)
			}
		}
	})
}

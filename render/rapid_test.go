package render

import (
	"testing"

	"pgregory.net/rapid"

	"terra-go/core"
)

// TestAccumulateAlwaysIncreasesCountProperty checks that the sample count
// grows monotonically for an arbitrary sequence of accumulated samples.
func TestAccumulateAlwaysIncreasesCountProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		fb, err := NewFramebuffer(4, 4)
		if err != nil {
			rt.Fatal(err)
		}
		n := rapid.IntRange(1, 50).Draw(rt, "n")
		var prevCount uint32
		for i := 0; i < n; i++ {
			r := float32(rapid.Float64Range(0, 10).Draw(rt, "r"))
			fb.Accumulate(2, 2, core.Color{R: r, G: r, B: r, A: 1})
			c := fb.Count(2, 2)
			if c <= prevCount {
				rt.Fatalf("count did not increase: %d <= %d", c, prevCount)
			}
			prevCount = c
		}
	})
}

// Package render implements the tile-parallel dispatcher that walks a
// camera's image plane, invokes an integrator.Estimator per sample, and
// accumulates into a Framebuffer.
package render

import (
	"fmt"

	"terra-go/core"
	"terra-go/scene"
)

// Framebuffer accumulates linear-space radiance sums and per-pixel sample
// counts, and separately holds the display-space plane written at every
// Resolve call.
type Framebuffer struct {
	Width, Height int

	sum     []core.Color
	count   []uint32
	display []core.Color
}

// NewFramebuffer creates a zeroed framebuffer. A zero width or height is
// an error: no partial framebuffer is published.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid framebuffer size %dx%d", width, height)
	}
	n := width * height
	return &Framebuffer{
		Width:   width,
		Height:  height,
		sum:     make([]core.Color, n),
		count:   make([]uint32, n),
		display: make([]core.Color, n),
	}, nil
}

// Clear sets every sum, count, and display pixel back to zero.
func (f *Framebuffer) Clear() {
	for i := range f.sum {
		f.sum[i] = core.Color{}
		f.count[i] = 0
		f.display[i] = core.Color{}
	}
}

func (f *Framebuffer) index(x, y int) int { return y*f.Width + x }

// Accumulate adds one radiance sample into pixel (x,y)'s running sum and
// increments its sample count. Callers must not call this concurrently for
// the same pixel from two goroutines; the dispatcher upholds this by
// partitioning work into disjoint tiles.
func (f *Framebuffer) Accumulate(x, y int, c core.Color) {
	i := f.index(x, y)
	f.sum[i] = f.sum[i].Add(c)
	f.count[i]++
}

// Sum returns the raw accumulated radiance sum at (x,y).
func (f *Framebuffer) Sum(x, y int) core.Color { return f.sum[f.index(x, y)] }

// Count returns the sample count at (x,y).
func (f *Framebuffer) Count(x, y int) uint32 { return f.count[f.index(x, y)] }

// Display returns the last tone-mapped value written at (x,y).
func (f *Framebuffer) Display(x, y int) core.Color { return f.display[f.index(x, y)] }

// Resolve computes `tonemap(exposure * sum/count)` for pixel (x,y),
// writes it to the display plane, and returns it. A pixel with a zero
// sample count reads as tonemap(0).
func (f *Framebuffer) Resolve(x, y int, exposure, gamma float32, op scene.Tonemap) core.Color {
	i := f.index(x, y)
	var avg core.Color
	if f.count[i] > 0 {
		avg = f.sum[i].Scale(1 / float32(f.count[i]))
	}
	exposed := avg.Scale(exposure)
	out := Apply(op, exposed, gamma)
	f.display[i] = out
	return out
}

package integrator

import (
	"terra-go/core"
	tmath "terra-go/math"
	"terra-go/sampler"
	"terra-go/scene"
)

// debugFar is the distance DebugDepth maps to full white: a fixed far
// plane rather than one derived from the scene bounds.
const debugFar = 500

// DebugMono returns flat white on any hit and black on a miss, a
// no-shading silhouette pass.
func DebugMono(sc *scene.Scene, ray tmath.Ray, rng *sampler.Random, bounces int, cameraPos tmath.Vec3) core.Color {
	if _, ok := sc.Raycast(ray); !ok {
		return core.Color{A: 1}
	}
	return core.Color{R: 1, G: 1, B: 1, A: 1}
}

// DebugDepth encodes linear camera-to-hit distance as grayscale,
// normalized against debugFar.
func DebugDepth(sc *scene.Scene, ray tmath.Ray, rng *sampler.Random, bounces int, cameraPos tmath.Vec3) core.Color {
	hit, ok := sc.Raycast(ray)
	if !ok {
		return core.Color{A: 1}
	}
	d := hit.Point.Sub(cameraPos).Length()
	v := clamp01(d / debugFar)
	return core.Color{R: v, G: v, B: v, A: 1}
}

// DebugNormals encodes each shading-normal component as a color
// contribution: a positive component adds to its primary channel
// (X->red, Y->green, Z->blue), a negative component adds its magnitude to
// the complementary secondary color (X->magenta, Y->yellow, Z->cyan); the
// three contributions are summed.
func DebugNormals(sc *scene.Scene, ray tmath.Ray, rng *sampler.Random, bounces int, cameraPos tmath.Vec3) core.Color {
	hit, ok := sc.Raycast(ray)
	if !ok {
		return core.Color{A: 1}
	}
	n := hit.Surface.Normal
	var r, g, b float32
	if n.X >= 0 {
		r += n.X
	} else {
		r += -n.X
		b += -n.X
	}
	if n.Y >= 0 {
		g += n.Y
	} else {
		r += -n.Y
		g += -n.Y
	}
	if n.Z >= 0 {
		b += n.Z
	} else {
		g += -n.Z
		b += -n.Z
	}
	return core.Color{R: r, G: g, B: b, A: 1}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

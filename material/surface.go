package material

import (
	"terra-go/core"
	tmath "terra-go/math"
)

// ShadingSurface is evaluated once per bounce, at every ray hit: it
// carries the geometric and shading normals, the tangent frame built from
// the shading normal, the interpolated uv, and a cache of every material
// attribute already evaluated at that uv so a BSDF never touches a texture
// directly. Lifetime is a single stack-local instance per bounce.
type ShadingSurface struct {
	GeometricNormal tmath.Vec3
	Normal          tmath.Vec3
	UV              tmath.Vec2
	// Transform is the tangent-space-to-world basis whose Y axis equals
	// Normal; every BSDF that samples in tangent space maps through it.
	Transform tmath.Mat4

	Emissive core.Color
	IOR      float32

	// Attrs holds the BSDF's own attributes, evaluated in the slot order
	// the active BSDF documents (see e.g. DiffuseAlbedo, PhongAlbedo).
	Attrs []core.Color

	// Scratch is BSDF-private state threaded from Sample to Pdf/Eval for
	// the same bounce — Glass uses it to carry the chosen reflect/refract
	// branch's Fresnel weight.
	Scratch [2]float32
}

// BSDF is the (sample, pdf, eval) capability triple every material
// carries; the integrator only ever names these three operations. All
// directions are unit world-space vectors; wo points from the surface back
// toward the previous ray segment.
type BSDF interface {
	// Sample draws an incident direction wi. e1,e2 are canonical [0,1)
	// samples for the lobe's geometry; e3 selects among multiple lobes
	// when the BSDF has more than one.
	Sample(surface *ShadingSurface, e1, e2, e3 float32, wo tmath.Vec3) tmath.Vec3
	// Pdf returns the probability density of sampling wi given wo.
	Pdf(surface *ShadingSurface, wi, wo tmath.Vec3) float32
	// Eval returns the BSDF value with no cosine factor — estimators that
	// need n·wi apply it themselves.
	Eval(surface *ShadingSurface, wi, wo tmath.Vec3) core.Color
	// AttributeCount is the number of BSDF-specific attribute slots this
	// BSDF expects on a Material (distinct from the fixed ior/emissive/
	// bump/normal set every material carries).
	AttributeCount() int
}

func cosineWeightedHemisphere(e1, e2 float32) tmath.Vec3 {
	r := sqrtf(e1)
	theta := 2 * math32Pi * e2
	return tmath.Vec3{X: r * cosf(theta), Y: sqrtf(1 - e1), Z: r * sinf(theta)}
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clampf01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

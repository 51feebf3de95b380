package material

import (
	"terra-go/core"
	tmath "terra-go/math"
)

// DiffuseAlbedo is the sole attribute slot a Diffuse BSDF expects.
const DiffuseAlbedo = 0

// Diffuse is a Lambertian BSDF: cosine-weighted hemisphere sampling, a
// constant albedo/π value, and pdf cosθ/π.
type Diffuse struct{}

func (Diffuse) AttributeCount() int { return 1 }

func (Diffuse) Sample(surface *ShadingSurface, e1, e2, e3 float32, wo tmath.Vec3) tmath.Vec3 {
	local := cosineWeightedHemisphere(e1, e2)
	return surface.Transform.MulVec3(local).Normalize()
}

func (Diffuse) Pdf(surface *ShadingSurface, wi, wo tmath.Vec3) float32 {
	cosTheta := maxf32(0, surface.Normal.Dot(wi))
	return cosTheta / math32Pi
}

func (Diffuse) Eval(surface *ShadingSurface, wi, wo tmath.Vec3) core.Color {
	return surface.Attrs[DiffuseAlbedo].Scale(1 / math32Pi)
}

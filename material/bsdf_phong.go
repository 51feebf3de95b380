package material

import (
	"terra-go/core"
	tmath "terra-go/math"
)

// Phong attribute slots: diffuse albedo and specular tint.
const (
	PhongAlbedo        = 0
	PhongSpecularColor = 1
)

// Phong is a two-lobe preset: a Lambertian diffuse lobe plus a
// cosine-power specular lobe whose tightness the exponent controls.
type Phong struct {
	Exponent float32
}

func (Phong) AttributeCount() int { return 2 }

// lobeWeights returns the lobe selection probabilities (kd, ks) from the
// albedo/specular-color channel sums: the heavier lobe takes the
// complement of half the lighter/heavier ratio, so the lighter lobe is
// never starved entirely.
func (Phong) lobeWeights(surface *ShadingSurface) (kd, ks float32) {
	albedo := surface.Attrs[PhongAlbedo]
	spec := surface.Attrs[PhongSpecularColor]
	diffuse := maxf32(albedo.R+albedo.G+albedo.B, 1e-4)
	specular := spec.R + spec.G + spec.B

	if specular > diffuse {
		kd = 0.5 * diffuse / specular
		ks = 1 - kd
	} else {
		ks = 0.5 * specular / diffuse
		kd = 1 - ks
	}
	return kd, ks
}

func (p Phong) Sample(surface *ShadingSurface, e1, e2, e3 float32, wo tmath.Vec3) tmath.Vec3 {
	kd, _ := p.lobeWeights(surface)
	if e3 < kd {
		local := cosineWeightedHemisphere(e1, e2)
		return surface.Transform.MulVec3(local).Normalize()
	}

	theta := acosf(powf(1-e2, 1/(p.Exponent+1)))
	phi := 2 * math32Pi * e1
	sinTheta := sinf(theta)
	local := tmath.Vec3{X: sinTheta * cosf(phi), Y: cosf(theta), Z: sinTheta * sinf(phi)}
	return surface.Transform.MulVec3(local).Normalize()
}

// cosAlpha is the cosine of the angle between wi and wo, shared by the
// pdf and the specular eval term.
func cosAlpha(wi, wo tmath.Vec3) float32 {
	return maxf32(0, wi.Dot(wo))
}

func (p Phong) Pdf(surface *ShadingSurface, wi, wo tmath.Vec3) float32 {
	c := cosAlpha(wi, wo)
	return (p.Exponent + 1) / (2 * math32Pi) * powf(c, p.Exponent)
}

func (p Phong) Eval(surface *ShadingSurface, wi, wo tmath.Vec3) core.Color {
	kd, ks := p.lobeWeights(surface)
	c := cosAlpha(wi, wo)
	diffuse := surface.Attrs[PhongAlbedo].Scale(kd / math32Pi)
	specCoeff := ks * (p.Exponent + 2) / (2 * math32Pi) * powf(c, p.Exponent)
	specular := surface.Attrs[PhongSpecularColor].Scale(specCoeff)
	return diffuse.Add(specular)
}

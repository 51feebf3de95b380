package material

import (
	"terra-go/core"
	tmath "terra-go/math"
)

// RoughDielectric attribute slots: diffuse albedo, roughness, metalness.
const (
	RoughAlbedo    = 0
	RoughRoughness = 1
	RoughMetalness = 2
)

// RoughDielectric combines a Lambertian diffuse lobe with a GGX
// microfacet specular lobe, blended by metalness.
type RoughDielectric struct{}

func (RoughDielectric) AttributeCount() int { return 3 }

func ggxAlpha(roughness float32) float32 {
	r := clampf01(roughness)
	a := r * r
	if a < 1e-4 {
		a = 1e-4
	}
	return a
}

func (RoughDielectric) Sample(surface *ShadingSurface, e1, e2, e3 float32, wo tmath.Vec3) tmath.Vec3 {
	metalness := surface.Attrs[RoughMetalness].R

	if e3 < 1-metalness {
		local := cosineWeightedHemisphere(e1, e2)
		return surface.Transform.MulVec3(local).Normalize()
	}

	alpha := ggxAlpha(surface.Attrs[RoughRoughness].R)
	theta := atanf(alpha * sqrtf(e1) / sqrtf(1-e1))
	phi := 2 * math32Pi * e2
	sinTheta := sinf(theta)
	localH := tmath.Vec3{X: sinTheta * cosf(phi), Y: cosf(theta), Z: sinTheta * sinf(phi)}
	h := surface.Transform.MulVec3(localH).Normalize()

	return wo.Reflect(h).Normalize()
}

// fresnelSchlickF0 computes F0 as a per-channel lerp between the
// dielectric normal-incidence reflectance ((1-ior)/(1+ior))^2 and the
// albedo, driven by metalness.
func fresnelSchlickF0(ior float32, albedo core.Color, metalness float32) core.Color {
	r0 := (1 - ior) / (1 + ior)
	r0 *= r0
	dielectric := core.Color{R: r0, G: r0, B: r0, A: 1}
	return core.Color{
		R: dielectric.R + (albedo.R-dielectric.R)*metalness,
		G: dielectric.G + (albedo.G-dielectric.G)*metalness,
		B: dielectric.B + (albedo.B-dielectric.B)*metalness,
		A: 1,
	}
}

func fresnelSchlick(f0 core.Color, cosTheta float32) core.Color {
	c := clampf01(1 - cosTheta)
	c5 := c * c * c * c * c
	return core.Color{
		R: f0.R + (1-f0.R)*c5,
		G: f0.G + (1-f0.G)*c5,
		B: f0.B + (1-f0.B)*c5,
		A: 1,
	}
}

// ggxD is the GGX normal distribution function.
func ggxD(nDotH, alpha float32) float32 {
	a2 := alpha * alpha
	d := nDotH*nDotH*(a2-1) + 1
	return a2 / (math32Pi * d * d)
}

// ggxG1 is the Smith-GGX masking/shadowing term for a single direction.
func ggxG1(nDotV, alpha float32) float32 {
	a2 := alpha * alpha
	return 2 * nDotV / (nDotV + sqrtf(a2+(1-a2)*nDotV*nDotV))
}

func (RoughDielectric) Pdf(surface *ShadingSurface, wi, wo tmath.Vec3) float32 {
	metalness := surface.Attrs[RoughMetalness].R
	n := surface.Normal

	diffusePdf := maxf32(0, n.Dot(wi)) / math32Pi

	h := wi.Add(wo).Normalize()
	nDotH := maxf32(0, n.Dot(h))
	woDotH := maxf32(1e-4, wo.Dot(h))
	alpha := ggxAlpha(surface.Attrs[RoughRoughness].R)
	specPdf := ggxD(nDotH, alpha) * nDotH / (4 * woDotH)

	return (1-metalness)*diffusePdf + metalness*specPdf
}

func (RoughDielectric) Eval(surface *ShadingSurface, wi, wo tmath.Vec3) core.Color {
	n := surface.Normal
	nDotWi := maxf32(0, n.Dot(wi))
	nDotWo := maxf32(0, n.Dot(wo))
	if nDotWi <= 0 || nDotWo <= 0 {
		return core.Color{}
	}

	albedo := surface.Attrs[RoughAlbedo]
	roughness := surface.Attrs[RoughRoughness].R
	metalness := surface.Attrs[RoughMetalness].R
	alpha := ggxAlpha(roughness)

	h := wi.Add(wo).Normalize()
	nDotH := maxf32(0, n.Dot(h))
	woDotH := maxf32(0, wo.Dot(h))

	f0 := fresnelSchlickF0(surface.IOR, albedo, metalness)
	fr := fresnelSchlick(f0, woDotH)
	d := ggxD(nDotH, alpha)
	g := ggxG1(nDotWi, alpha) * ggxG1(nDotWo, alpha)

	specDenom := 4 * nDotWi * nDotWo
	spec := core.Color{
		R: d * g * fr.R / specDenom,
		G: d * g * fr.G / specDenom,
		B: d * g * fr.B / specDenom,
		A: 1,
	}

	diffuse := albedo.Scale((1 - metalness) / math32Pi)
	return diffuse.Add(spec)
}

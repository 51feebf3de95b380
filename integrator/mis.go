package integrator

import (
	"terra-go/core"
	tmath "terra-go/math"
	"terra-go/sampler"
	"terra-go/scene"
)

// DirectMIS combines the next-event-estimation sample and a BSDF-sampled
// light lookup with power-heuristic weights, exponent 2. Both estimators
// express their pdf in solid-angle measure so the heuristic compares like
// with like.
func DirectMIS(sc *scene.Scene, ray tmath.Ray, rng *sampler.Random, bounces int, _ tmath.Vec3) core.Color {
	return trace(sc, ray, rng, bounces, misVertex)
}

func misVertex(sc *scene.Scene, hit scene.Hit, wo tmath.Vec3, bounce int, rng *sampler.Random) core.Color {
	var Lo core.Color
	if bounce == 0 {
		Lo = Lo.Add(hit.Surface.Emissive)
	}
	return Lo.Add(sampleLightMIS(sc, hit, wo, rng)).Add(sampleBSDFMIS(sc, hit, wo, rng))
}

// powerHeuristic is the exponent-2 weighting function: f^2 / (f^2 + g^2).
func powerHeuristic(nf, fPdf, ng, gPdf float32) float32 {
	f := nf * fPdf
	g := ng * gPdf
	if f+g <= 0 {
		return 0
	}
	return (f * f) / (f*f + g*g)
}

// sampleLightMIS is sampleDirectLighting's light-sampling estimator with
// its area-measure pdf converted to solid angle and weighted by the power
// heuristic against the BSDF's pdf for the same direction.
func sampleLightMIS(sc *scene.Scene, hit scene.Hit, wo tmath.Vec3, rng *sampler.Random) core.Color {
	if hit.Object.Material == nil {
		return core.Color{}
	}

	light, pLight := sc.PickLight(rng.Next())
	if light == nil || pLight <= 0 {
		return core.Color{}
	}
	triIdx, area := light.PickTriangle(rng.Next())
	if area <= 0 {
		return core.Color{}
	}
	tri := light.Object().Triangles[triIdx]

	e1, e2 := rng.Next2()
	pointOnLight, _ := sampleTriangle(tri, e1, e2)

	toLight := pointOnLight.Sub(hit.Point)
	dist2 := toLight.LengthSqr()
	if dist2 <= 0 {
		return core.Color{}
	}
	wi := toLight.Mul(1 / sqrtf32(dist2))

	shadowRay := offsetRay(hit.Point, wi, hit.Surface.Normal)
	next, ok := sc.Raycast(shadowRay)
	if !ok || next.Object != light.Object() {
		return core.Color{}
	}

	cosLight := triangleNormal(light.Object().Triangles[next.TriangleIndex]).Dot(wi.Negate())
	if cosLight <= 0 {
		return core.Color{}
	}
	hitArea := light.TriangleAreas[next.TriangleIndex]
	if hitArea <= 0 {
		return core.Color{}
	}

	bsdf := hit.Object.Material.BSDF
	f := bsdf.Eval(&hit.Surface, wi, wo)
	bsdfPdf := bsdf.Pdf(&hit.Surface, wi, wo)
	le := next.Surface.Emissive

	lightPdf := dist2 / (cosLight * hitArea) * pLight
	if lightPdf <= 0 {
		return core.Color{}
	}
	weight := powerHeuristic(1, lightPdf, 1, bsdfPdf)
	cosSurface := maxf32(0, hit.Surface.Normal.Dot(wi))

	return f.Mul(le).Scale(weight * cosSurface / lightPdf)
}

// sampleBSDFMIS draws a direction from the surface's own BSDF, and if it
// lands on an emissive object, contributes that emission weighted by the
// power heuristic against the equivalent light-sampling pdf. A sample that
// misses every light contributes zero.
func sampleBSDFMIS(sc *scene.Scene, hit scene.Hit, wo tmath.Vec3, rng *sampler.Random) core.Color {
	if hit.Object.Material == nil {
		return core.Color{}
	}
	bsdf := hit.Object.Material.BSDF

	e1, e2 := rng.Next2()
	e3 := rng.Next()
	wi := bsdf.Sample(&hit.Surface, e1, e2, e3, wo)

	bsdfPdf := bsdf.Pdf(&hit.Surface, wi, wo)
	if bsdfPdf < epsPdf {
		return core.Color{}
	}

	ray := offsetRay(hit.Point, wi, hit.Surface.Normal)
	next, ok := sc.Raycast(ray)
	if !ok || next.Object.Material == nil || next.Surface.Emissive.IsBlack() {
		return core.Color{}
	}

	light := findLight(sc, next.Object)
	if light == nil {
		return core.Color{}
	}

	cosLight := next.Surface.Normal.Dot(wi.Negate())
	if cosLight <= 0 {
		return core.Color{}
	}
	dist2 := next.Point.Sub(hit.Point).LengthSqr()
	area := light.TriangleAreas[next.TriangleIndex]
	if dist2 <= 0 || area <= 0 {
		return core.Color{}
	}

	pLight := float32(1) / float32(len(sc.Lights()))
	lightPdf := dist2 / (cosLight * area) * pLight
	weight := powerHeuristic(1, bsdfPdf, 1, lightPdf)

	f := bsdf.Eval(&hit.Surface, wi, wo)
	cosSurface := maxf32(0, hit.Surface.Normal.Dot(wi))

	return f.Mul(next.Surface.Emissive).Scale(weight * cosSurface / bsdfPdf)
}

func findLight(sc *scene.Scene, obj *scene.Object) *scene.Light {
	lights := sc.Lights()
	for i := range lights {
		if lights[i].Object() == obj {
			return &lights[i]
		}
	}
	return nil
}

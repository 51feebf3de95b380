package integrator

import (
	"math"

	"terra-go/core"
	"terra-go/geometry"
	tmath "terra-go/math"
	"terra-go/sampler"
	"terra-go/scene"
)

// Direct adds emissive on the primary vertex and a single next-event
// estimation sample at every vertex.
func Direct(sc *scene.Scene, ray tmath.Ray, rng *sampler.Random, bounces int, _ tmath.Vec3) core.Color {
	return trace(sc, ray, rng, bounces, directVertex)
}

func directVertex(sc *scene.Scene, hit scene.Hit, wo tmath.Vec3, bounce int, rng *sampler.Random) core.Color {
	var Lo core.Color
	if bounce == 0 {
		Lo = Lo.Add(hit.Surface.Emissive)
	}
	return Lo.Add(sampleDirectLighting(sc, hit, wo, rng))
}

// sampleTriangle draws a uniform point on a triangle via the standard
// square-root barycentric parametrization.
func sampleTriangle(tri geometry.Triangle, e1, e2 float32) (point, normal tmath.Vec3) {
	su := sqrtf32(e1)
	b0 := 1 - su
	b1 := e2 * su
	point = tri.A.Mul(b0).Add(tri.B.Mul(b1)).Add(tri.C.Mul(1 - b0 - b1))
	return point, triangleNormal(tri)
}

func triangleNormal(tri geometry.Triangle) tmath.Vec3 {
	return tri.B.Sub(tri.A).Cross(tri.C.Sub(tri.A)).Normalize()
}

// sampleDirectLighting is the next-event-estimation term: pick a light
// uniformly, pick one of its triangles uniformly, sample a point on that
// triangle uniformly, and cast a shadow ray toward it. The estimator only
// counts if the shadow ray actually terminates on the chosen light's
// object; the contribution is f*Le divided by the solid-angle pdf
// d^2*p_light/(|cos_l|*A_tri) of having sampled that direction.
func sampleDirectLighting(sc *scene.Scene, hit scene.Hit, wo tmath.Vec3, rng *sampler.Random) core.Color {
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

	// cos_l is measured at the triangle the shadow ray actually landed on,
	// facing back toward the shading point.
	lightNormal := triangleNormal(light.Object().Triangles[next.TriangleIndex])
	cosLight := lightNormal.Dot(wi.Negate())
	if cosLight <= 0 {
		return core.Color{}
	}
	hitArea := light.TriangleAreas[next.TriangleIndex]
	if hitArea <= 0 {
		return core.Color{}
	}

	f := hit.Object.Material.BSDF.Eval(&hit.Surface, wi, wo)
	le := next.Surface.Emissive

	pdf := dist2 / absf32(cosLight*hitArea) * pLight
	if pdf <= 0 {
		return core.Color{}
	}
	return f.Mul(le).Scale(1 / pdf)
}

func sqrtf32(v float32) float32 {
	if v <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(v)))
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Package integrator implements the radiance estimators: the shared
// iterative path-tracing loop plus the simple, direct, direct+MIS and
// debug variants that plug a per-vertex contribution into it.
package integrator

import (
	"terra-go/core"
	tmath "terra-go/math"
	"terra-go/sampler"
	"terra-go/scene"
)

// epsPdf is the pdf floor: the trace loop clamps bsdf.Pdf() up to it
// before dividing, and the MIS BSDF-sampling step discards samples whose
// pdf falls below it, absorbing numeric degeneracy locally instead of
// propagating it.
const epsPdf = 1e-4

// rayBias is the offset applied along the shading normal to the next
// bounce's ray origin.
const rayBias = 1e-3

// farT is used as the effectively-unbounded tmax for every ray the
// integrator casts; no scene this renderer targets is larger.
const farT = 1e8

// Estimator computes the radiance Lo arriving back along a primary ray.
// Every built-in variant below satisfies this signature.
type Estimator func(sc *scene.Scene, ray tmath.Ray, rng *sampler.Random, bounces int, cameraPos tmath.Vec3) core.Color

// vertexFn computes the variant-specific per-vertex contribution at a
// hit, called once per bounce from the shared trace loop.
type vertexFn func(sc *scene.Scene, hit scene.Hit, wo tmath.Vec3, bounce int, rng *sampler.Random) core.Color

// Simple is pure path tracing: emissive reaches the camera only through
// the implicit BSDF sampling chain.
func Simple(sc *scene.Scene, ray tmath.Ray, rng *sampler.Random, bounces int, _ tmath.Vec3) core.Color {
	return trace(sc, ray, rng, bounces, simpleVertex)
}

func simpleVertex(sc *scene.Scene, hit scene.Hit, wo tmath.Vec3, bounce int, rng *sampler.Random) core.Color {
	return hit.Surface.Emissive
}

// trace runs the shared estimator loop. It is written iteratively with an
// explicit running throughput, never as recursion, so Russian roulette and
// the per-bounce vertex call compose correctly.
func trace(sc *scene.Scene, ray tmath.Ray, rng *sampler.Random, maxBounces int, vertex vertexFn) core.Color {
	var Lo core.Color
	beta := core.Color{R: 1, G: 1, B: 1, A: 1}

	for bounce := 0; bounce <= maxBounces; bounce++ {
		hit, ok := sc.Raycast(ray)
		if !ok {
			env := sc.Environment(ray.Direction)
			Lo = Lo.Add(beta.Mul(env))
			break
		}

		wo := ray.Direction.Negate()
		Lo = Lo.Add(beta.Mul(vertex(sc, hit, wo, bounce, rng)).Finite())

		if hit.Object.Material == nil {
			break
		}
		bsdf := hit.Object.Material.BSDF

		e1, e2 := rng.Next2()
		e3 := rng.Next()
		wi := bsdf.Sample(&hit.Surface, e1, e2, e3, wo)

		p := bsdf.Pdf(&hit.Surface, wi, wo)
		if p < epsPdf {
			p = epsPdf
		}
		// Throughput carries f/p with no cosine term; the per-vertex
		// estimators that need n.wi (direct, MIS) apply it themselves.
		f := bsdf.Eval(&hit.Surface, wi, wo)
		beta = beta.Mul(f.Scale(1 / p)).Finite()

		q := beta.MaxComponent()
		if rng.Next() > q {
			break
		}
		if q > 0 {
			beta = beta.Scale(1 / q)
		} else {
			break
		}

		ray = offsetRay(hit.Point, wi, hit.Surface.Normal)
	}

	return Lo
}

// offsetRay nudges the next bounce's origin along the shading normal,
// toward whichever side wi actually points into, so the new ray does not
// immediately re-intersect the surface it was spawned from.
func offsetRay(point, wi, normal tmath.Vec3) tmath.Ray {
	offset := normal
	if wi.Dot(normal) < 0 {
		offset = normal.Negate()
	}
	origin := point.Add(offset.Mul(rayBias))
	return tmath.NewRay(origin, wi, 0, farT)
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

package geometry

import (
	"testing"

	"pgregory.net/rapid"

	tmath "terra-go/math"
)

func vec3Gen(lo, hi float64) *rapid.Generator[tmath.Vec3] {
	return rapid.Custom(func(rt *rapid.T) tmath.Vec3 {
		return tmath.Vec3{
			X: float32(rapid.Float64Range(lo, hi).Draw(rt, "x")),
			Y: float32(rapid.Float64Range(lo, hi).Draw(rt, "y")),
			Z: float32(rapid.Float64Range(lo, hi).Draw(rt, "z")),
		}
	})
}

// TestRayTriangleHitPointMatchesParametricPosition checks that whenever
// RayTriangle reports a hit at point p, p equals origin + t*direction
// within 1e-3.
func TestRayTriangleHitPointMatchesParametricPosition(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tri := Triangle{
			A: vec3Gen(-5, 5).Draw(rt, "a"),
			B: vec3Gen(-5, 5).Draw(rt, "b"),
			C: vec3Gen(-5, 5).Draw(rt, "c"),
		}
		origin := vec3Gen(-10, 10).Draw(rt, "origin")
		dir := vec3Gen(-1, 1).Draw(rt, "dir").Normalize()
		if dir.LengthSqr() < 1e-6 {
			dir = tmath.Vec3Front
		}
		ray := tmath.NewRay(origin, dir, 0, 1000)

		hit, ok := RayTriangle(ray, tri)
		if !ok {
			return
		}
		expected := ray.At(hit.T)
		if hit.Point.Sub(expected).Length() >= 1e-3 {
			rt.Fatalf("hit point %v does not match parametric position %v", hit.Point, expected)
		}
	})
}

// TestRayAABBGrazingFaceIsAccepted checks that a ray entering exactly on
// an AABB face is reported as a hit.
func TestRayAABBGrazingFaceIsAccepted(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		half := float32(rapid.Float64Range(0.1, 10).Draw(rt, "half"))
		box := tmath.AABB{Min: tmath.NewVec3(-half, -half, -half), Max: tmath.NewVec3(half, half, half)}

		// Strictly inside the face: an origin exactly on a perpendicular
		// slab boundary hits the 0*Inf degeneracy of the
		// reciprocal-direction slab test and is not a graze.
		inner := float64(half) * 0.99
		y := float32(rapid.Float64Range(-inner, inner).Draw(rt, "y"))
		z := float32(rapid.Float64Range(-inner, inner).Draw(rt, "z"))
		ray := tmath.NewRay(tmath.NewVec3(-half, y, z), tmath.Vec3Right, 0, 1000)

		if _, _, hit := RayAABB(ray, box); !hit {
			rt.Fatalf("expected a grazing hit on the -X face at y=%v z=%v", y, z)
		}
	})
}

package geometry

import (
	"math"
	"testing"

	tmath "terra-go/math"
)

func TestRayTriangleHitsCenter(t *testing.T) {
	tri := Triangle{
		A: tmath.NewVec3(-1, -1, 0),
		B: tmath.NewVec3(1, -1, 0),
		C: tmath.NewVec3(0, 1, 0),
	}
	ray := tmath.NewRay(tmath.NewVec3(0, 0, -5), tmath.Vec3Front, 0, 1000)

	hit, ok := RayTriangle(ray, tri)
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(float64(hit.T-5)) > 1e-4 {
		t.Errorf("expected t=5, got %v", hit.T)
	}
}

func TestRayTriangleMisses(t *testing.T) {
	tri := Triangle{
		A: tmath.NewVec3(-1, -1, 0),
		B: tmath.NewVec3(1, -1, 0),
		C: tmath.NewVec3(0, 1, 0),
	}
	ray := tmath.NewRay(tmath.NewVec3(10, 10, -5), tmath.Vec3Front, 0, 1000)
	if _, ok := RayTriangle(ray, tri); ok {
		t.Error("expected a miss")
	}
}

func TestRayTriangleWoopAgreesWithMollerTrumbore(t *testing.T) {
	tri := Triangle{
		A: tmath.NewVec3(-1, -1, 0),
		B: tmath.NewVec3(1, -1, 0),
		C: tmath.NewVec3(0.25, 1, 0),
	}
	ray := tmath.NewRay(tmath.NewVec3(0.1, 0, -5), tmath.Vec3Front, 0, 1000)

	want, ok1 := RayTriangle(ray, tri)
	got, ok2 := RayTriangleWoop(ray, tri)
	if ok1 != ok2 {
		t.Fatalf("hit mismatch: moller=%v woop=%v", ok1, ok2)
	}
	if ok1 && math.Abs(float64(want.T-got.T)) > 1e-3 {
		t.Errorf("t mismatch: moller=%v woop=%v", want.T, got.T)
	}
}

func TestRayAABBReliesOnInfiniteReciprocal(t *testing.T) {
	box := tmath.AABB{Min: tmath.NewVec3(-1, -1, -1), Max: tmath.NewVec3(1, 1, 1)}
	// Direction has a zero X component: inverse is +Inf, which must not
	// special-cased away for the slab test to stay correct.
	ray := tmath.NewRay(tmath.NewVec3(0, 0, -5), tmath.NewVec3(0, 0, 1), 0, 1000)

	_, _, hit := RayAABB(ray, box)
	if !hit {
		t.Error("expected a hit through the box center along +Z")
	}
}

func TestRayAABBMissesParallelOffset(t *testing.T) {
	box := tmath.AABB{Min: tmath.NewVec3(-1, -1, -1), Max: tmath.NewVec3(1, 1, 1)}
	ray := tmath.NewRay(tmath.NewVec3(5, 0, -5), tmath.NewVec3(0, 0, 1), 0, 1000)

	if _, _, hit := RayAABB(ray, box); hit {
		t.Error("expected a miss: ray travels parallel to the box, offset in X")
	}
}

func TestRayAABBUnitCubeFromPositiveX(t *testing.T) {
	box := tmath.AABB{Min: tmath.NewVec3(-1, -1, -1), Max: tmath.NewVec3(1, 1, 1)}
	ray := tmath.NewRay(tmath.NewVec3(2, 0, 0), tmath.NewVec3(-1, 0, 0), 0, 1000)

	tmin, _, hit := RayAABB(ray, box)
	if !hit {
		t.Fatal("expected a hit")
	}
	if math.Abs(float64(tmin-1)) > 1e-6 {
		t.Errorf("expected tmin=1, got %v", tmin)
	}
}

func TestRayAABBCornerGrazeIsAccepted(t *testing.T) {
	// The entry and exit intervals meet at exactly one parameter value
	// where the ray touches the corner (0,1,0.5): tmin == tmax must still
	// count as a hit.
	box := tmath.AABB{Min: tmath.NewVec3(0, 0, 0), Max: tmath.NewVec3(1, 1, 1)}
	ray := tmath.NewRay(tmath.NewVec3(-1, 0, 0.5), tmath.NewVec3(1, 1, 0).Normalize(), 0, 1000)

	tmin, tmax, hit := RayAABB(ray, box)
	if !hit {
		t.Fatal("expected a grazing corner hit")
	}
	if math.Abs(float64(tmax-tmin)) > 1e-5 {
		t.Errorf("expected a degenerate interval at the corner, got [%v,%v]", tmin, tmax)
	}
}

func TestAABBFitTrianglePad(t *testing.T) {
	tri := Triangle{A: tmath.NewVec3(0, 0, 0), B: tmath.NewVec3(1, 0, 0), C: tmath.NewVec3(0, 1, 0)}
	box := AABBFitTriangle(tri)
	if box.Max.Z-box.Min.Z <= 0 {
		t.Error("expected planar triangle's degenerate axis to be padded to nonzero thickness")
	}
}

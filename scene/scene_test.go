package scene

import (
	"math"
	"testing"

	"terra-go/core"
	"terra-go/geometry"
	"terra-go/material"
	tmath "terra-go/math"
)

func addTriangleObject(s *Scene, a, b, c tmath.Vec3, mat *material.Material) *Object {
	obj := s.AddObject(1)
	obj.Triangles[0] = geometry.Triangle{A: a, B: b, C: c}
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	obj.Properties[0] = TriangleProperties{
		Normals: [3]tmath.Vec3{n, n, n},
		UVs:     [3]tmath.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
	}
	obj.Material = mat
	return obj
}

func TestCommitBuildsBVHAndRaycastFindsHit(t *testing.T) {
	s := New()
	mat := material.New(material.Diffuse{})
	mat.SetAttr(material.DiffuseAlbedo, material.ConstantAttribute(core.Color{R: 1, G: 1, B: 1, A: 1}))
	addTriangleObject(s, tmath.NewVec3(-10, -10, 0), tmath.NewVec3(10, -10, 0), tmath.NewVec3(0, 10, 0), mat)
	s.Commit()

	ray := tmath.NewRay(tmath.NewVec3(0, 0, -5), tmath.Vec3Front, 0, 1000)
	hit, ok := s.Raycast(ray)
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(float64(hit.Point.Z)) > 1e-3 {
		t.Errorf("expected hit near z=0, got %v", hit.Point)
	}
	if len(hit.Surface.Attrs) != 1 || hit.Surface.Attrs[0].R != 1 {
		t.Errorf("expected evaluated albedo attribute, got %v", hit.Surface.Attrs)
	}
}

func TestCommitTwiceWithNoChangesIsStable(t *testing.T) {
	s := New()
	addTriangleObject(s, tmath.NewVec3(-1, -1, 0), tmath.NewVec3(1, -1, 0), tmath.NewVec3(0, 1, 0), material.New(material.Diffuse{}))
	s.Commit()
	firstCount := len(s.lights)
	s.Commit()
	if len(s.lights) != firstCount {
		t.Errorf("expected stable light count across idempotent commits, got %d then %d", firstCount, len(s.lights))
	}
}

func TestRebuildLightsCollectsEmissiveObjectsOnly(t *testing.T) {
	s := New()
	emissiveMat := material.New(material.Diffuse{})
	emissiveMat.SetEmissive(material.ConstantAttribute(core.Color{R: 2, G: 2, B: 2, A: 1}))
	addTriangleObject(s, tmath.NewVec3(-1, -1, 5), tmath.NewVec3(1, -1, 5), tmath.NewVec3(0, 1, 5), emissiveMat)

	darkMat := material.New(material.Diffuse{})
	addTriangleObject(s, tmath.NewVec3(-1, -1, 0), tmath.NewVec3(1, -1, 0), tmath.NewVec3(0, 1, 0), darkMat)

	s.Commit()

	if len(s.lights) != 1 {
		t.Fatalf("expected exactly one light, got %d", len(s.lights))
	}
	if s.TotalPower() <= 0 {
		t.Errorf("expected positive total power, got %v", s.TotalPower())
	}
}

func TestPickLightIsUniform(t *testing.T) {
	s := New()
	for i := 0; i < 3; i++ {
		mat := material.New(material.Diffuse{})
		mat.SetEmissive(material.ConstantAttribute(core.Color{R: 1, G: 1, B: 1, A: 1}))
		z := float32(i) * 10
		addTriangleObject(s, tmath.NewVec3(-1, -1, z), tmath.NewVec3(1, -1, z), tmath.NewVec3(0, 1, z), mat)
	}
	s.Commit()

	_, pdf := s.PickLight(0.5)
	want := float32(1.0 / 3.0)
	if math.Abs(float64(pdf-want)) > 1e-6 {
		t.Errorf("PickLight pdf = %v, want %v", pdf, want)
	}
}

func TestPowerDistributionSumsToTotalPower(t *testing.T) {
	lights := []Light{{Power: 1}, {Power: 3}, {Power: 6}}
	d := buildPowerDistribution(lights)
	if d.total != 10 {
		t.Fatalf("expected total power 10, got %v", d.total)
	}
	idx, pdf := d.sample(0.95)
	if idx != 2 {
		t.Errorf("expected the heaviest light at high e, got index %d", idx)
	}
	if math.Abs(float64(pdf-0.6)) > 1e-6 {
		t.Errorf("expected pdf 0.6 for the heaviest light, got %v", pdf)
	}
}

func TestRaycastMissReturnsFalse(t *testing.T) {
	s := New()
	addTriangleObject(s, tmath.NewVec3(-1, -1, 5), tmath.NewVec3(1, -1, 5), tmath.NewVec3(0, 1, 5), material.New(material.Diffuse{}))
	s.Commit()

	ray := tmath.NewRay(tmath.NewVec3(100, 100, -5), tmath.Vec3Front, 0, 1000)
	if _, ok := s.Raycast(ray); ok {
		t.Error("expected a miss far from any geometry")
	}
}

package math

import (
	"math"
	"testing"
)

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	// Addition
	result := v1.Add(v2)
	expected := NewVec3(5, 7, 9)
	if result != expected {
		t.Errorf("Add: expected %v, got %v", expected, result)
	}

	// Subtraction
	result = v2.Sub(v1)
	expected = NewVec3(3, 3, 3)
	if result != expected {
		t.Errorf("Sub: expected %v, got %v", expected, result)
	}

	// Scalar multiplication
	result = v1.Mul(2)
	expected = NewVec3(2, 4, 6)
	if result != expected {
		t.Errorf("Mul: expected %v, got %v", expected, result)
	}

	// Dot product
	dot := v1.Dot(v2)
	expectedDot := float32(32) // 1*4 + 2*5 + 3*6
	if dot != expectedDot {
		t.Errorf("Dot: expected %v, got %v", expectedDot, dot)
	}

	// Cross product (Right x Up = Front in right-handed system)
	cross := Vec3Right.Cross(Vec3Up)
	if cross != Vec3Front {
		t.Errorf("Cross: expected %v, got %v", Vec3Front, cross)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 0)
	normalized := v.Normalize()
	expected := NewVec3(1, 0, 0)

	if normalized != expected {
		t.Errorf("Normalize: expected %v, got %v", expected, normalized)
	}

	length := normalized.Length()
	if math.Abs(float64(length-1)) > 0.0001 {
		t.Errorf("Normalize: expected length 1, got %v", length)
	}
}

func TestVec3Reflect(t *testing.T) {
	wo := NewVec3(0, 1, 1).Normalize()
	n := Vec3Up
	wi := wo.Reflect(n)

	if math.Abs(float64(wi.Y-wo.Y)) > 0.0001 || math.Abs(float64(wi.Z+wo.Z)) > 0.0001 {
		t.Errorf("Reflect: expected mirrored Z, got %v", wi)
	}
}

func TestVec3Refract(t *testing.T) {
	// Straight-on incidence should pass through unbent.
	d := Vec3Down // points into the surface along -Y
	n := Vec3Up
	refracted, ok := d.Refract(n, 1.0/1.5)
	if !ok {
		t.Fatal("Refract: expected no TIR at normal incidence")
	}
	if math.Abs(float64(refracted.X)) > 0.0001 || math.Abs(float64(refracted.Z)) > 0.0001 {
		t.Errorf("Refract: expected no lateral bend at normal incidence, got %v", refracted)
	}
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()

	for i := 0; i < 4; i++ {
		if m[i][i] != 1 {
			t.Errorf("Identity: expected diagonal to be 1, got %v", m[i][i])
		}
	}

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i != j && m[i][j] != 0 {
				t.Errorf("Identity: expected non-diagonal to be 0, got %v", m[i][j])
			}
		}
	}
}

func TestMat4Multiplication(t *testing.T) {
	m1 := Mat4Identity()
	m2 := Mat4Identity()

	result := m1.Mul(m2)

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := float32(0)
			if i == j {
				expected = 1
			}
			if result[i][j] != expected {
				t.Errorf("Mul: expected [%d][%d] = %v, got %v", i, j, expected, result[i][j])
			}
		}
	}
}

func TestBuildTangentFrameYAxisIsNormal(t *testing.T) {
	normals := []Vec3{Vec3Up, Vec3Right, Vec3Front, NewVec3(1, 1, 1).Normalize(), NewVec3(0, -1, 0)}
	for _, n := range normals {
		frame := BuildTangentFrame(n)
		world := frame.MulVec3(Vec3Up)
		if dist(world, n) > 0.0005 {
			t.Errorf("BuildTangentFrame(%v): Y axis mapped to %v, want %v", n, world, n)
		}
	}
}

func TestBuildTangentFrameOrthonormal(t *testing.T) {
	n := NewVec3(0.267, 0.535, 0.802).Normalize()
	frame := BuildTangentFrame(n)
	tangent := frame.MulVec3(Vec3Right)
	bitangent := frame.MulVec3(Vec3Front)

	if math.Abs(float64(tangent.Dot(n))) > 0.0005 {
		t.Errorf("tangent not orthogonal to normal: dot=%v", tangent.Dot(n))
	}
	if math.Abs(float64(bitangent.Dot(n))) > 0.0005 {
		t.Errorf("bitangent not orthogonal to normal: dot=%v", bitangent.Dot(n))
	}
	if math.Abs(float64(tangent.Dot(bitangent))) > 0.0005 {
		t.Errorf("tangent not orthogonal to bitangent: dot=%v", tangent.Dot(bitangent))
	}
	if math.Abs(float64(tangent.Length()-1)) > 0.0005 {
		t.Errorf("tangent not unit length: %v", tangent.Length())
	}
}

func TestRayAt(t *testing.T) {
	r := NewRay(Vec3Zero, Vec3Right, 0, 1000)
	p := r.At(3)
	if p != NewVec3(3, 0, 0) {
		t.Errorf("Ray.At: expected (3,0,0), got %v", p)
	}
}

func TestAABBGrowAndSurfaceArea(t *testing.T) {
	box := EmptyAABB()
	box = box.Grow(NewVec3(-1, -1, -1))
	box = box.Grow(NewVec3(1, 1, 1))

	if box.Min != NewVec3(-1, -1, -1) || box.Max != NewVec3(1, 1, 1) {
		t.Errorf("Grow: expected unit cube bounds, got min=%v max=%v", box.Min, box.Max)
	}

	area := box.SurfaceArea()
	if math.Abs(float64(area-24)) > 0.0001 {
		t.Errorf("SurfaceArea: expected 24, got %v", area)
	}
}

func dist(a, b Vec3) float32 {
	return a.Sub(b).Length()
}

func BenchmarkVec3Add(b *testing.B) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	for i := 0; i < b.N; i++ {
		_ = v1.Add(v2)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4Identity()
	m2 := Mat4Identity()

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}

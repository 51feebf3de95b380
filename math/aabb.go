package math

// Eps is the general-purpose epsilon geometry.AABBFitTriangle pads
// triangle bounds by, so that flat triangles never yield degenerate boxes.
const Eps = 1e-4

// AABB is an axis-aligned bounding box. The zero value is not a valid empty
// box (Min/Max both zero would wrongly include the origin) — use
// EmptyAABB to start an accumulation.
type AABB struct {
	Min, Max Vec3
}

// EmptyAABB returns a box that is degenerate in the "contains nothing" sense:
// any Grow call immediately snaps Min/Max to the first point seen.
func EmptyAABB() AABB {
	const inf = 3.402823466e+38
	return AABB{
		Min: Vec3{X: inf, Y: inf, Z: inf},
		Max: Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// Grow returns the smallest box enclosing both a and p.
func (a AABB) Grow(p Vec3) AABB {
	return AABB{Min: Vec3Min(a.Min, p), Max: Vec3Max(a.Max, p)}
}

// Union returns the smallest box enclosing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{Min: Vec3Min(a.Min, b.Min), Max: Vec3Max(a.Max, b.Max)}
}

// Centroid returns the midpoint of the box.
func (a AABB) Centroid() Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// SurfaceArea returns the total area of the box's six faces, used directly
// by the SAH cost function.
func (a AABB) SurfaceArea() float32 {
	d := a.Max.Sub(a.Min)
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return 0
	}
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// Pad grows the box outward by e on every side, avoiding zero-thickness
// boxes (degenerate planar triangles, single-point scenes).
func (a AABB) Pad(e float32) AABB {
	pad := Vec3{X: e, Y: e, Z: e}
	return AABB{Min: a.Min.Sub(pad), Max: a.Max.Add(pad)}
}

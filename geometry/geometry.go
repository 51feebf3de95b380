// Package geometry holds the primitive ray intersection routines used by
// the BVH build and traversal behind the scene raycast.
package geometry

import tmath "terra-go/math"

// Epsilon is the shared degeneracy/self-intersection threshold for the
// triangle intersection routines.
const Epsilon = 1e-4

// Triangle is a single triangle in world space.
type Triangle struct {
	A, B, C tmath.Vec3
}

// Hit carries the result of a successful ray/triangle intersection.
type Hit struct {
	T      float32
	U, V   float32 // barycentric coordinates of B and C
	Point  tmath.Vec3
	Normal tmath.Vec3
}

// RayAABB implements the standard slab test. It relies on IEEE-754
// semantics for the ray's cached inverse direction: a zero direction
// component produces +/-Inf, which the min/max chain below already handles
// correctly without a special case.
func RayAABB(ray tmath.Ray, box tmath.AABB) (tmin, tmax float32, hit bool) {
	t1 := (box.Min.X - ray.Origin.X) * ray.InvDirection.X
	t2 := (box.Max.X - ray.Origin.X) * ray.InvDirection.X
	tmin = minf(t1, t2)
	tmax = maxf(t1, t2)

	t1 = (box.Min.Y - ray.Origin.Y) * ray.InvDirection.Y
	t2 = (box.Max.Y - ray.Origin.Y) * ray.InvDirection.Y
	tmin = maxf(tmin, minf(t1, t2))
	tmax = minf(tmax, maxf(t1, t2))

	t1 = (box.Min.Z - ray.Origin.Z) * ray.InvDirection.Z
	t2 = (box.Max.Z - ray.Origin.Z) * ray.InvDirection.Z
	tmin = maxf(tmin, minf(t1, t2))
	tmax = minf(tmax, maxf(t1, t2))

	if tmax >= maxf(tmin, 0) {
		return tmin, tmax, true
	}
	return 0, 0, false
}

// RayTriangle implements the Moller-Trumbore algorithm.
func RayTriangle(ray tmath.Ray, tri Triangle) (Hit, bool) {
	e1 := tri.B.Sub(tri.A)
	e2 := tri.C.Sub(tri.A)
	h := ray.Direction.Cross(e2)
	a := e1.Dot(h)

	if a > -Epsilon && a < Epsilon {
		return Hit{}, false
	}

	f := 1 / a
	s := ray.Origin.Sub(tri.A)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return Hit{}, false
	}

	q := s.Cross(e1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return Hit{}, false
	}

	t := f * e2.Dot(q)
	if t <= Epsilon {
		return Hit{}, false
	}

	point := ray.At(t)
	normal := e1.Cross(e2).Normalize()
	return Hit{T: t, U: u, V: v, Point: point, Normal: normal}, true
}

// RayTriangleWoop is the Woop2013 watertight alternative: it transforms
// the ray into a space where it is axis-aligned along +Z before testing
// edge functions, which removes Moller-Trumbore's degenerate cases for
// rays nearly parallel to a triangle edge. Offered as a drop-in
// alternative for bvh.Intersector implementations; Scene raycasts use
// RayTriangle.
func RayTriangleWoop(ray tmath.Ray, tri Triangle) (Hit, bool) {
	kz := dominantAxis(ray.Direction)
	kx := (kz + 1) % 3
	ky := (kz + 2) % 3

	dir := axisSwizzle(ray.Direction, kx, ky, kz)
	if dir.Z < 0 {
		kx, ky = ky, kx
		dir = axisSwizzle(ray.Direction, kx, ky, kz)
	}

	sx := -dir.X / dir.Z
	sy := -dir.Y / dir.Z
	sz := 1 / dir.Z

	a := axisSwizzle(tri.A.Sub(ray.Origin), kx, ky, kz)
	b := axisSwizzle(tri.B.Sub(ray.Origin), kx, ky, kz)
	c := axisSwizzle(tri.C.Sub(ray.Origin), kx, ky, kz)

	a.X += sx * a.Z
	a.Y += sy * a.Z
	b.X += sx * b.Z
	b.Y += sy * b.Z
	c.X += sx * c.Z
	c.Y += sy * c.Z

	u := c.X*b.Y - c.Y*b.X
	v := a.X*c.Y - a.Y*c.X
	w := b.X*a.Y - b.Y*a.X

	if (u < 0 || v < 0 || w < 0) && (u > 0 || v > 0 || w > 0) {
		return Hit{}, false
	}

	det := u + v + w
	if det == 0 {
		return Hit{}, false
	}

	a.Z *= sz
	b.Z *= sz
	c.Z *= sz
	t := u*a.Z + v*b.Z + w*c.Z

	if det < 0 {
		if t >= 0 || t < ray.TMax*det {
			return Hit{}, false
		}
	} else {
		if t <= 0 || t > ray.TMax*det {
			return Hit{}, false
		}
	}

	invDet := 1 / det
	bu := u * invDet
	bv := v * invDet
	tHit := t * invDet
	if tHit <= Epsilon {
		return Hit{}, false
	}

	point := ray.At(tHit)
	normal := tri.B.Sub(tri.A).Cross(tri.C.Sub(tri.A)).Normalize()
	return Hit{T: tHit, U: bu, V: bv, Point: point, Normal: normal}, true
}

// AABBFitTriangle returns the tight bounding box of a triangle, padded by
// AABB's epsilon to avoid degenerate zero-thickness boxes for axis-aligned
// triangles.
func AABBFitTriangle(tri Triangle) tmath.AABB {
	box := tmath.EmptyAABB()
	box = box.Grow(tri.A)
	box = box.Grow(tri.B)
	box = box.Grow(tri.C)
	return box.Pad(tmath.Eps)
}

func dominantAxis(v tmath.Vec3) int {
	ax, ay, az := absf(v.X), absf(v.Y), absf(v.Z)
	if ax > ay && ax > az {
		return 0
	}
	if ay > az {
		return 1
	}
	return 2
}

func axisSwizzle(v tmath.Vec3, x, y, z int) tmath.Vec3 {
	c := [3]float32{v.X, v.Y, v.Z}
	return tmath.Vec3{X: c[x], Y: c[y], Z: c[z]}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

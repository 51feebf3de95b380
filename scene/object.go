package scene

import (
	"terra-go/geometry"
	"terra-go/material"
	tmath "terra-go/math"
)

// TriangleProperties carries the per-vertex shading attributes, kept
// separate from the triangle's positions for cache locality: one vertex
// normal and one uv per vertex.
type TriangleProperties struct {
	Normals [3]tmath.Vec3
	UVs     [3]tmath.Vec2
}

// Object owns a dense array of triangles and a parallel dense array of
// TriangleProperties, plus the one Material every triangle in it shares.
// Scene owns every Object; Object owns its own triangle/property buffers.
type Object struct {
	Triangles  []geometry.Triangle
	Properties []TriangleProperties
	Material   *material.Material
}

// newObject pre-allocates buffers for n triangles with a zero-initialized
// material slot; the caller fills in triangles, properties, and material
// afterward.
func newObject(n int) *Object {
	return &Object{
		Triangles:  make([]geometry.Triangle, n),
		Properties: make([]TriangleProperties, n),
	}
}

// interpolate barycentrically blends the triangle's three vertex normals
// and uvs at barycentric coordinates (u,v) of vertices B,C (A gets weight
// 1-u-v), the convention geometry.Hit reports.
func (p TriangleProperties) interpolate(u, v float32) (normal tmath.Vec3, uv tmath.Vec2) {
	w := 1 - u - v
	normal = p.Normals[0].Mul(w).Add(p.Normals[1].Mul(u)).Add(p.Normals[2].Mul(v)).Normalize()
	uv = tmath.Vec2{
		X: p.UVs[0].X*w + p.UVs[1].X*u + p.UVs[2].X*v,
		Y: p.UVs[0].Y*w + p.UVs[1].Y*u + p.UVs[2].Y*v,
	}
	return normal, uv
}

// triangleArea returns twice-the-area-halved of triangle i — the actual
// surface area of the world-space triangle, used both for light-sampling
// pdfs and emitted-power integration.
func (o *Object) triangleArea(i int) float32 {
	t := o.Triangles[i]
	e1 := t.B.Sub(t.A)
	e2 := t.C.Sub(t.A)
	return e1.Cross(e2).Length() * 0.5
}

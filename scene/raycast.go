package scene

import (
	"terra-go/core"
	"terra-go/geometry"
	"terra-go/material"
	tmath "terra-go/math"
)

// intersector adapts Scene to bvh.Intersector, letting BVH traversal stay
// ignorant of how triangles are actually stored.
type intersector struct {
	objects []*Object
}

func (it intersector) IntersectPrimitive(objectIndex, triangleIndex int, ray tmath.Ray) (geometry.Hit, bool) {
	tri := it.objects[objectIndex].Triangles[triangleIndex]
	hit, ok := geometry.RayTriangle(ray, tri)
	if !ok || hit.T > ray.TMax {
		return geometry.Hit{}, false
	}
	return hit, true
}

// Hit is the result of a successful Raycast: the closest (object, triangle)
// pair, the intersection point, and the fully evaluated shading surface at
// that point.
type Hit struct {
	Object        *Object
	ObjectIndex   int
	TriangleIndex int
	Point         tmath.Vec3
	Surface       material.ShadingSurface
}

// Raycast shifts the ray's origin forward by originBias*direction to avoid
// spawning inside the source surface, invokes the BVH, and on hit fills a
// ShadingSurface by interpolating per-vertex properties barycentrically
// and evaluating every material attribute.
func (s *Scene) Raycast(ray tmath.Ray) (Hit, bool) {
	biased := tmath.NewRay(ray.Origin.Add(ray.Direction.Mul(originBias)), ray.Direction, ray.TMin, ray.TMax)

	if s.tree == nil {
		return Hit{}, false
	}

	geomHit, objectIndex, triangleIndex, found := s.tree.Traverse(biased, intersector{objects: s.objects})
	if !found {
		return Hit{}, false
	}

	obj := s.objects[objectIndex]
	props := obj.Properties[triangleIndex]
	shadingNormal, uv := props.interpolate(geomHit.U, geomHit.V)

	mat := obj.Material
	surface := material.ShadingSurface{
		GeometricNormal: geomHit.Normal,
		Normal:          shadingNormal,
		UV:              uv,
		Transform:       tmath.BuildTangentFrame(shadingNormal),
	}

	if mat != nil {
		surface.Emissive = mat.Emissive.Eval(uv)
		surface.IOR = mat.IOR.Eval(uv).R
		if len(mat.Attr) > 0 {
			surface.Attrs = make([]core.Color, len(mat.Attr))
			for i, a := range mat.Attr {
				surface.Attrs[i] = a.Eval(uv)
			}
		}
	}

	return Hit{
		Object:        obj,
		ObjectIndex:   objectIndex,
		TriangleIndex: triangleIndex,
		Point:         geomHit.Point,
		Surface:       surface,
	}, true
}

// Environment evaluates the scene's environment-map attribute for a miss
// direction.
func (s *Scene) Environment(dir tmath.Vec3) core.Color {
	return s.committed.EnvironmentMap.EvalDirection(dir)
}

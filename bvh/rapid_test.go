package bvh

import (
	"testing"

	"pgregory.net/rapid"

	"terra-go/geometry"
	tmath "terra-go/math"
)

// TestBuildLeafAABBsEncloseTheirPrimitive checks that every leaf's AABB
// encloses the triangle it was built from, and that the root's two child
// boxes together enclose every primitive, for an arbitrary scatter of
// triangles.
func TestBuildLeafAABBsEncloseTheirPrimitive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 40).Draw(rt, "n")
		var prims []Primitive
		for i := 0; i < n; i++ {
			z := float32(rapid.IntRange(-50, 50).Draw(rt, "z"))
			tri := geometry.Triangle{
				A: tmath.NewVec3(-1, -1, z),
				B: tmath.NewVec3(1, -1, z),
				C: tmath.NewVec3(0, 1, z),
			}
			prims = append(prims, Primitive{Box: geometry.AABBFitTriangle(tri), ObjectIndex: 0, TriangleIndex: i})
		}

		tree := Build(prims)
		root := tree.nodes[0].box[0].Union(tree.nodes[0].box[1])
		for i, p := range prims {
			if !boxContains(root, p.Box) {
				rt.Fatalf("root AABB does not enclose primitive %d's box", i)
			}
		}
		for _, nd := range tree.nodes {
			for k := 0; k < 2; k++ {
				if nd.kind[k] != leafType {
					continue
				}
				_, triIdx := UnpackIndex(nd.index[k])
				if !boxContains(nd.box[k], prims[triIdx].Box) {
					rt.Fatalf("leaf AABB does not enclose primitive %d's box", triIdx)
				}
			}
		}
	})
}

func boxContains(outer, inner tmath.AABB) bool {
	return inner.Min.X >= outer.Min.X-1e-3 && inner.Min.Y >= outer.Min.Y-1e-3 && inner.Min.Z >= outer.Min.Z-1e-3 &&
		inner.Max.X <= outer.Max.X+1e-3 && inner.Max.Y <= outer.Max.Y+1e-3 && inner.Max.Z <= outer.Max.Z+1e-3
}

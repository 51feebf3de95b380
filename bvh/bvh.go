// Package bvh builds and traverses a binary bounding volume hierarchy over
// a flat list of triangle primitives using a surface-area-heuristic split.
package bvh

import (
	"sort"

	"terra-go/geometry"
	tmath "terra-go/math"
)

// Intersector is supplied by the caller so the BVH never needs to know how
// a triangle is actually stored or which intersection routine is in use —
// package geometry offers both RayTriangle and the Woop2013 variant as
// drop-in implementations of this single method.
type Intersector interface {
	IntersectPrimitive(objectIndex, triangleIndex int, ray tmath.Ray) (geometry.Hit, bool)
}

// Primitive is one leaf candidate: a triangle's bounding box tagged with
// the (object, triangle) pair that produced it.
type Primitive struct {
	Box           tmath.AABB
	ObjectIndex   int
	TriangleIndex int
}

// PackIndex folds an (object, triangle) pair into a single leaf index:
// the object index occupies the low 8 bits, the triangle index the
// remaining 24. An object count above 256 would silently collide.
func PackIndex(objectIndex, triangleIndex int) uint32 {
	return uint32(objectIndex&0xff) | uint32(triangleIndex)<<8
}

// UnpackIndex reverses PackIndex.
func UnpackIndex(packed uint32) (objectIndex, triangleIndex int) {
	return int(packed & 0xff), int(packed >> 8)
}

const leafType = 1
const internalType = -1

type node struct {
	kind  [2]int8
	box   [2]tmath.AABB
	index [2]uint32
}

// buildTask is one pending split on the iterative build stack.
type buildTask struct {
	start, end int
	nodeIdx    int
	box        tmath.AABB
}

// BVH is a binary tree over triangle primitives, flattened into a node
// slice addressed by index (root is node 0).
type BVH struct {
	nodes []node
}

// Build constructs the hierarchy from primitives using an iterative,
// explicit-stack SAH split. The split axis is fixed to centroid X.
// TODO: evaluate the y and z sort orders as split candidates as well.
func Build(primitives []Primitive) *BVH {
	if len(primitives) == 0 {
		return &BVH{}
	}

	if len(primitives) == 1 {
		// Root with one leaf child; the second slot keeps its zero kind
		// tag and is never visited by traversal.
		v := primitives[0]
		n := node{}
		n.kind[0] = leafType
		n.box[0] = v.Box
		n.index[0] = PackIndex(v.ObjectIndex, v.TriangleIndex)
		return &BVH{nodes: []node{n}}
	}

	volumes := make([]Primitive, len(primitives))
	copy(volumes, primitives)

	sceneBox := tmath.EmptyAABB()
	for _, p := range volumes {
		sceneBox = sceneBox.Union(p.Box)
	}

	b := &BVH{nodes: make([]node, 1, len(volumes)*2)}

	stack := []buildTask{{start: 0, end: len(volumes), nodeIdx: 0, box: sceneBox}}

	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		splitIdx := sahSplit(volumes[t.start:t.end], t.box) + t.start

		stack = assignChild(b, stack, volumes, t.start, splitIdx+1, t.nodeIdx, 0)
		stack = assignChild(b, stack, volumes, splitIdx+1, t.end, t.nodeIdx, 1)
	}

	return b
}

// assignChild fills child slot `slot` (0=left, 1=right) of node nodeIdx with
// either a leaf (single volume in [start,end)) or a fresh internal node
// pushed onto the stack for further splitting, returning the updated stack.
func assignChild(b *BVH, stack []buildTask, volumes []Primitive, start, end, nodeIdx, slot int) []buildTask {
	if end-start == 1 {
		v := volumes[start]
		b.nodes[nodeIdx].kind[slot] = leafType
		b.nodes[nodeIdx].box[slot] = v.Box
		b.nodes[nodeIdx].index[slot] = PackIndex(v.ObjectIndex, v.TriangleIndex)
		return stack
	}

	box := tmath.EmptyAABB()
	for _, v := range volumes[start:end] {
		box = box.Union(v.Box)
	}

	childIdx := len(b.nodes)
	b.nodes[nodeIdx].kind[slot] = internalType
	b.nodes[nodeIdx].box[slot] = box
	b.nodes[nodeIdx].index[slot] = uint32(childIdx)
	b.nodes = append(b.nodes, node{})

	return append(stack, buildTask{start: start, end: end, nodeIdx: childIdx, box: box})
}

// sahSplit sorts volumes by centroid X and returns the index i such that
// splitting into [0,i] | [i+1,n) minimizes the surface-area-heuristic cost,
// with node traversal costed at 0 and a triangle test at 1.
func sahSplit(volumes []Primitive, container tmath.AABB) int {
	sort.Slice(volumes, func(i, j int) bool {
		return volumes[i].Box.Centroid().X < volumes[j].Box.Centroid().X
	})

	n := len(volumes)
	containerArea := container.SurfaceArea()
	if containerArea == 0 {
		containerArea = 3.402823466e+38
	}

	leftArea := make([]float32, n-1)
	rightArea := make([]float32, n-1)

	box := tmath.EmptyAABB()
	for i := 0; i < n-1; i++ {
		box = box.Union(volumes[i].Box)
		leftArea[i] = box.SurfaceArea()
	}

	box = tmath.EmptyAABB()
	for i := n - 1; i > 0; i-- {
		box = box.Union(volumes[i].Box)
		rightArea[i-1] = box.SurfaceArea()
	}

	minCost := float32(3.402823466e+38)
	minIdx := -1
	for i := 0; i < n-1; i++ {
		leftCount := float32(i + 1)
		rightCount := float32(n - i - 1)
		cost := leftCount*leftArea[i]/containerArea + rightCount*rightArea[i]/containerArea
		if cost < minCost {
			minCost = cost
			minIdx = i
		}
	}
	return minIdx
}

// Traverse walks the hierarchy for the closest hit along ray, delegating
// the leaf test to intersector. The explicit stack holds 64 entries, far
// deeper than an SAH-balanced tree ever reaches; an interior child that
// would overflow it is skipped rather than written out of bounds.
func (b *BVH) Traverse(ray tmath.Ray, intersector Intersector) (geometry.Hit, int, int, bool) {
	if len(b.nodes) == 0 {
		return geometry.Hit{}, 0, 0, false
	}

	var queue [64]int
	queue[0] = 0
	queueCount := 1

	minDist := float32(3.402823466e+38)
	var best geometry.Hit
	var bestObject, bestTriangle int
	found := false

	for queueCount > 0 {
		queueCount--
		n := b.nodes[queue[queueCount]]

		for i := 0; i < 2; i++ {
			switch n.kind[i] {
			case internalType:
				if _, _, hit := geometry.RayAABB(ray, n.box[i]); hit {
					if queueCount == len(queue) {
						continue
					}
					queue[queueCount] = int(n.index[i])
					queueCount++
				}
			case leafType:
				objectIdx, triIdx := UnpackIndex(n.index[i])
				if hit, ok := intersector.IntersectPrimitive(objectIdx, triIdx, ray); ok {
					if hit.T < minDist {
						minDist = hit.T
						best = hit
						bestObject = objectIdx
						bestTriangle = triIdx
						found = true
					}
				}
			}
		}
	}

	return best, bestObject, bestTriangle, found
}

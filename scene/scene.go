// Package scene holds the Scene aggregate: objects, lights, the committed
// acceleration structure, and the staging/committed Options pair the
// renderer reads from.
package scene

import (
	"terra-go/bvh"
	"terra-go/core"
	"terra-go/geometry"
	tmath "terra-go/math"
)

// originBias nudges a raycast's origin forward along the ray direction to
// avoid the new ray re-intersecting the surface it was just spawned from.
const originBias = 0.001

// Scene owns every Object and Light and the BVH built over them. Commit
// diffs the staging Options against the last-committed copy and rebuilds
// only what actually needs rebuilding.
type Scene struct {
	objects []*Object
	lights  []Light

	committed Options
	staging   Options

	objectsDirty bool

	tree       *bvh.BVH
	totalPower float32
}

// New creates an empty scene with default options.
func New() *Scene {
	opts := DefaultOptions()
	return &Scene{committed: opts, staging: opts}
}

// AddObject appends a new Object with n pre-allocated triangles and
// properties and a zero-initialized material slot, returning a pointer the
// caller fills in directly. Objects are stored as pointers so this address
// stays valid across further AddObject calls.
func (s *Scene) AddObject(n int) *Object {
	obj := newObject(n)
	s.objects = append(s.objects, obj)
	s.objectsDirty = true
	return obj
}

// CountObjects returns the number of objects currently in the scene.
func (s *Scene) CountObjects() int { return len(s.objects) }

// Options returns the mutable staging options block; changes are only
// observed by the next Commit.
func (s *Scene) Options() *Options { return &s.staging }

// CommittedOptions returns a copy of the options published by the last
// Commit — the stable, read-only view the renderer runs against while a
// caller may be mutating the staging copy for the next commit.
func (s *Scene) CommittedOptions() Options { return s.committed }

// TotalPower returns the scene's total emitted radiant power, integrated at
// the last Commit.
func (s *Scene) TotalPower() float32 { return s.totalPower }

// Lights returns the committed light table.
func (s *Scene) Lights() []Light { return s.lights }

// Clear releases every object and light and resets options to defaults.
func (s *Scene) Clear() {
	s.objects = nil
	s.lights = nil
	s.tree = nil
	s.totalPower = 0
	s.objectsDirty = false
	opts := DefaultOptions()
	s.committed = opts
	s.staging = opts
}

// Commit builds or rebuilds the acceleration structure and the light table
// from the current objects, and publishes the staging options as
// committed. Rebuilding the BVH is unconditional on any object change;
// there is no incremental refit.
func (s *Scene) Commit() {
	s.staging.SubpixelJitter = clampf32(s.staging.SubpixelJitter, 0, 0.5)

	acceleratorChanged := s.staging.Accelerator != s.committed.Accelerator
	if s.objectsDirty || acceleratorChanged || s.tree == nil {
		s.rebuildBVH()
		s.rebuildLights()
		s.objectsDirty = false
	}

	s.committed = s.staging
}

func (s *Scene) rebuildBVH() {
	var prims []bvh.Primitive
	for oi, obj := range s.objects {
		for ti := range obj.Triangles {
			box := geometry.AABBFitTriangle(obj.Triangles[ti])
			prims = append(prims, bvh.Primitive{Box: box, ObjectIndex: oi, TriangleIndex: ti})
		}
	}
	s.tree = bvh.Build(prims)
}

// rebuildLights walks every object and collects those whose emissive
// attribute is non-zero when sampled at uv=(0.5,0.5), caching per-triangle
// areas and integrating total power.
func (s *Scene) rebuildLights() {
	s.lights = s.lights[:0]
	s.totalPower = 0

	for oi, obj := range s.objects {
		if obj.Material == nil {
			continue
		}
		emissive := obj.Material.Emissive.Eval(tmath.Vec2{X: 0.5, Y: 0.5})
		if emissive.R == 0 && emissive.G == 0 && emissive.B == 0 {
			continue
		}

		areas := make([]float32, len(obj.Triangles))
		var total float32
		for i := range obj.Triangles {
			a := obj.triangleArea(i)
			areas[i] = a
			total += a
		}

		power := radiantPower(colorLuminance(emissive), total)
		s.totalPower += power

		s.lights = append(s.lights, Light{
			ObjectIndex:   oi,
			object:        obj,
			TriangleAreas: areas,
			TotalArea:     total,
			Power:         power,
		})
	}
}

func colorLuminance(c core.Color) float32 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

func clampf32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package render

import (
	"math"

	tmath "terra-go/math"
)

// Camera is a pinhole camera: a position, a look direction, an up hint, a
// vertical field of view, and the output resolution the pinhole projection
// is defined against.
type Camera struct {
	Position   tmath.Vec3
	Direction  tmath.Vec3
	Up         tmath.Vec3
	FOVRadians float32
	Width      int
	Height     int
}

// basis is the camera-to-world 3x3 rotation: direction is Z, up x Z
// normalized is X, Z x X is Y.
type basis struct {
	x, y, z tmath.Vec3
}

func (c Camera) basis() basis {
	z := c.Direction.Normalize()
	x := c.Up.Cross(z).Normalize()
	y := z.Cross(x)
	return basis{x: x, y: y, z: z}
}

// PrimaryRay builds the ray through pixel (px,py) jittered by (jx,jy) in
// [-jitter,+jitter]^2.
func (c Camera) PrimaryRay(px, py int, jx, jy float32) tmath.Ray {
	b := c.basis()
	aspect := float32(c.Width) / float32(c.Height)
	tanHalfFOV := float32(math.Tan(float64(c.FOVRadians) / 2))

	u := (2*(float32(px)+0.5+jx)/float32(c.Width) - 1) * aspect * tanHalfFOV
	v := (1 - 2*(float32(py)+0.5+jy)/float32(c.Height)) * tanHalfFOV

	dir := b.x.Mul(u).Add(b.y.Mul(v)).Add(b.z).Normalize()
	return tmath.NewRay(c.Position, dir, 0, 1e8)
}

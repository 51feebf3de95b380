package math

// BuildTangentFrame returns a 4x4 row-vector transform whose second row
// equals n (the shading normal), completed by an arbitrary orthonormal
// tangent/bitangent pair. Transforming a tangent-space direction d by this
// matrix (d.MulMat(frame) / Mat4.MulVec3) maps d's Y axis onto n — this is
// the convention every BSDF's tangent-space sample() relies on.
//
// The basis completion uses the branchless construction from Duff et al.,
// "Building an Orthonormal Basis, Revisited" (JCGT 2017); n is assumed
// unit-length, per the caller contract on every normalize-dependent
// function in this package.
func BuildTangentFrame(n Vec3) Mat4 {
	sign := float32(1)
	if n.Z < 0 {
		sign = -1
	}
	a := -1 / (sign + n.Z)
	b := n.X * n.Y * a
	tangent := Vec3{X: 1 + sign*n.X*n.X*a, Y: sign * b, Z: -sign * n.X}
	bitangent := Vec3{X: b, Y: sign + n.Y*n.Y*a, Z: -n.Y}

	return Mat4{
		{tangent.X, tangent.Y, tangent.Z, 0},
		{n.X, n.Y, n.Z, 0},
		{bitangent.X, bitangent.Y, bitangent.Z, 0},
		{0, 0, 0, 1},
	}
}

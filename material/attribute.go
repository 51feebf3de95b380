// Package material implements shading surfaces, BSDF presets, and the
// textured/constant attribute abstraction materials are built from.
package material

import (
	"terra-go/core"
	tmath "terra-go/math"
	"terra-go/texture"
)

// Attribute is a material input that is either a constant color or sampled
// from a texture map. Scalar inputs (ior, roughness, metalness) ride in
// the R channel of the same type rather than getting a float variant.
type Attribute struct {
	Constant core.Color
	Map      *texture.Map
}

// ConstantAttribute builds an Attribute that ignores uv entirely.
func ConstantAttribute(c core.Color) Attribute {
	return Attribute{Constant: c}
}

// TexturedAttribute builds an Attribute sampled from m at the hit uv.
func TexturedAttribute(m *texture.Map) Attribute {
	return Attribute{Map: m}
}

// Eval resolves the attribute's value at a surface's texture coordinate.
func (a Attribute) Eval(uv tmath.Vec2) core.Color {
	if a.Map == nil {
		return a.Constant
	}
	return a.Map.Sample(uv)
}

// EvalDirection resolves the attribute's value for a 3D direction address
// — the shape an environment map or cubemap attribute is evaluated with.
func (a Attribute) EvalDirection(dir tmath.Vec3) core.Color {
	if a.Map == nil {
		return a.Constant
	}
	return a.Map.SampleDirection(dir)
}

package material

import (
	"terra-go/core"
	"terra-go/texture"
)

// Flags records which optional material attributes (bump map, normal map)
// are present. Scene.Raycast reads neither the flags nor the maps.
type Flags uint8

const (
	HasBumpMap Flags = 1 << iota
	HasNormalMap
)

// Material is a BSDF descriptor plus its attributes: N BSDF-specific
// attributes (sized and ordered per the active BSDF, see e.g.
// DiffuseAlbedo/PhongAlbedo) and the fixed set every material carries
// regardless of BSDF — ior, emissive, bump map, normal map. Every slot
// holds a valid Attribute once New returns; every attribute defaults to a
// constant black except IOR, which defaults to a constant 1.
type Material struct {
	BSDF BSDF
	Attr []Attribute

	IOR      Attribute
	Emissive Attribute

	BumpMap   *texture.Map
	NormalMap *texture.Map
	Flags     Flags
}

// New zero-initializes a material for the given BSDF: every BSDF
// attribute slot defaults to black, IOR defaults to 1 (vacuum/no
// refraction), and emissive defaults to black.
func New(bsdf BSDF) *Material {
	attrs := make([]Attribute, bsdf.AttributeCount())
	for i := range attrs {
		attrs[i] = ConstantAttribute(core.Color{})
	}
	return &Material{
		BSDF:     bsdf,
		Attr:     attrs,
		IOR:      ConstantAttribute(core.Color{R: 1, G: 1, B: 1, A: 1}),
		Emissive: ConstantAttribute(core.Color{}),
	}
}

// SetAttr assigns the BSDF attribute at slot.
func (m *Material) SetAttr(slot int, a Attribute) {
	m.Attr[slot] = a
}

// SetIOR assigns the material's index-of-refraction attribute.
func (m *Material) SetIOR(a Attribute) { m.IOR = a }

// SetEmissive assigns the material's emissive attribute.
func (m *Material) SetEmissive(a Attribute) { m.Emissive = a }

// SetBumpMap assigns a bump map and marks Flags accordingly.
func (m *Material) SetBumpMap(t *texture.Map) {
	m.BumpMap = t
	m.Flags |= HasBumpMap
}

// SetNormalMap assigns a normal map and marks Flags accordingly.
func (m *Material) SetNormalMap(t *texture.Map) {
	m.NormalMap = t
	m.Flags |= HasNormalMap
}

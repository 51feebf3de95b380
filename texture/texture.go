// Package texture implements the filtered texture sampling pipeline: mip
// and rip pyramids built at construction time, sRGB linearisation, the four
// address modes, and the four dispatch-by-flag sampling paths (point,
// bilinear, trilinear, anisotropic, plus the latitude-longitude spherical
// projection used for environment maps).
package texture

import (
	"errors"
	"math"

	"terra-go/core"
	tmath "terra-go/math"
)

// Filter selects which of the sampling paths a Map dispatches to at
// construction time.
type Filter int

const (
	FilterPoint Filter = iota
	FilterBilinear
	FilterTrilinear
	FilterAnisotropic
)

// AddressMode controls how out-of-[0,1] texture coordinates are folded back
// into range before the filter runs.
type AddressMode int

const (
	AddressWrap AddressMode = iota
	AddressMirror
	AddressClamp
)

// SamplerFlags bundles the construction-time sampling choices: which
// filter to use, whether this is a latitude-longitude spherical map, and
// whether the source data is sRGB-encoded and needs linearising before any
// filtering touches it.
type SamplerFlags struct {
	Filter    Filter
	Spherical bool
	SRGB      bool
}

// plane is one level of a mip or rip pyramid: width*height interleaved
// RGBA float32 texels.
type plane struct {
	width, height int
	texels        []core.Color
}

func (p *plane) at(x, y int) core.Color {
	x = clampInt(x, 0, p.width-1)
	y = clampInt(y, 0, p.height-1)
	return p.texels[y*p.width+x]
}

// Map is an immutable, filtered texture built once at construction and
// never mutated afterward — every Sample call is read-only, which is what
// lets many render workers share one Map without locking.
type Map struct {
	flags   SamplerFlags
	address AddressMode
	mips    []plane   // isotropic pyramid; mips[0] is full resolution
	rip     [][]plane // anisotropic pyramid, rip[i][j] has size (w>>i, h>>j)
}

// New builds a Map from LDR (8-bit) pixel data. Components selects how
// many of R,G,B,A are present in data; missing channels are padded (a
// single channel is copied into R, G and B; otherwise a missing G or B is
// 0; alpha defaults to 1) so every texel is stored as four float32
// channels.
func New(data []uint8, width, height, components int, flags SamplerFlags, address AddressMode) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("texture: width and height must be positive")
	}
	if components < 1 || components > 4 {
		return nil, errors.New("texture: components must be in [1,4]")
	}
	if len(data) < width*height*components {
		return nil, errors.New("texture: data shorter than width*height*components")
	}
	texels := make([]core.Color, width*height)
	for i := range texels {
		texels[i] = readLDRTexel(data, i*components, components)
	}
	return build(texels, width, height, flags, address)
}

// NewHDR builds a Map from float32 pixel data, e.g. a decoded
// Radiance/EXR buffer or a latitude-longitude environment map.
func NewHDR(data []float32, width, height, components int, flags SamplerFlags, address AddressMode) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("texture: width and height must be positive")
	}
	if components < 1 || components > 4 {
		return nil, errors.New("texture: components must be in [1,4]")
	}
	if len(data) < width*height*components {
		return nil, errors.New("texture: data shorter than width*height*components")
	}
	texels := make([]core.Color, width*height)
	for i := range texels {
		texels[i] = readHDRTexel(data, i*components, components)
	}
	return build(texels, width, height, flags, address)
}

func readLDRTexel(data []uint8, off, components int) core.Color {
	c := core.Color{A: 1}
	if components >= 1 {
		c.R = float32(data[off]) / 255
	}
	if components >= 2 {
		c.G = float32(data[off+1]) / 255
	}
	if components >= 3 {
		c.B = float32(data[off+2]) / 255
	}
	if components >= 4 {
		c.A = float32(data[off+3]) / 255
	}
	if components == 1 {
		c.G, c.B = c.R, c.R
	}
	return c
}

func readHDRTexel(data []float32, off, components int) core.Color {
	c := core.Color{A: 1}
	if components >= 1 {
		c.R = data[off]
	}
	if components >= 2 {
		c.G = data[off+1]
	}
	if components >= 3 {
		c.B = data[off+2]
	}
	if components >= 4 {
		c.A = data[off+3]
	}
	if components == 1 {
		c.G, c.B = c.R, c.R
	}
	return c
}

func build(texels []core.Color, width, height int, flags SamplerFlags, address AddressMode) (*Map, error) {
	if flags.SRGB {
		for i, c := range texels {
			texels[i] = core.Color{R: srgbToLinear(c.R), G: srgbToLinear(c.G), B: srgbToLinear(c.B), A: c.A}
		}
	}

	m := &Map{flags: flags, address: address}
	mip0 := plane{width: width, height: height, texels: texels}
	m.mips = []plane{mip0}

	if flags.Filter == FilterTrilinear || flags.Filter == FilterAnisotropic {
		levels := int(math.Log2(float64(maxInt(width, height)))) + 1
		cur := mip0
		for l := 1; l < levels; l++ {
			nw, nh := maxInt(cur.width/2, 1), maxInt(cur.height/2, 1)
			cur = downscale(cur, nw, nh)
			m.mips = append(m.mips, cur)
			if nw == 1 && nh == 1 {
				break
			}
		}
	}

	if flags.Filter == FilterAnisotropic {
		lw := log2Floor(width)
		lh := log2Floor(height)
		m.rip = make([][]plane, lw+1)
		for i := 0; i <= lw; i++ {
			m.rip[i] = make([]plane, lh+1)
			for j := 0; j <= lh; j++ {
				nw, nh := maxInt(width>>i, 1), maxInt(height>>j, 1)
				if i == 0 && j == 0 {
					m.rip[i][j] = mip0
					continue
				}
				m.rip[i][j] = downscale(mip0, nw, nh)
			}
		}
	}

	return m, nil
}

// srgbToLinear applies the standard piecewise sRGB electro-optical transfer
// function. Alpha is never touched by this — callers apply it only to R,G,B.
func srgbToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return float32(math.Pow((float64(c)+0.055)/1.055, 2.4))
}

// Sample resolves the filtered color at texture coordinate uv using
// whichever sampling path the Map's flags selected at construction. No
// ray-differential information reaches this call, so the trilinear and
// anisotropic paths evaluate at their finest pyramid level; the coarser
// mip/rip levels are built for LOD-aware callers but are not consulted
// here.
func (m *Map) Sample(uv tmath.Vec2) core.Color {
	u := applyAddress(m.address, uv.X)
	v := applyAddress(m.address, uv.Y)

	switch m.flags.Filter {
	case FilterPoint:
		return samplePoint(&m.mips[0], u, v)
	case FilterBilinear:
		return sampleBilinear(&m.mips[0], u, v)
	case FilterTrilinear:
		return sampleBilinear(&m.mips[0], u, v)
	case FilterAnisotropic:
		return sampleBilinear(&m.rip[0][0], u, v)
	default:
		return samplePoint(&m.mips[0], u, v)
	}
}

// SampleDirection converts a world-space direction to latitude-longitude
// (theta, phi) coordinates and samples the implied equirectangular map —
// the path used for environment lookups when SamplerFlags.Spherical is
// set.
func (m *Map) SampleDirection(dir tmath.Vec3) core.Color {
	d := dir.Normalize()
	theta := float32(math.Acos(clampf(float64(d.Y), -1, 1)))
	phi := float32(math.Atan2(float64(d.Z), float64(d.X))) + math.Pi

	u := phi / (2 * math.Pi)
	v := theta / math.Pi
	return m.Sample(tmath.Vec2{X: u, Y: v})
}

func applyAddress(mode AddressMode, v float32) float32 {
	switch mode {
	case AddressWrap:
		return v - float32(math.Floor(float64(v)))
	case AddressMirror:
		return 1 - fracf(absf(v))
	case AddressClamp:
		return clampf32(v, 0, 1)
	default:
		return v
	}
}

func samplePoint(p *plane, u, v float32) core.Color {
	x := int(u * float32(p.width))
	y := int(v * float32(p.height))
	return p.at(x, y)
}

func sampleBilinear(p *plane, u, v float32) core.Color {
	fx := u*float32(p.width) - 0.5
	fy := v*float32(p.height) - 0.5
	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := p.at(x0, y0)
	c10 := p.at(x0+1, y0)
	c01 := p.at(x0, y0+1)
	c11 := p.at(x0+1, y0+1)

	top := lerpColor(c00, c10, tx)
	bot := lerpColor(c01, c11, tx)
	return lerpColor(top, bot, ty)
}

func lerpColor(a, b core.Color, t float32) core.Color {
	return core.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

func fracf(v float32) float32 {
	return v - float32(math.Floor(float64(v)))
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
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

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func log2Floor(v int) int {
	n := 0
	for v > 1 {
		v >>= 1
		n++
	}
	return n
}

package render

import (
	"math"

	"terra-go/core"
	"terra-go/scene"
)

// Apply dispatches to the selected tonemap operator. Every operator except
// TonemapNone applies gamma itself; TonemapNone returns c unchanged, with
// no gamma. Callers never gamma-correct twice.
func Apply(op scene.Tonemap, c core.Color, gamma float32) core.Color {
	switch op {
	case scene.TonemapLinear:
		return gammaCorrect(c, gamma)
	case scene.TonemapReinhard:
		return gammaCorrect(reinhard(c), gamma)
	case scene.TonemapFilmic:
		return filmic(c, gamma)
	case scene.TonemapUncharted2:
		return uncharted2(c, gamma)
	default:
		return c
	}
}

func gammaCorrect(c core.Color, gamma float32) core.Color {
	inv := 1 / gamma
	return core.Color{
		R: powf(maxf(c.R, 0), inv),
		G: powf(maxf(c.G, 0), inv),
		B: powf(maxf(c.B, 0), inv),
		A: c.A,
	}
}

// reinhard is the classic `c / (1 + c)` per-channel curve.
func reinhard(c core.Color) core.Color {
	return core.Color{
		R: c.R / (1 + c.R),
		G: c.G / (1 + c.G),
		B: c.B / (1 + c.B),
		A: c.A,
	}
}

// Hable's filmic curve constants (Uncharted 1 / "filmic" preset).
const (
	filmicA = 0.22
	filmicB = 0.30
	filmicC = 0.10
	filmicD = 0.20
	filmicE = 0.01
	filmicF = 0.30
)

func hable(x float32) float32 {
	return ((x*(filmicA*x+filmicC*filmicB) + filmicD*filmicE) /
		(x*(filmicA*x+filmicB) + filmicD*filmicF)) - filmicE/filmicF
}

// filmic applies Hable's curve per channel and then gamma 2.2,
// independent of the caller's requested gamma.
func filmic(c core.Color, _ float32) core.Color {
	const filmicGamma = 2.2
	r := hable(maxf(c.R, 0))
	g := hable(maxf(c.G, 0))
	b := hable(maxf(c.B, 0))
	return gammaCorrect(core.Color{R: r, G: g, B: b, A: c.A}, filmicGamma)
}

// Uncharted 2 operator constants, with the conventional white point of
// 11.2 and an exposure bias of 2.
const (
	u2A            = 0.15
	u2B            = 0.50
	u2C            = 0.10
	u2D            = 0.20
	u2E            = 0.02
	u2F            = 0.30
	u2W            = 11.2
	u2ExposureBias = 2.0
)

func uncharted2Curve(x float32) float32 {
	return ((x*(u2A*x+u2C*u2B) + u2D*u2E) / (x*(u2A*x+u2B) + u2D*u2F)) - u2E/u2F
}

func uncharted2(c core.Color, gamma float32) core.Color {
	whiteScale := 1 / uncharted2Curve(u2W)
	curved := core.Color{
		R: uncharted2Curve(c.R*u2ExposureBias) * whiteScale,
		G: uncharted2Curve(c.G*u2ExposureBias) * whiteScale,
		B: uncharted2Curve(c.B*u2ExposureBias) * whiteScale,
		A: c.A,
	}
	return gammaCorrect(curved, gamma)
}

func powf(v, e float32) float32 {
	return float32(math.Pow(float64(v), float64(e)))
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

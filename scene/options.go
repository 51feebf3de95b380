package scene

import (
	"terra-go/core"
	"terra-go/material"
)

// Tonemap selects the display-space operator applied at framebuffer
// read-out.
type Tonemap int

const (
	TonemapNone Tonemap = iota
	TonemapLinear
	TonemapReinhard
	TonemapFilmic
	TonemapUncharted2
)

// Accelerator selects the acceleration structure Commit builds. BVH is the
// only implemented option; the field exists so the enum has somewhere to
// grow without changing Commit's signature.
type Accelerator int

const (
	AcceleratorBVH Accelerator = iota
)

// SamplingMethod selects which sampler.Sequence2D flavor the dispatcher
// draws pixel-jitter samples from. The integrators draw their hemisphere
// samples from the tile's sampler.Random regardless of this setting.
type SamplingMethod int

const (
	SamplingRandom SamplingMethod = iota
	SamplingStratified
	SamplingHalton
	SamplingHammersley
)

// Integrator selects which radiance estimator the dispatcher invokes per
// primary ray.
type Integrator int

const (
	IntegratorSimple Integrator = iota
	IntegratorDirect
	IntegratorDirectMIS
	IntegratorDebugMono
	IntegratorDebugDepth
	IntegratorDebugNormals
)

// Options is the block of render settings: a staging copy is mutated by
// the caller via Scene.Options(), and is only observed by the renderer
// after the next Commit.
type Options struct {
	SamplesPerPixel int
	Bounces         int
	SubpixelJitter  float32 // clamped to [0, 0.5] by Commit
	Tonemapping     Tonemap
	Accelerator     Accelerator
	SamplingMethod  SamplingMethod
	Strata          int
	Integrator      Integrator
	ManualExposure  float32
	Gamma           float32
	EnvironmentMap  material.Attribute
}

// DefaultOptions returns the options a freshly created Scene starts with:
// one sample per pixel, four bounces, random sampling, the simple
// integrator, no tonemapping, unit exposure, gamma 2.2, and a black
// environment.
func DefaultOptions() Options {
	return Options{
		SamplesPerPixel: 1,
		Bounces:         4,
		SubpixelJitter:  0,
		Tonemapping:     TonemapNone,
		Accelerator:     AcceleratorBVH,
		SamplingMethod:  SamplingRandom,
		Strata:          1,
		Integrator:      IntegratorSimple,
		ManualExposure:  1,
		Gamma:           2.2,
		EnvironmentMap:  material.ConstantAttribute(core.Color{}),
	}
}

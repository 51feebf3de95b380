// Package config (de)serialises a scene.Options value to/from TOML. It is
// deliberately narrow: render options only, no flag parsing and no
// scene-graph persistence.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"terra-go/core"
	"terra-go/material"
	"terra-go/scene"
)

// colorTOML mirrors core.Color as plain fields TOML can marshal directly.
type colorTOML struct {
	R, G, B, A float32
}

// optionsTOML mirrors scene.Options with TOML-friendly field types.
// EnvironmentMap is narrowed to its constant-color case only — a textured
// environment map is a *texture.Map the config format has no
// file-reference convention for yet, so it is dropped on save and left
// black on load.
type optionsTOML struct {
	SamplesPerPixel  int
	Bounces          int
	SubpixelJitter   float32
	Tonemapping      string
	Accelerator      string
	SamplingMethod   string
	Strata           int
	Integrator       string
	ManualExposure   float32
	Gamma            float32
	EnvironmentColor colorTOML
}

var tonemapNames = map[scene.Tonemap]string{
	scene.TonemapNone:       "none",
	scene.TonemapLinear:     "linear",
	scene.TonemapReinhard:   "reinhard",
	scene.TonemapFilmic:     "filmic",
	scene.TonemapUncharted2: "uncharted2",
}

var tonemapValues = reverseStringMap(tonemapNames)

var samplingNames = map[scene.SamplingMethod]string{
	scene.SamplingRandom:     "random",
	scene.SamplingStratified: "stratified",
	scene.SamplingHalton:     "halton",
	scene.SamplingHammersley: "hammersley",
}

var samplingValues = reverseStringMap(samplingNames)

var integratorNames = map[scene.Integrator]string{
	scene.IntegratorSimple:       "simple",
	scene.IntegratorDirect:       "direct",
	scene.IntegratorDirectMIS:    "direct_mis",
	scene.IntegratorDebugMono:    "debug_mono",
	scene.IntegratorDebugDepth:   "debug_depth",
	scene.IntegratorDebugNormals: "debug_normals",
}

var integratorValues = reverseStringMap(integratorNames)

var acceleratorNames = map[scene.Accelerator]string{
	scene.AcceleratorBVH: "bvh",
}

var acceleratorValues = reverseStringMap(acceleratorNames)

func reverseStringMap[K comparable](m map[K]string) map[string]K {
	out := make(map[string]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

func toTOML(o scene.Options) optionsTOML {
	c := o.EnvironmentMap.Constant
	return optionsTOML{
		SamplesPerPixel:  o.SamplesPerPixel,
		Bounces:          o.Bounces,
		SubpixelJitter:   o.SubpixelJitter,
		Tonemapping:      tonemapNames[o.Tonemapping],
		Accelerator:      acceleratorNames[o.Accelerator],
		SamplingMethod:   samplingNames[o.SamplingMethod],
		Strata:           o.Strata,
		Integrator:       integratorNames[o.Integrator],
		ManualExposure:   o.ManualExposure,
		Gamma:            o.Gamma,
		EnvironmentColor: colorTOML{R: c.R, G: c.G, B: c.B, A: c.A},
	}
}

func fromTOML(t optionsTOML) (scene.Options, error) {
	tonemap, ok := tonemapValues[t.Tonemapping]
	if !ok {
		return scene.Options{}, fmt.Errorf("config: unknown tonemapping %q", t.Tonemapping)
	}
	accel, ok := acceleratorValues[t.Accelerator]
	if !ok {
		return scene.Options{}, fmt.Errorf("config: unknown accelerator %q", t.Accelerator)
	}
	samplingMethod, ok := samplingValues[t.SamplingMethod]
	if !ok {
		return scene.Options{}, fmt.Errorf("config: unknown sampling_method %q", t.SamplingMethod)
	}
	integ, ok := integratorValues[t.Integrator]
	if !ok {
		return scene.Options{}, fmt.Errorf("config: unknown integrator %q", t.Integrator)
	}

	c := t.EnvironmentColor
	return scene.Options{
		SamplesPerPixel: t.SamplesPerPixel,
		Bounces:         t.Bounces,
		SubpixelJitter:  t.SubpixelJitter,
		Tonemapping:     tonemap,
		Accelerator:     accel,
		SamplingMethod:  samplingMethod,
		Strata:          t.Strata,
		Integrator:      integ,
		ManualExposure:  t.ManualExposure,
		Gamma:           t.Gamma,
		EnvironmentMap:  material.ConstantAttribute(core.Color{R: c.R, G: c.G, B: c.B, A: c.A}),
	}, nil
}

// Marshal encodes o as TOML text.
func Marshal(o scene.Options) ([]byte, error) {
	data, err := toml.Marshal(toTOML(o))
	if err != nil {
		return nil, fmt.Errorf("config: marshal options: %w", err)
	}
	return data, nil
}

// Unmarshal decodes TOML text produced by Marshal back into a scene.Options.
func Unmarshal(data []byte) (scene.Options, error) {
	var t optionsTOML
	if err := toml.Unmarshal(data, &t); err != nil {
		return scene.Options{}, fmt.Errorf("config: unmarshal options: %w", err)
	}
	return fromTOML(t)
}

// Save writes o to path as TOML.
func Save(o scene.Options, path string) error {
	data, err := Marshal(o)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %q: %w", path, err)
	}
	return nil
}

// Load reads and decodes a TOML options file written by Save.
func Load(path string) (scene.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scene.Options{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	return Unmarshal(data)
}

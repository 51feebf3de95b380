package config

import (
	"math"
	"testing"

	"terra-go/scene"
)

func TestMarshalUnmarshalRoundTripsOptions(t *testing.T) {
	want := scene.DefaultOptions()
	want.SamplesPerPixel = 64
	want.Bounces = 8
	want.SubpixelJitter = 0.25
	want.Tonemapping = scene.TonemapFilmic
	want.SamplingMethod = scene.SamplingHalton
	want.Integrator = scene.IntegratorDirectMIS
	want.ManualExposure = 1.5
	want.Gamma = 2.2

	data, err := Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.SamplesPerPixel != want.SamplesPerPixel ||
		got.Bounces != want.Bounces ||
		got.Tonemapping != want.Tonemapping ||
		got.SamplingMethod != want.SamplingMethod ||
		got.Integrator != want.Integrator {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
	if math.Abs(float64(got.SubpixelJitter-want.SubpixelJitter)) > 1e-6 {
		t.Errorf("SubpixelJitter = %v, want %v", got.SubpixelJitter, want.SubpixelJitter)
	}
}

func TestUnmarshalRejectsUnknownEnumValue(t *testing.T) {
	bad := []byte(`
SamplesPerPixel = 1
Bounces = 1
Tonemapping = "not-a-real-operator"
Accelerator = "bvh"
SamplingMethod = "random"
Integrator = "simple"
`)
	if _, err := Unmarshal(bad); err == nil {
		t.Error("expected an error for an unrecognized tonemapping value")
	}
}

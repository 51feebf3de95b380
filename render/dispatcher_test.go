package render

import (
	"testing"

	"terra-go/core"
	tmath "terra-go/math"
	"terra-go/scene"
)

func TestRenderEmptySceneMatchesTonemappedEnvironment(t *testing.T) {
	sc := scene.New()
	sc.Options().SamplesPerPixel = 1
	sc.Options().Bounces = 0
	sc.Options().Tonemapping = scene.TonemapLinear
	sc.Options().ManualExposure = 1
	sc.Options().Gamma = 1
	sc.Commit()

	fb, err := NewFramebuffer(8, 8)
	if err != nil {
		t.Fatal(err)
	}

	cam := Camera{
		Position:   tmath.Vec3{},
		Direction:  tmath.Vec3Front,
		Up:         tmath.Vec3Up,
		FOVRadians: 1.0,
		Width:      8,
		Height:     8,
	}

	d := NewDispatcher(1)
	d.Render(cam, sc, fb, 0, 0, 8, 8)
	d.Close()

	want := Apply(scene.TonemapLinear, core.Color{}, 1)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := fb.Display(x, y); got.R != want.R {
				t.Fatalf("pixel (%d,%d) = %v, want tonemap(exposure*env) = %v", x, y, got, want)
			}
		}
	}
}

func TestRenderCoversEveryPixelExactlyOnce(t *testing.T) {
	sc := scene.New()
	sc.Options().SamplesPerPixel = 1
	sc.Commit()

	fb, err := NewFramebuffer(300, 5)
	if err != nil {
		t.Fatal(err)
	}
	cam := Camera{Direction: tmath.Vec3Front, Up: tmath.Vec3Up, FOVRadians: 1.0, Width: 300, Height: 5}

	d := NewDispatcher(2)
	d.Render(cam, sc, fb, 0, 0, 300, 5)
	d.Close()

	for y := 0; y < 5; y++ {
		for x := 0; x < 300; x++ {
			if fb.Count(x, y) != 1 {
				t.Fatalf("pixel (%d,%d) touched %d times, want exactly 1", x, y, fb.Count(x, y))
			}
		}
	}
}

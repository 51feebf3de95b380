// Command terra is the thin CLI entry point: it wires together scene
// construction, a render pass, and a PPM dump. The demonstration scene is
// built in-process; there is no asset import.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"terra-go/core"
	"terra-go/geometry"
	"terra-go/internal/plog"
	"terra-go/material"
	tmath "terra-go/math"
	"terra-go/render"
	"terra-go/scene"
)

func main() {
	width := flag.Int("width", 640, "output image width")
	height := flag.Int("height", 480, "output image height")
	spp := flag.Int("spp", 16, "samples per pixel")
	bounces := flag.Int("bounces", 6, "maximum bounce depth")
	out := flag.String("out", "out.ppm", "output PPM path")
	verbose := flag.Bool("v", false, "debug-level logging")
	flag.Parse()

	if *verbose {
		plog.SetLevel(log.DebugLevel)
	}

	sc := buildDemoScene()
	opts := sc.Options()
	opts.SamplesPerPixel = *spp
	opts.Bounces = *bounces
	opts.Integrator = scene.IntegratorDirectMIS
	opts.Tonemapping = scene.TonemapFilmic
	opts.ManualExposure = 1
	opts.Gamma = 2.2
	sc.Commit()

	fb, err := render.NewFramebuffer(*width, *height)
	if err != nil {
		fmt.Fprintln(os.Stderr, "terra:", err)
		os.Exit(1)
	}

	cam := render.Camera{
		Position:   tmath.NewVec3(0, 2, -8),
		Direction:  tmath.NewVec3(0, -0.1, 1).Normalize(),
		Up:         tmath.Vec3Up,
		FOVRadians: 0.9,
		Width:      *width,
		Height:     *height,
	}

	start := time.Now()
	d := render.NewDispatcher(0)
	d.Render(cam, sc, fb, 0, 0, *width, *height)
	d.Close()
	elapsed := time.Since(start)

	if err := writePPM(*out, fb); err != nil {
		fmt.Fprintln(os.Stderr, "terra:", err)
		os.Exit(1)
	}

	plog.Infof("render complete", "width", *width, "height", *height, "spp", *spp, "elapsed", elapsed, "out", *out)
}

// buildDemoScene assembles a small Cornell-box-like scene: a diffuse floor,
// an overhead emissive quad, and a rough-dielectric block, giving the
// direct+MIS integrator something non-trivial to sample.
func buildDemoScene() *scene.Scene {
	sc := scene.New()

	floorMat := material.New(material.Diffuse{})
	floorMat.SetAttr(material.DiffuseAlbedo, material.ConstantAttribute(core.Color{R: 0.7, G: 0.7, B: 0.7, A: 1}))
	addQuad(sc, floorMat,
		tmath.NewVec3(-10, 0, -10), tmath.NewVec3(10, 0, -10),
		tmath.NewVec3(10, 0, 10), tmath.NewVec3(-10, 0, 10))

	lightMat := material.New(material.Diffuse{})
	lightMat.SetEmissive(material.ConstantAttribute(core.Color{R: 40, G: 38, B: 34, A: 1}))
	addQuad(sc, lightMat,
		tmath.NewVec3(-3, 8, -3), tmath.NewVec3(3, 8, -3),
		tmath.NewVec3(3, 8, 3), tmath.NewVec3(-3, 8, 3))

	blockMat := material.New(material.RoughDielectric{})
	blockMat.SetAttr(material.RoughAlbedo, material.ConstantAttribute(core.Color{R: 0.9, G: 0.2, B: 0.2, A: 1}))
	blockMat.SetAttr(material.RoughRoughness, material.ConstantAttribute(core.Color{R: 0.3, G: 0.3, B: 0.3, A: 1}))
	blockMat.SetAttr(material.RoughMetalness, material.ConstantAttribute(core.Color{R: 0.1, G: 0.1, B: 0.1, A: 1}))
	addQuad(sc, blockMat,
		tmath.NewVec3(-2, 0, 0), tmath.NewVec3(2, 0, 0),
		tmath.NewVec3(2, 4, 0), tmath.NewVec3(-2, 4, 0))

	sc.Options().EnvironmentMap = material.ConstantAttribute(core.Color{R: 0.02, G: 0.02, B: 0.03, A: 1})
	return sc
}

// addQuad adds two triangles spanning a,b,c,d (in winding order) sharing
// one flat normal derived from the first triangle.
func addQuad(sc *scene.Scene, mat *material.Material, a, b, c, d tmath.Vec3) {
	obj := sc.AddObject(2)
	obj.Material = mat
	obj.Triangles[0] = geometry.Triangle{A: a, B: b, C: c}
	obj.Triangles[1] = geometry.Triangle{A: a, B: c, C: d}

	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	uv := [4]tmath.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	obj.Properties[0] = scene.TriangleProperties{
		Normals: [3]tmath.Vec3{n, n, n},
		UVs:     [3]tmath.Vec2{uv[0], uv[1], uv[2]},
	}
	obj.Properties[1] = scene.TriangleProperties{
		Normals: [3]tmath.Vec3{n, n, n},
		UVs:     [3]tmath.Vec2{uv[0], uv[2], uv[3]},
	}
}

// writePPM dumps the framebuffer's display plane as a binary PPM (P6) —
// the simplest image format that needs no codec dependency.
func writePPM(path string, fb *render.Framebuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("terra: create %q: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "P6\n%d %d\n255\n", fb.Width, fb.Height)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.Display(x, y)
			w.WriteByte(to8(c.R))
			w.WriteByte(to8(c.G))
			w.WriteByte(to8(c.B))
		}
	}
	return w.Flush()
}

func to8(v float32) byte {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return byte(v*255 + 0.5)
}

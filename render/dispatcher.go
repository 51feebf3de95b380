package render

import (
	"runtime"

	"github.com/alitto/pond/v2"

	"terra-go/integrator"
	"terra-go/internal/plog"
	tmath "terra-go/math"
	"terra-go/sampler"
	"terra-go/scene"
)

// TileSize is the tile side length the dispatcher partitions a render
// rectangle into.
const TileSize = 128

// Dispatcher owns the worker pool the render rectangle's tiles are pushed
// onto, backed by alitto/pond.
type Dispatcher struct {
	pool pond.Pool
}

// NewDispatcher creates a worker pool sized to the host's CPUs (or the
// given concurrency if positive).
func NewDispatcher(concurrency int) *Dispatcher {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &Dispatcher{pool: pond.NewPool(concurrency)}
}

// Close stops the worker pool and waits for any in-flight tile to finish.
func (d *Dispatcher) Close() { d.pool.StopAndWait() }

func pickEstimator(i scene.Integrator) integrator.Estimator {
	switch i {
	case scene.IntegratorDirect:
		return integrator.Direct
	case scene.IntegratorDirectMIS:
		return integrator.DirectMIS
	case scene.IntegratorDebugMono:
		return integrator.DebugMono
	case scene.IntegratorDebugDepth:
		return integrator.DebugDepth
	case scene.IntegratorDebugNormals:
		return integrator.DebugNormals
	default:
		return integrator.Simple
	}
}

func buildSequence(method scene.SamplingMethod, spp, strata int, rng *sampler.Random) sampler.Sequence2D {
	n := spp
	if method == scene.SamplingStratified && strata > 0 && n < strata*strata {
		// Stratified sampling never draws fewer than one sample per
		// stratum.
		n = strata * strata
	}
	switch method {
	case scene.SamplingStratified:
		return sampler.NewStratifiedSequence(n, rng)
	case scene.SamplingHalton:
		return sampler.NewHaltonSequence(n)
	case scene.SamplingHammersley:
		return sampler.NewHammersleySequence(n)
	default:
		return sampler.NewRandomSequence(n, rng)
	}
}

// Render processes the rectangle [x,y,x+w,y+h) of fb, partitioning it
// into TileSize tiles pushed to the worker pool. Every pixel in the
// rectangle is touched by exactly one tile, so the framebuffer
// accumulation is race-free without locks.
func (d *Dispatcher) Render(cam Camera, sc *scene.Scene, fb *Framebuffer, x, y, w, h int) {
	opts := sc.CommittedOptions()

	type tile struct{ x0, y0, x1, y1 int }
	var tiles []tile
	for ty := y; ty < y+h; ty += TileSize {
		for tx := x; tx < x+w; tx += TileSize {
			x1 := minInt(tx+TileSize, x+w)
			y1 := minInt(ty+TileSize, y+h)
			tiles = append(tiles, tile{tx, ty, x1, y1})
		}
	}

	clock := tmath.NewClock()
	group := d.pool.NewGroup()
	for tileID, t := range tiles {
		t := t
		tileID := tileID
		group.Submit(func() {
			plog.Debugf("tile start", "x0", t.x0, "y0", t.y0, "x1", t.x1, "y1", t.y1)
			rng := sampler.NewRandom(clock, tileID)
			estimator := pickEstimator(opts.Integrator)

			for py := t.y0; py < t.y1; py++ {
				for px := t.x0; px < t.x1; px++ {
					seq := buildSequence(opts.SamplingMethod, maxIntRender(opts.SamplesPerPixel, 1), opts.Strata, rng)
					for s := 0; s < seq.Len(); s++ {
						u, v := seq.Next()
						jx := (u*2 - 1) * opts.SubpixelJitter
						jy := (v*2 - 1) * opts.SubpixelJitter
						ray := cam.PrimaryRay(px, py, jx, jy)
						radiance := estimator(sc, ray, rng, opts.Bounces, cam.Position)
						fb.Accumulate(px, py, radiance)
					}
					fb.Resolve(px, py, opts.ManualExposure, opts.Gamma, opts.Tonemapping)
				}
			}
			plog.Debugf("tile done", "x0", t.x0, "y0", t.y0)
		})
	}
	group.Wait()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxIntRender(a, b int) int {
	if a > b {
		return a
	}
	return b
}

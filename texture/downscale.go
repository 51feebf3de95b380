package texture

import (
	"math"

	"terra-go/core"
)

// lambda is the bilateral weight exponent.
const lambda = 1.0

// downscale builds one mip/rip level with a detail-preserving joint
// bilateral filter. A guidance map (3x3 box filter followed by a
// [1 2 1; 2 4 2; 1 2 1] convolution) is computed over src; each destination
// texel then gathers the source window that maps into it, weighting every
// contributing source texel by its fractional geometric overlap with the
// destination texel (so non-integer scale ratios are handled correctly)
// times the distance between the texel's color and the guidance value at
// the destination pixel, normalised by sqrt(3) and raised to lambda.
func downscale(src plane, dstW, dstH int) plane {
	guidance := buildGuidance(src)

	dst := plane{width: dstW, height: dstH, texels: make([]core.Color, dstW*dstH)}
	sx := float64(src.width) / float64(dstW)
	sy := float64(src.height) / float64(dstH)

	for dy := 0; dy < dstH; dy++ {
		srcY0 := float64(dy) * sy
		srcY1 := srcY0 + sy
		for dx := 0; dx < dstW; dx++ {
			srcX0 := float64(dx) * sx
			srcX1 := srcX0 + sx

			gp := guidance.at(int((srcX0+srcX1)/2), int((srcY0+srcY1)/2))

			yStart := int(math.Floor(srcY0))
			yEnd := int(math.Ceil(srcY1))
			xStart := int(math.Floor(srcX0))
			xEnd := int(math.Ceil(srcX1))

			var sum, boxSum core.Color
			var weightSum, fracSum float32

			for sy2 := yStart; sy2 < yEnd; sy2++ {
				overlapY := overlap1D(float64(sy2), float64(sy2+1), srcY0, srcY1)
				if overlapY <= 0 {
					continue
				}
				for sx2 := xStart; sx2 < xEnd; sx2++ {
					overlapX := overlap1D(float64(sx2), float64(sx2+1), srcX0, srcX1)
					if overlapX <= 0 {
						continue
					}
					frac := float32(overlapX * overlapY)
					texel := src.at(sx2, sy2)

					dist := colorDistance(texel, gp) / float32(math.Sqrt(3))
					weight := frac * float32(math.Pow(float64(dist), lambda))

					sum = sum.Add(texel.Scale(weight))
					weightSum += weight
					boxSum = boxSum.Add(texel.Scale(frac))
					fracSum += frac
				}
			}

			var out core.Color
			if weightSum > 0 {
				out = sum.Scale(1 / weightSum)
			} else if fracSum > 0 {
				// A window whose texels all match the guidance value zeroes
				// every bilateral weight; fall back to the plain
				// overlap-weighted average.
				out = boxSum.Scale(1 / fracSum)
			}
			dst.texels[dy*dstW+dx] = out
		}
	}

	return dst
}

// buildGuidance computes a smoothed guidance map: a 3x3 box filter followed
// by a [1 2 1; 2 4 2; 1 2 1] convolution, both with clamped borders.
func buildGuidance(src plane) plane {
	boxed := convolve(src, [3][3]float32{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	}, 9)
	return convolve(boxed, [3][3]float32{
		{1, 2, 1},
		{2, 4, 2},
		{1, 2, 1},
	}, 16)
}

func convolve(src plane, kernel [3][3]float32, norm float32) plane {
	dst := plane{width: src.width, height: src.height, texels: make([]core.Color, src.width*src.height)}
	for y := 0; y < src.height; y++ {
		for x := 0; x < src.width; x++ {
			var sum core.Color
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					w := kernel[ky+1][kx+1]
					sum = sum.Add(src.at(x+kx, y+ky).Scale(w))
				}
			}
			dst.texels[y*src.width+x] = sum.Scale(1 / norm)
		}
	}
	return dst
}

// overlap1D returns the length of the overlap between [aStart,aEnd) and
// [bStart,bEnd).
func overlap1D(aStart, aEnd, bStart, bEnd float64) float64 {
	lo := math.Max(aStart, bStart)
	hi := math.Min(aEnd, bEnd)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

func colorDistance(a, b core.Color) float32 {
	dr := a.R - b.R
	dg := a.G - b.G
	db := a.B - b.B
	return float32(math.Sqrt(float64(dr*dr + dg*dg + db*db)))
}

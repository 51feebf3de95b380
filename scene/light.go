package scene

import "math"

// Light is a non-owning back-reference to an emissive Object plus the
// per-triangle surface areas and total radiant power cached at commit
// time. It is rebuilt from scratch at every commit, so no
// dangling-reference hazard exists as long as commits and renders are
// serialized by the caller.
type Light struct {
	ObjectIndex   int
	object        *Object
	TriangleAreas []float32
	TotalArea     float32
	Power         float32
}

// Object returns the light's backing emissive object.
func (l *Light) Object() *Object { return l.object }

// PickLight selects a light uniformly. The power-proportional table built
// by buildPowerDistribution is deliberately not consulted here.
func (s *Scene) PickLight(e float32) (*Light, float32) {
	if len(s.lights) == 0 {
		return nil, 0
	}
	idx := int(e * float32(len(s.lights)))
	if idx >= len(s.lights) {
		idx = len(s.lights) - 1
	}
	return &s.lights[idx], 1.0 / float32(len(s.lights))
}

// PickTriangle picks a triangle on the light uniformly by index (not
// area-weighted), returning the triangle's cached surface area alongside
// its index since the direct-lighting estimator's pdf uses that area
// directly.
func (l *Light) PickTriangle(e float32) (index int, area float32) {
	if len(l.TriangleAreas) == 0 {
		return 0, 0
	}
	idx := int(e * float32(len(l.TriangleAreas)))
	if idx >= len(l.TriangleAreas) {
		idx = len(l.TriangleAreas) - 1
	}
	return idx, l.TriangleAreas[idx]
}

// powerDistribution is a cumulative power-proportional sampling table over
// the light list. PickLight does not consult it; it exists for
// power-weighted selection and is exercised only by its own tests.
type powerDistribution struct {
	cdf   []float32
	total float32
}

func buildPowerDistribution(lights []Light) powerDistribution {
	cdf := make([]float32, len(lights))
	var total float32
	for i, l := range lights {
		total += l.Power
		cdf[i] = total
	}
	return powerDistribution{cdf: cdf, total: total}
}

// sample returns the index of the light selected by e under power-weighted
// probability, and that light's pdf.
func (d powerDistribution) sample(e float32) (index int, pdf float32) {
	if d.total <= 0 || len(d.cdf) == 0 {
		return 0, 0
	}
	target := e * d.total
	for i, c := range d.cdf {
		if target <= c {
			var prev float32
			if i > 0 {
				prev = d.cdf[i-1]
			}
			power := c - prev
			return i, power / d.total
		}
	}
	last := len(d.cdf) - 1
	var prev float32
	if last > 0 {
		prev = d.cdf[last-1]
	}
	return last, (d.cdf[last] - prev) / d.total
}

// radiantPower integrates emitted power for a constant emissive:
// emissive x area x pi.
func radiantPower(emissiveLuminance, area float32) float32 {
	return emissiveLuminance * area * float32(math.Pi)
}

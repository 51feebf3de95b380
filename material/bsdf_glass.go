package material

import (
	"terra-go/core"
	tmath "terra-go/math"
)

// Glass is a perfect specular reflection/transmission BSDF. It has no
// per-surface attribute slots of its own — only the material-level IOR
// attribute drives it.
type Glass struct{}

func (Glass) AttributeCount() int { return 0 }

// Sample computes the Snell-refracted direction, falling back to a
// deterministic reflection on total internal reflection; otherwise it
// Russian-roulettes between reflection (probability R, the unpolarized
// Schlick Fresnel term) and refraction (probability 1-R) using e3. The
// chosen branch's weight is stashed in surface.Scratch so Pdf/Eval — called
// afterward by the integrator with the same wi — can recover it without
// recomputing Fresnel.
func (Glass) Sample(surface *ShadingSurface, e1, e2, e3 float32, wo tmath.Vec3) tmath.Vec3 {
	n := surface.Normal
	entering := wo.Dot(n) > 0
	nn := n
	etaIncident, etaTransmit := float32(1), surface.IOR
	if !entering {
		nn = n.Negate()
		etaIncident, etaTransmit = surface.IOR, 1
	}
	eta := etaIncident / etaTransmit

	d := wo.Negate() // propagation direction, into the surface
	refracted, ok := d.Refract(nn, eta)
	if !ok {
		wi := wo.Reflect(n).Normalize()
		surface.Scratch[0] = 1
		return wi
	}

	cosI := maxf32(0, nn.Dot(d.Negate()))
	r0 := (etaIncident - etaTransmit) / (etaIncident + etaTransmit)
	r0 *= r0
	c := 1 - cosI
	r := r0 + (1-r0)*c*c*c*c*c

	if e3 < r {
		surface.Scratch[0] = r
		return wo.Reflect(n).Normalize()
	}
	surface.Scratch[0] = 1 - r
	return refracted.Normalize()
}

// Pdf returns the weight Sample stashed for the branch it took — Glass's
// "pdf" is not a density over a continuum, it is the discrete probability
// of the chosen delta direction, which the generic trace loop treats
// identically to a continuous pdf.
func (Glass) Pdf(surface *ShadingSurface, wi, wo tmath.Vec3) float32 {
	return surface.Scratch[0]
}

// Eval returns the stashed branch weight as a white tint. Pdf returns the
// same value, so the trace loop's f/p ratio collapses to 1 and the delta
// lobe passes radiance through undimmed, which is exactly what a perfect
// specular interface should do.
func (Glass) Eval(surface *ShadingSurface, wi, wo tmath.Vec3) core.Color {
	w := surface.Scratch[0]
	return core.Color{R: w, G: w, B: w, A: 1}
}

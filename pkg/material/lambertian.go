package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Lambertian represents a diffuse material.
//
// Scattering aims at a random point on the unit hemisphere offset by the
// surface normal. This is the classic approximate diffuse model rather than a
// cosine-weighted BRDF sample, and rendered images depend on it exactly.
type Lambertian struct {
	Albedo core.Vec3
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	r1, r2 := sampler.Get2D()
	target := hit.Point.Add(hit.Normal).Add(core.SampleHemisphere(r1, r2))
	direction := target.Sub(hit.Point).Normalize()

	// The offset sample can cancel the normal exactly
	if direction.Norm2() == 0 {
		direction = hit.Normal.Normalize()
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: l.Albedo,
	}, true
}

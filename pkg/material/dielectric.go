package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Clear glass never absorbs
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	// Entering from outside uses air/glass, leaving uses glass/air
	normal := hit.Normal.Normalize()
	eta := 1.0 / d.RefractiveIndex
	if rayIn.Direction.Dot(hit.Normal) >= 0 {
		normal = normal.Mul(-1)
		eta = d.RefractiveIndex
	}

	direction, ok := Refract(rayIn.Direction, normal, eta)
	if !ok {
		direction = Reflect(rayIn.Direction, normal)
	} else {
		cosTheta := math.Min(-rayIn.Direction.Normalize().Dot(normal), 1.0)
		if sampler.Get1D() < Schlick(cosTheta, eta) {
			direction = Reflect(rayIn.Direction, normal)
		}
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}, true
}

// Schlick approximates Fresnel reflectance for the given incidence cosine
// and refractive index ratio
func Schlick(cosine, eta float64) float64 {
	r0 := (1 - eta) / (1 + eta)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Material decides how light leaves a surface. Implementations hold only
// parameters, so a single instance may be shared by many objects and read
// concurrently by any number of render goroutines.
type Material interface {
	// Scatter returns the outgoing ray and its attenuation, or false when the
	// surface absorbs the path.
	Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// Reflect mirrors v about n. Both inputs are normalized first and the result
// is unit length.
func Reflect(v, n core.Vec3) core.Vec3 {
	v = v.Normalize()
	n = n.Normalize()
	// r = v - 2*dot(v,n)*n
	return v.Sub(n.Mul(2 * v.Dot(n))).Normalize()
}

// Refract bends v through a surface with normal n using Snell's law, where
// eta is the ratio of refractive indices (incident over transmitted). It
// returns false on total internal reflection.
func Refract(v, n core.Vec3, eta float64) (core.Vec3, bool) {
	v = v.Normalize()
	n = n.Normalize()
	nDotV := n.Dot(v)
	k := 1.0 - eta*eta*(1.0-nDotV*nDotV)
	if k < 0 {
		return core.Vec3{}, false
	}
	return v.Mul(eta).Sub(n.Mul(eta*nDotV + math.Sqrt(k))).Normalize(), true
}

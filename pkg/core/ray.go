package core

import "math"

const (
	// DefaultMinT keeps secondary rays from re-hitting the surface they leave.
	DefaultMinT = 1e-4

	// DefaultMaxT is the largest representable finite distance.
	DefaultMaxT = math.MaxFloat64
)

// Ray is a half-line restricted to the open parametric interval (MinT, MaxT).
// Rays are values: a new Ray is created for every bounce.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	MinT      float64
	MaxT      float64
}

// NewRay creates a ray searching the default interval
func NewRay(origin, direction Vec3) Ray {
	return NewRayInterval(origin, direction, DefaultMinT, DefaultMaxT)
}

// NewRayInterval creates a ray with an explicit valid interval.
// A zero-length direction is a programming error and panics.
func NewRayInterval(origin, direction Vec3, minT, maxT float64) Ray {
	if direction.Norm2() == 0 {
		panic("core: ray direction must be non-zero")
	}
	return Ray{Origin: origin, Direction: direction, MinT: minT, MaxT: maxT}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// WithMaxT returns a copy of the ray whose search stops at t
func (r Ray) WithMaxT(t float64) Ray {
	r.MaxT = t
	return r
}

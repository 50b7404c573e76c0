package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// BoundingBoxEpsilon pads primitive bounds so no box has zero thickness
const BoundingBoxEpsilon = 1e-4

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray) (core.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Sub(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Norm2()
	halfB := oc.Dot(ray.Direction)
	c := oc.Norm2() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return core.HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= ray.MinT || root >= ray.MaxT {
		// Try the farther intersection point
		root = (-halfB + sqrtD) / a
		if root <= ray.MinT || root >= ray.MaxT {
			return core.HitRecord{}, false
		}
	}

	point := ray.At(root)
	return core.HitRecord{
		Point:  point,
		Normal: point.Sub(s.Center).Mul(1.0 / s.Radius),
		T:      root,
	}, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.BBox {
	r := core.Splat(math.Abs(s.Radius) + BoundingBoxEpsilon)
	return core.NewBBox(s.Center.Sub(r), s.Center.Add(r))
}

package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Primitive is a geometric shape that rays can be intersected with
type Primitive interface {
	// Hit returns the nearest intersection strictly inside the ray's
	// (MinT, MaxT) interval
	Hit(ray core.Ray) (core.HitRecord, bool)
	BoundingBox() core.BBox
}

// Accelerator answers nearest-hit queries over a fixed set of objects
type Accelerator interface {
	Hit(ray core.Ray) (Intersection, bool)
	BoundingBox() core.BBox
}

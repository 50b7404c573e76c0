package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// ObjectList tests every object in insertion order. It is the brute-force
// reference the BVH must agree with.
type ObjectList []*Object

// Hit returns the nearest intersection over all objects. On exactly equal
// distances the earlier object wins.
func (l ObjectList) Hit(ray core.Ray) (Intersection, bool) {
	var closest Intersection
	hitAnything := false

	for _, obj := range l {
		if hit, ok := obj.Hit(ray); ok {
			hitAnything = true
			closest = hit
			ray = ray.WithMaxT(hit.T)
		}
	}

	return closest, hitAnything
}

// BoundingBox returns the union of all object bounds
func (l ObjectList) BoundingBox() core.BBox {
	box := core.EmptyBBox()
	for _, obj := range l {
		box = box.Union(obj.BoundingBox())
	}
	return box
}

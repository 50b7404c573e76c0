package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Object pairs a primitive with the material used to shade it. Primitives
// and materials are shared by pointer, never copied, and are read-only once
// rendering starts.
type Object struct {
	Primitive Primitive
	Material  material.Material
}

// NewObject creates a new scene object
func NewObject(primitive Primitive, mat material.Material) *Object {
	return &Object{Primitive: primitive, Material: mat}
}

// Intersection is a hit record tagged with the object that produced it
type Intersection struct {
	core.HitRecord
	Object *Object
}

// Hit tests the ray against the object's primitive
func (o *Object) Hit(ray core.Ray) (Intersection, bool) {
	hit, ok := o.Primitive.Hit(ray)
	if !ok {
		return Intersection{}, false
	}
	return Intersection{HitRecord: hit, Object: o}, true
}

// BoundingBox returns the primitive's bounding box
func (o *Object) BoundingBox() core.BBox {
	return o.Primitive.BoundingBox()
}

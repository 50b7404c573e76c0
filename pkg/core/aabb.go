package core

import "math"

// Axis identifies one of the three coordinate axes
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// BBox represents an axis-aligned bounding box. All operations are pure.
//
// The zero value is the degenerate box at the origin, not the empty box; use
// EmptyBBox for the identity element of Union.
type BBox struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewBBox creates a new BBox from min and max points
func NewBBox(min, max Vec3) BBox {
	return BBox{Min: min, Max: max}
}

// EmptyBBox returns the box containing no points. Its union with any box
// yields that box unchanged.
func EmptyBBox() BBox {
	return BBox{Min: Splat(math.Inf(1)), Max: Splat(math.Inf(-1))}
}

// NewBBoxFromPoints creates a BBox that bounds all given points
func NewBBoxFromPoints(points ...Vec3) BBox {
	box := EmptyBBox()
	for _, p := range points {
		box = box.Union(BBox{Min: p, Max: p})
	}
	return box
}

// IsEmpty reports whether the box contains no points
func (b BBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Union returns a BBox that bounds both this box and another
func (b BBox) Union(other BBox) BBox {
	return BBox{
		Min: Vec3{
			X: math.Min(b.Min.X, other.Min.X),
			Y: math.Min(b.Min.Y, other.Min.Y),
			Z: math.Min(b.Min.Z, other.Min.Z),
		},
		Max: Vec3{
			X: math.Max(b.Max.X, other.Max.X),
			Y: math.Max(b.Max.Y, other.Max.Y),
			Z: math.Max(b.Max.Z, other.Max.Z),
		},
	}
}

// Intersects reports whether two boxes overlap (touching counts)
func (b BBox) Intersects(other BBox) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// Contains reports whether the point lies inside or on the box
func (b BBox) Contains(p Vec3) bool {
	return b.Min.X <= p.X && b.Max.X >= p.X &&
		b.Min.Y <= p.Y && b.Max.Y >= p.Y &&
		b.Min.Z <= p.Z && b.Max.Z >= p.Z
}

// Center returns the center point of the box
func (b BBox) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Diagonal returns the extent of the box along each axis
func (b BBox) Diagonal() Vec3 {
	return b.Max.Sub(b.Min)
}

// SurfaceArea returns the surface area of the box
func (b BBox) SurfaceArea() float64 {
	d := b.Diagonal()
	return 2.0 * (d.X*d.Y + d.X*d.Z + d.Y*d.Z)
}

// Volume returns the volume of the box
func (b BBox) Volume() float64 {
	d := b.Diagonal()
	return d.X * d.Y * d.Z
}

// MaxExtent returns the axis with the longest extent. Ties resolve through
// strict sequential comparison, so X wins only when strictly longest.
func (b BBox) MaxExtent() Axis {
	d := b.Diagonal()
	if d.X > d.Y && d.X > d.Z {
		return AxisX
	}
	if d.Y > d.Z {
		return AxisY
	}
	return AxisZ
}

// Expand returns a box grown by amount in all directions
func (b BBox) Expand(amount float64) BBox {
	e := Splat(amount)
	return BBox{Min: b.Min.Sub(e), Max: b.Max.Add(e)}
}

// Hit tests the ray's valid interval against the box using the slab method.
//
// Axis-parallel rays divide by zero and produce infinite slab bounds, which
// the interval logic handles without a special case. When the origin lies
// exactly on a slab plane of such a ray the bound is NaN; the comparisons
// below are false for NaN, which leaves the interval unchanged.
func (b BBox) Hit(ray Ray) bool {
	t0, t1 := ray.MinT, ray.MaxT
	for axis := AxisX; axis <= AxisZ; axis++ {
		invD := 1.0 / Component(ray.Direction, axis)
		origin := Component(ray.Origin, axis)
		tNear := (Component(b.Min, axis) - origin) * invD
		tFar := (Component(b.Max, axis) - origin) * invD
		if invD < 0 {
			tNear, tFar = tFar, tNear
		}
		if tNear > t0 {
			t0 = tNear
		}
		if tFar < t1 {
			t1 = tFar
		}
		if t0 >= t1 {
			return false
		}
	}
	return true
}

package core

// HitRecord describes a single ray-surface intersection. Normal is only unit
// length when the geometry guarantees it.
type HitRecord struct {
	Point  Vec3    // Point of intersection
	Normal Vec3    // Surface normal at intersection
	T      float64 // Parameter t along the ray
}

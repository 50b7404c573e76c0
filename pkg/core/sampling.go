package core

import (
	"math"
	"math/rand"
)

// Sampler provides uniform random numbers in [0, 1) for rendering algorithms.
// Every call consumes state, so a Sampler must be owned by a single goroutine.
// Can be swapped out for deterministic testing or different sampling patterns.
type Sampler interface {
	Get1D() float64
	Get2D() (float64, float64)
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler with its own generator seeded with seed
func NewRandomSampler(seed int64) *RandomSampler {
	return NewSamplerFromRand(rand.New(rand.NewSource(seed)))
}

// NewSamplerFromRand creates a sampler from a Go random generator
func NewSamplerFromRand(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two independent random float64 values in [0, 1)
func (r *RandomSampler) Get2D() (float64, float64) {
	return r.random.Float64(), r.random.Float64()
}

// FixedSampler replays a fixed list of values, cycling when exhausted.
// Useful for deterministic tests.
type FixedSampler struct {
	values []float64
	next   int
}

// NewFixedSampler creates a sampler that returns values in order
func NewFixedSampler(values ...float64) *FixedSampler {
	return &FixedSampler{values: values}
}

// Get1D returns the next value
func (f *FixedSampler) Get1D() float64 {
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}

// Get2D returns the next two values
func (f *FixedSampler) Get2D() (float64, float64) {
	u := f.Get1D()
	return u, f.Get1D()
}

// Reset rewinds the sampler to its first value
func (f *FixedSampler) Reset() {
	f.next = 0
}

// sphericalDirection builds a direction from an azimuth and the polar cosine
func sphericalDirection(phi, cosTheta float64) Vec3 {
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	return NewVec3(math.Cos(phi)*sinTheta, math.Sin(phi)*sinTheta, cosTheta).Normalize()
}

// SampleSphere maps two uniform samples to a uniformly distributed unit direction
func SampleSphere(u, v float64) Vec3 {
	return sphericalDirection(2.0*math.Pi*u, 1.0-2.0*v)
}

// SphereSamplePDF is the solid-angle density of SampleSphere
func SphereSamplePDF() float64 {
	return 1.0 / (4.0 * math.Pi)
}

// SampleHemisphere maps two uniform samples to a direction distributed
// uniformly (not cosine-weighted) over the +Z hemisphere
func SampleHemisphere(u, v float64) Vec3 {
	return sphericalDirection(2.0*math.Pi*u, v)
}

// HemisphereSamplePDF is the solid-angle density of SampleHemisphere
func HemisphereSamplePDF() float64 {
	return 1.0 / (2.0 * math.Pi)
}

// SampleHemisphereCosine maps two uniform samples to a cosine-weighted
// direction over the +Z hemisphere
func SampleHemisphereCosine(u, v float64) Vec3 {
	return sphericalDirection(2.0*math.Pi*u, math.Sqrt(1.0-v))
}

// CosineHemisphereSamplePDF is the density of SampleHemisphereCosine for a
// direction at angle theta from +Z
func CosineHemisphereSamplePDF(cosTheta float64) float64 {
	return cosTheta / math.Pi
}

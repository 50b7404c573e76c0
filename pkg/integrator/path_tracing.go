package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// PathTracingIntegrator implements unidirectional path tracing by recursion:
// each bounce multiplies the material attenuation into the radiance of the
// scattered ray
type PathTracingIntegrator struct {
	Background Background
}

// NewPathTracingIntegrator creates a path tracer with the default sky
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{Background: DefaultBackground()}
}

// Li computes the radiance carried along ray
func (pt *PathTracingIntegrator) Li(ray core.Ray, accel geometry.Accelerator, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := accel.Hit(ray)
	if !isHit {
		return pt.Background.Evaluate(ray.Direction)
	}

	if hit.Object == nil || hit.Object.Material == nil {
		return core.Vec3{}
	}

	scatter, didScatter := hit.Object.Material.Scatter(ray, hit.HitRecord, sampler)
	if !didScatter {
		return core.Vec3{}
	}

	return core.MultiplyVec(scatter.Attenuation, pt.Li(scatter.Scattered, accel, sampler, depth-1))
}

// IterativePathTracingIntegrator computes the same estimate as
// PathTracingIntegrator with a loop over bounces, carrying the product of
// attenuations instead of growing the call stack. Both consume the sampler
// in the same order, so identical sample streams agree up to rounding.
type IterativePathTracingIntegrator struct {
	Background Background
}

// NewIterativePathTracingIntegrator creates an iterative path tracer with the default sky
func NewIterativePathTracingIntegrator() *IterativePathTracingIntegrator {
	return &IterativePathTracingIntegrator{Background: DefaultBackground()}
}

// Li computes the radiance carried along ray
func (it *IterativePathTracingIntegrator) Li(ray core.Ray, accel geometry.Accelerator, sampler core.Sampler, depth int) core.Vec3 {
	throughput := core.Splat(1)

	for ; depth > 0; depth-- {
		hit, isHit := accel.Hit(ray)
		if !isHit {
			return core.MultiplyVec(throughput, it.Background.Evaluate(ray.Direction))
		}

		if hit.Object == nil || hit.Object.Material == nil {
			return core.Vec3{}
		}

		scatter, didScatter := hit.Object.Material.Scatter(ray, hit.HitRecord, sampler)
		if !didScatter {
			return core.Vec3{}
		}

		throughput = core.MultiplyVec(throughput, scatter.Attenuation)
		ray = scatter.Scattered
	}

	return core.Vec3{}
}

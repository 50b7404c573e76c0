package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Li estimates the radiance arriving along ray using at most depth
	// scattering events
	Li(ray core.Ray, accel geometry.Accelerator, sampler core.Sampler, depth int) core.Vec3
}

// Background is the sky seen by rays that escape the scene: a vertical
// gradient from Bottom (straight down) to Top (straight up)
type Background struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// DefaultBackground fades from white at the horizon-down to sky blue overhead
func DefaultBackground() Background {
	return Background{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Evaluate returns the background radiance for a ray direction
func (b Background) Evaluate(direction core.Vec3) core.Vec3 {
	unit := direction.Normalize()
	t := 0.5 * (unit.Y + 1.0)
	return core.Lerp(b.Bottom, b.Top, t)
}

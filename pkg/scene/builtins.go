package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewFirstScene creates three spheres (diffuse, glass, polished metal)
// resting on a large ground sphere
func NewFirstScene() *Scene {
	s := New("first", CameraConfig{
		LookFrom: core.NewVec3(0, 0, 2),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     90,
	}, SamplingConfig{
		Width:           400,
		Height:          300,
		SamplesPerPixel: 100,
		MaxDepth:        10,
	})

	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialLeft := material.NewDielectric(1.5)
	materialRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	s.mustAdd(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100), materialGround)
	s.mustAdd(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5), materialCenter)
	s.mustAdd(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5), materialLeft)
	s.mustAdd(geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5), materialRight)

	return s
}

// NewRandomSpheresScene creates a field of small random spheres around three
// large feature spheres. The layout is fully determined by seed.
func NewRandomSpheresScene(seed int64) *Scene {
	s := New("spheres", CameraConfig{
		LookFrom: core.NewVec3(13, 3, 3),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     30,
	}, SamplingConfig{
		Width:           400,
		Height:          300,
		SamplesPerPixel: 50,
		MaxDepth:        50,
	})

	sampler := core.NewRandomSampler(seed)

	groundMaterial := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.mustAdd(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000), groundMaterial)

	// Every glass marble shares one material
	glass := material.NewDielectric(1.5)
	feature := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())

			if center.Sub(feature).Norm() <= 0.9 {
				continue
			}

			var sphereMaterial material.Material
			switch {
			case chooseMat < 0.8:
				// Diffuse
				c1 := core.NewVec3(sampler.Get1D(), sampler.Get1D(), sampler.Get1D())
				c2 := core.NewVec3(sampler.Get1D(), sampler.Get1D(), sampler.Get1D())
				sphereMaterial = material.NewLambertian(core.MultiplyVec(c1, c2))
			case chooseMat < 0.95:
				// Metal
				albedo := core.Splat(sampler.Get1D())
				fuzz := sampler.Get1D() * 0.5
				sphereMaterial = material.NewMetal(albedo, fuzz)
			default:
				sphereMaterial = glass
			}
			s.mustAdd(geometry.NewSphere(center, 0.2), sphereMaterial)
		}
	}

	s.mustAdd(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0), glass)
	s.mustAdd(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0), material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.mustAdd(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0), material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	return s
}

// NewGroundScene creates a single large diffuse ground sphere under an open sky
func NewGroundScene() *Scene {
	s := New("ground", CameraConfig{
		LookFrom: core.NewVec3(0, 0, 2),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     90,
	}, SamplingConfig{
		Width:           200,
		Height:          100,
		SamplesPerPixel: 16,
		MaxDepth:        10,
	})

	s.mustAdd(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100), material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))

	return s
}

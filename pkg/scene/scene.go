package scene

import (
	"errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	// ErrSceneFrozen is returned when objects are added after the BVH was built
	ErrSceneFrozen = errors.New("scene: cannot add objects after preprocessing")

	// ErrUnknownScene is returned when a scene name is not registered
	ErrUnknownScene = errors.New("scene: unknown scene")
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Objects        []*geometry.Object // Objects in insertion order
	Camera         CameraConfig
	SamplingConfig SamplingConfig
	BVH            *geometry.BVH // Built by Preprocess
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
	LeafCapacity    int // BVH leaf size, 0 for the default
}

// CameraConfig describes a look-at perspective camera
type CameraConfig struct {
	LookFrom core.Vec3
	LookAt   core.Vec3
	Up       core.Vec3
	VFov     float64 // Vertical field of view in degrees
}

// New creates an empty scene
func New(name string, camera CameraConfig, sampling SamplingConfig) *Scene {
	return &Scene{
		Name:           name,
		Objects:        make([]*geometry.Object, 0),
		Camera:         camera,
		SamplingConfig: sampling,
	}
}

// Add creates an object from a primitive and a material and appends it.
// The same primitive or material may be shared by any number of objects.
func (s *Scene) Add(primitive geometry.Primitive, mat material.Material) (*geometry.Object, error) {
	obj := geometry.NewObject(primitive, mat)
	if err := s.AddObject(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// AddObject appends an existing object
func (s *Scene) AddObject(obj *geometry.Object) error {
	if s.BVH != nil {
		return ErrSceneFrozen
	}
	s.Objects = append(s.Objects, obj)
	return nil
}

// mustAdd is used by the built-in scenes, which never add after preprocessing
func (s *Scene) mustAdd(primitive geometry.Primitive, mat material.Material) {
	if _, err := s.Add(primitive, mat); err != nil {
		panic(err)
	}
}

// Preprocess builds the acceleration structure. Calling it again is a no-op.
func (s *Scene) Preprocess() {
	if s.BVH != nil {
		return
	}
	s.BVH = geometry.NewBVHWithOptions(s.Objects, geometry.BuildOptions{
		LeafCapacity: s.SamplingConfig.LeafCapacity,
	})
}

// Accelerator returns the scene's BVH, building it on first use
func (s *Scene) Accelerator() geometry.Accelerator {
	s.Preprocess()
	return s.BVH
}

// PrimitiveCount returns the number of objects in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.Objects)
}

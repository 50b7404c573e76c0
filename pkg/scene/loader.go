package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrInvalidScene is wrapped by every validation failure in a scene file
var ErrInvalidScene = errors.New("scene: invalid scene description")

// File is the JSON form of a scene. Materials are declared once by name and
// referenced from any number of spheres.
type File struct {
	Name      string                  `json:"name"`
	Camera    CameraFile              `json:"camera"`
	Sampling  SamplingConfig          `json:"sampling"`
	Materials map[string]MaterialFile `json:"materials"`
	Spheres   []SphereFile            `json:"spheres"`
}

// CameraFile is the JSON form of CameraConfig
type CameraFile struct {
	LookFrom [3]float64 `json:"lookFrom"`
	LookAt   [3]float64 `json:"lookAt"`
	Up       [3]float64 `json:"up"`
	VFov     float64    `json:"vfov"`
}

// MaterialFile describes one material: "lambertian", "metal" or "dielectric"
type MaterialFile struct {
	Type   string     `json:"type"`
	Albedo [3]float64 `json:"albedo"`
	Fuzz   float64    `json:"fuzz"`
	IOR    float64    `json:"ior"`
}

// SphereFile places a sphere with a named material
type SphereFile struct {
	Center   [3]float64 `json:"center"`
	Radius   float64    `json:"radius"`
	Material string     `json:"material"`
}

// Load reads a scene from a JSON file.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a scene description from r and builds the scene
func Decode(r io.Reader) (*Scene, error) {
	var file File
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return file.Build()
}

// Build validates the description and constructs the scene
func (f *File) Build() (*Scene, error) {
	up := vec(f.Camera.Up)
	if up.Norm2() == 0 {
		up = core.NewVec3(0, 1, 0)
	}
	camera := CameraConfig{
		LookFrom: vec(f.Camera.LookFrom),
		LookAt:   vec(f.Camera.LookAt),
		Up:       up,
		VFov:     f.Camera.VFov,
	}
	if camera.LookFrom == camera.LookAt {
		return nil, fmt.Errorf("%w: camera lookFrom and lookAt coincide", ErrInvalidScene)
	}
	if camera.VFov <= 0 || camera.VFov >= 180 {
		return nil, fmt.Errorf("%w: vfov %g outside (0, 180)", ErrInvalidScene, camera.VFov)
	}

	materials := make(map[string]material.Material, len(f.Materials))
	for name, desc := range f.Materials {
		mat, err := desc.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	s := New(f.Name, camera, f.Sampling)
	for i, desc := range f.Spheres {
		mat, ok := materials[desc.Material]
		if !ok {
			return nil, fmt.Errorf("%w: sphere %d references unknown material %q", ErrInvalidScene, i, desc.Material)
		}
		if desc.Radius == 0 {
			return nil, fmt.Errorf("%w: sphere %d has zero radius", ErrInvalidScene, i)
		}
		if err := s.AddObject(geometry.NewObject(geometry.NewSphere(vec(desc.Center), desc.Radius), mat)); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (m MaterialFile) build() (material.Material, error) {
	switch m.Type {
	case "lambertian":
		return material.NewLambertian(vec(m.Albedo)), nil
	case "metal":
		return material.NewMetal(vec(m.Albedo), m.Fuzz), nil
	case "dielectric":
		if m.IOR <= 0 {
			return nil, fmt.Errorf("%w: dielectric needs a positive ior, got %g", ErrInvalidScene, m.IOR)
		}
		return material.NewDielectric(m.IOR), nil
	default:
		return nil, fmt.Errorf("%w: unknown material type %q", ErrInvalidScene, m.Type)
	}
}

func vec(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

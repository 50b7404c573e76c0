package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestPerspectiveCamera_GetRay(t *testing.T) {
	camera := NewPerspectiveCamera(
		core.NewVec3(0, 0, 2),
		core.NewVec3(0, 0, -1),
		core.NewVec3(0, 1, 0),
		90,
		1.0,
	)

	tests := []struct {
		name     string
		u, v     float64
		expected core.Vec3
	}{
		{"center", 0, 0, core.NewVec3(0, 0, -1)},
		{"top right", 1, 1, core.NewVec3(1, 1, -1).Normalize()},
		{"bottom left", -1, -1, core.NewVec3(-1, -1, -1).Normalize()},
		{"top edge", 0, 1, core.NewVec3(0, 1, -1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.u, tt.v)
			if ray.Origin != core.NewVec3(0, 0, 2) {
				t.Errorf("Expected origin at the eye, got %v", ray.Origin)
			}
			if ray.Direction.Sub(tt.expected).Norm() > 1e-12 {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestPerspectiveCamera_AspectAndFov(t *testing.T) {
	// Looking down -X with a 60 degree field of view and 2:1 aspect
	camera := NewPerspectiveCamera(core.NewVec3(5, 0, 0), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 60, 2.0)

	top := camera.GetRay(0, 1).Direction
	angle := math.Acos(top.Dot(core.NewVec3(-1, 0, 0)))
	if math.Abs(angle-math.Pi/6) > 1e-12 {
		t.Errorf("Expected half vertical fov of 30 degrees, got %f", angle*180/math.Pi)
	}

	right := camera.GetRay(1, 0).Direction
	halfWidth := 2.0 * math.Tan(math.Pi/6)
	if math.Abs(math.Abs(right.Z/right.X)-halfWidth) > 1e-12 {
		t.Errorf("Expected horizontal half extent %f, got %f", halfWidth, math.Abs(right.Z/right.X))
	}

	// Screen right is the camera's right: up x backward
	if right.Z >= 0 {
		t.Errorf("Expected u=1 to point toward -Z when looking down -X, got %v", right)
	}
}

package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Camera generates primary rays
type Camera interface {
	// GetRay returns the ray through screen position (u, v), where both
	// coordinates run from -1 to 1 and v=1 is the top of the image
	GetRay(u, v float64) core.Ray
}

// PerspectiveCamera is a pinhole camera with a look-at frame
type PerspectiveCamera struct {
	origin     core.Vec3
	u, v, w    core.Vec3 // right, up and backward axes of the camera frame
	halfWidth  float64
	halfHeight float64
}

// NewPerspectiveCamera creates a camera at lookFrom facing lookAt.
// vfov is the vertical field of view in degrees.
func NewPerspectiveCamera(lookFrom, lookAt, up core.Vec3, vfov, aspectRatio float64) *PerspectiveCamera {
	theta := vfov * math.Pi / 180.0
	halfHeight := math.Tan(theta / 2)

	w := lookFrom.Sub(lookAt).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	return &PerspectiveCamera{
		origin:     lookFrom,
		u:          u,
		v:          v,
		w:          w,
		halfWidth:  aspectRatio * halfHeight,
		halfHeight: halfHeight,
	}
}

// NewCameraFromConfig creates a camera from a scene's camera description
func NewCameraFromConfig(config scene.CameraConfig, aspectRatio float64) *PerspectiveCamera {
	return NewPerspectiveCamera(config.LookFrom, config.LookAt, config.Up, config.VFov, aspectRatio)
}

// GetRay generates a ray for screen coordinates (s, t) in [-1, 1]
func (c *PerspectiveCamera) GetRay(s, t float64) core.Ray {
	direction := c.u.Mul(s * c.halfWidth).
		Add(c.v.Mul(t * c.halfHeight)).
		Sub(c.w)

	return core.NewRay(c.origin, direction.Normalize())
}

package render

import (
	"errors"
	"math"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// ErrCameraAtCenter is returned for a camera or light placed on the point
// it looks at.
var ErrCameraAtCenter = errors.New("camera position equals its center")

// Camera looks from Position towards Center. Lights use the same type.
type Camera struct {
	Position math3d.Vec3
	Center   math3d.Vec3
}

// NewCamera creates a camera looking at the origin.
func NewCamera(position math3d.Vec3) Camera {
	return Camera{Position: position}
}

// Orbit places a camera on a sphere around center. yaw turns around the
// Y axis starting from +Z, pitch lifts towards +Y.
func Orbit(center math3d.Vec3, yaw, pitch, distance float64) Camera {
	cp := math.Cos(pitch)
	offset := math3d.V3(
		distance*cp*math.Sin(yaw),
		distance*math.Sin(pitch),
		distance*cp*math.Cos(yaw),
	)
	return Camera{Position: center.Add(offset), Center: center}
}

// Up returns +Y, or +Z when the camera looks straight along Y.
func (c Camera) Up() math3d.Vec3 {
	up := math3d.V3(0, 1, 0)
	if math3d.IsParallel(up, c.Position.Sub(c.Center)) {
		return math3d.V3(0, 0, 1)
	}
	return up
}

// ViewVector points from the center towards the camera.
func (c Camera) ViewVector() math3d.Vec3 {
	return c.Position.Sub(c.Center)
}

// Direction is the unit vector the camera looks along.
func (c Camera) Direction() math3d.Vec3 {
	return c.Center.Sub(c.Position).Normalize()
}

// ViewMatrix returns the camera's view transform.
func (c Camera) ViewMatrix() (math3d.Mat4, error) {
	if c.Position == c.Center {
		return math3d.Mat4{}, ErrCameraAtCenter
	}
	return math3d.ViewMatrix(c.Position, c.Center, c.Up())
}

package main

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/render"
)

// orbitAxis tracks one camera angle whose velocity decays towards zero
// through a critically damped spring.
type orbitAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // spring velocity of Velocity itself
}

func newOrbitAxis(fps int, position float64) orbitAxis {
	return orbitAxis{
		Position: position,
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

func (a *orbitAxis) update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

func (a *orbitAxis) moving() bool {
	return math.Abs(a.Velocity) > 1e-4
}

// maxPitch keeps the camera off the poles.
const maxPitch = 1.5

// orbit is a camera circling the origin at a fixed distance.
type orbit struct {
	Yaw, Pitch orbitAxis
	Distance   float64
	fps        int
	home       math3d.Vec3
}

// newOrbit starts an orbit at position.
func newOrbit(fps int, position math3d.Vec3) *orbit {
	o := &orbit{fps: fps, home: position}
	o.reset()
	return o
}

func (o *orbit) reset() {
	d := o.home.Len()
	o.Distance = d
	o.Yaw = newOrbitAxis(o.fps, math.Atan2(o.home.X, o.home.Z))
	o.Pitch = newOrbitAxis(o.fps, math.Asin(math3d.Clamp(o.home.Y/d, -1, 1)))
}

func (o *orbit) push(yaw, pitch float64) {
	o.Yaw.Velocity += yaw
	o.Pitch.Velocity += pitch
}

// update advances the springs and reports whether the camera moved.
func (o *orbit) update() bool {
	moved := o.Yaw.moving() || o.Pitch.moving()
	o.Yaw.update()
	o.Pitch.update()
	o.Pitch.Position = math3d.Clamp(o.Pitch.Position, -maxPitch, maxPitch)
	return moved
}

func (o *orbit) camera() math3d.Vec3 {
	return render.Orbit(math3d.Vec3{}, o.Yaw.Position, o.Pitch.Position, o.Distance).Position
}

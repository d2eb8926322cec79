package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

func TestOrbitStartsAtHome(t *testing.T) {
	home := math3d.V3(1, 1, 1)
	o := newOrbit(60, home)

	cam := o.camera()
	assert.InDelta(t, home.X, cam.X, 1e-9)
	assert.InDelta(t, home.Y, cam.Y, 1e-9)
	assert.InDelta(t, home.Z, cam.Z, 1e-9)
	assert.False(t, o.update())
}

func TestOrbitSettles(t *testing.T) {
	o := newOrbit(60, math3d.V3(0, 0, 3))
	o.push(0.2, 0)

	assert.True(t, o.update())
	for range 600 {
		o.update()
	}
	assert.False(t, o.Yaw.moving())
	assert.Greater(t, o.Yaw.Position, 0.2)
	assert.InDelta(t, 3, o.camera().Len(), 1e-9)

	o.reset()
	assert.InDelta(t, 0, o.Yaw.Position, 1e-12)
}

func TestOrbitPitchClamped(t *testing.T) {
	o := newOrbit(60, math3d.V3(0, 0, 3))
	o.push(0, 10)
	for range 600 {
		o.update()
	}
	assert.LessOrEqual(t, o.Pitch.Position, maxPitch)
}

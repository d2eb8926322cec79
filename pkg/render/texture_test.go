package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// createGradientTexture returns a 4x4 texture whose texel (x, y) is
// RGB(x, y, 0).
func createGradientTexture() *Image[color.RGBA] {
	img := NewImage[color.RGBA](4, 4)
	for y := range 4 {
		for x := range 4 {
			img.Set(x, y, RGB(uint8(x), uint8(y), 0))
		}
	}
	return img
}

func TestFindNearestTextureColor(t *testing.T) {
	tex := createGradientTexture()

	tests := []struct {
		name string
		st   math3d.Vec2
		x, y uint8
	}{
		{"origin", math3d.V2(0, 0), 0, 0},
		{"interior", math3d.V2(0.3, 0.6), 1, 2},
		{"upper edge", math3d.V2(1, 1), 0, 0},
		{"just below one", math3d.V2(0.99, 0.99), 3, 3},
		{"negative", math3d.V2(-0.1, -0.6), 3, 1},
		{"large", math3d.V2(7.3, 12.6), 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindNearestTextureColor(tt.st, tex)
			assert.Equal(t, RGB(tt.x, tt.y, 0), got)
		})
	}
}

func TestFindNearestTextureColorWraps(t *testing.T) {
	tex := createGradientTexture()
	for _, st := range []math3d.Vec2{
		math3d.V2(0.1, 0.1), math3d.V2(0.4, 0.9), math3d.V2(-0.3, 0.6),
		math3d.V2(2.6, -1.15), math3d.V2(-5.9, 3.35),
	} {
		shifted := st.Add(math3d.V2(1, 1))
		assert.Equal(t, FindNearestTextureColor(st, tex), FindNearestTextureColor(shifted, tex), "st %v", st)
	}
}

func TestTextureSample(t *testing.T) {
	repeat := NewTexture(createGradientTexture(), WrapRepeat)
	c, err := repeat.Sample(math3d.V2(1.3, -0.4))
	require.NoError(t, err)
	assert.Equal(t, RGB(1, 2, 0), c)

	strict := NewTexture(createGradientTexture(), WrapNone)
	c, err = strict.Sample(math3d.V2(1, 0.3))
	require.NoError(t, err)
	assert.Equal(t, RGB(3, 1, 0), c)

	_, err = strict.Sample(math3d.V2(1.3, 0.5))
	assert.ErrorIs(t, err, ErrTexCoordRange)
	_, err = strict.Sample(math3d.V2(0.5, -0.01))
	assert.ErrorIs(t, err, ErrTexCoordRange)
}

func TestColorHelpers(t *testing.T) {
	assert.Equal(t, color.RGBA{255, 150, 30, 255}, AddColor(color.RGBA{200, 100, 10, 255}, color.RGBA{100, 50, 20, 0}))
	assert.Equal(t, color.RGBA{20, 10, 1, 7}, ScaleColor(color.RGBA{200, 100, 10, 7}, 0.1))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, ScaleColor(color.RGBA{200, 0, 0, 255}, 2))

	v := ColorToVec(RGB(255, 0, 255))
	assert.InDelta(t, 1, v.X, 1e-9)
	assert.InDelta(t, -1, v.Y, 1e-9)
	assert.InDelta(t, 1, v.Z, 1e-9)
}

package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// ErrTexCoordRange is returned by non-wrapping samplers for coordinates
// outside [0,1].
var ErrTexCoordRange = errors.New("texture coordinate out of range")

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapNone                   // Reject coordinates outside [0,1]
)

// Texture is an RGBA image sampled with nearest-neighbor lookup.
type Texture struct {
	Image *Image[color.RGBA]
	Wrap  WrapMode
}

// NewTexture wraps img with the given wrap mode.
func NewTexture(img *Image[color.RGBA], wrap WrapMode) *Texture {
	return &Texture{Image: img, Wrap: wrap}
}

// Sample returns the texel at st.
func (t *Texture) Sample(st math3d.Vec2) (color.RGBA, error) {
	if t.Wrap == WrapNone {
		if st.X < 0 || st.X > 1 || st.Y < 0 || st.Y > 1 {
			return color.RGBA{}, fmt.Errorf("sample (%g, %g): %w", st.X, st.Y, ErrTexCoordRange)
		}
		return t.Image.At(texelCoord(st.X, t.Image.Width()), texelCoord(st.Y, t.Image.Height())), nil
	}
	return FindNearestTextureColor(st, t.Image), nil
}

// FindNearestTextureColor wraps st onto the unit torus and returns the
// texel containing it. Any finite st yields an in-bounds sample.
func FindNearestTextureColor[C Pixel](st math3d.Vec2, tex *Image[C]) C {
	x := texelCoord(wrapCoord(st.X), tex.Width())
	y := texelCoord(wrapCoord(st.Y), tex.Height())
	return tex.At(x, y)
}

// wrapCoord maps coord into [0,1).
func wrapCoord(coord float64) float64 {
	coord = math.Mod(coord, 1)
	if coord < 0 {
		coord++
	}
	return coord
}

// texelCoord truncates a coordinate in [0,1] to a pixel index in [0,size).
func texelCoord(coord float64, size int) int {
	return min(int(coord*float64(size)), size-1)
}

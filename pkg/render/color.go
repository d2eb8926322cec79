package render

import (
	"image/color"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorRed   = color.RGBA{255, 0, 0, 255}
	ColorGreen = color.RGBA{0, 255, 0, 255}
	ColorBlue  = color.RGBA{0, 0, 255, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// AddColor adds two colors channel by channel, saturating at 255.
func AddColor(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: clampChannel(float64(a.R) + float64(b.R)),
		G: clampChannel(float64(a.G) + float64(b.G)),
		B: clampChannel(float64(a.B) + float64(b.B)),
		A: clampChannel(float64(a.A) + float64(b.A)),
	}
}

// ScaleColor multiplies the RGB channels by s, keeping alpha.
func ScaleColor(c color.RGBA, s float64) color.RGBA {
	return color.RGBA{
		R: clampChannel(float64(c.R) * s),
		G: clampChannel(float64(c.G) * s),
		B: clampChannel(float64(c.B) * s),
		A: c.A,
	}
}

// ColorToVec decodes a normal map texel into a vector in [-1,1]^3.
func ColorToVec(c color.RGBA) math3d.Vec3 {
	return math3d.V3(
		float64(c.R)/255*2-1,
		float64(c.G)/255*2-1,
		float64(c.B)/255*2-1,
	)
}

func clampChannel(v float64) uint8 {
	return uint8(math3d.Clamp(v, 0, 255))
}

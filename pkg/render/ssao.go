package render

import (
	"image/color"
	"math"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

const (
	// ssaoContrast sharpens the falloff between open and occluded pixels.
	ssaoContrast  = 100
	ssaoNeighbors = 8
)

// SSAO estimates ambient occlusion from a camera depth buffer. Each covered
// pixel looks at its 8 neighbors and measures how far the surface around it
// rises above it; the more it is enclosed the darker the result. Pixels
// with zero depth stay zero.
func SSAO(zbuf *Image[color.Gray]) *Image[color.Gray] {
	w, h := zbuf.Width(), zbuf.Height()
	out := NewImage[color.Gray](w, h)

	for y := range h {
		for x := range w {
			z := float64(zbuf.At(x, y).Y)
			if z <= 0 {
				continue
			}

			var total float64
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 || !zbuf.InBounds(x+dx, y+dy) {
						continue
					}
					neighbor := float64(zbuf.At(x+dx, y+dy).Y)
					dist := math.Hypot(float64(dx), float64(dy))
					angle := max(0, math.Atan2((neighbor-z)/255, dist))
					total += math.Pi/2 - angle
				}
			}

			total /= math.Pi / 2 * ssaoNeighbors
			total = math.Pow(total, ssaoContrast)
			total = math3d.Smoothstep(0.05, 0.95, total)
			out.Set(x, y, color.Gray{Y: uint8(math.Round(total * 255))})
		}
	}
	return out
}

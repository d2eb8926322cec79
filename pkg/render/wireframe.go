package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// DrawWireframe runs the vertex stage of shader over model and draws the
// edges of every projected triangle in c. No depth test is performed.
func (p *Pipeline) DrawWireframe(model Model, shader Shader, img *Image[color.RGBA], c color.RGBA) error {
	faces := model.FaceCount()
	for i := range faces {
		var pts [3]math3d.Vec3
		for nth, v := range model.Face(i) {
			pos, err := shader.Vertex(p, v, nth)
			if err != nil {
				return fmt.Errorf("face %d vertex %d: %w", i, nth, err)
			}
			pts[nth] = pos
		}
		for j := range 3 {
			a, b := pts[j], pts[(j+1)%3]
			img.DrawLine(pixel(a.X), pixel(a.Y), pixel(b.X), pixel(b.Y), c)
		}
		if p.Progress != nil {
			p.Progress(i+1, faces)
		}
	}
	return nil
}

// pixel returns the index of the pixel containing screen coordinate v.
func pixel(v float64) int {
	return int(math.Floor(v))
}

package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/models"
)

// Model is what the pipeline needs from a mesh.
type Model interface {
	FaceCount() int
	Face(i int) [3]models.Vertex
}

// Shader is the programmable part of a pass.
//
// DrawModel calls Vertex exactly three times per triangle, with nth = 0, 1
// and 2, before calling Fragment for each covered pixel of that triangle.
// Whatever a shader keeps between the two stages is only valid for the
// triangle being drawn, so a shader instance must not be shared by two
// concurrent DrawModel calls.
type Shader interface {
	// Vertex returns the screen-space position of v: pixel x, pixel y and a
	// depth where larger means nearer.
	Vertex(p *Pipeline, v models.Vertex, nth int) (math3d.Vec3, error)
	// Fragment returns the color of the pixel at fragCoord, whose
	// barycentric weights within the current triangle are bar.
	Fragment(p *Pipeline, fragCoord, bar math3d.Vec3) (color.RGBA, error)
}

// Pipeline holds the uniform state shared by every shader invocation of a
// pass. It is read-only while DrawModel runs.
type Pipeline struct {
	Width  int
	Height int

	// Viewport maps NDC onto the Width×Height output with depth in [0,1].
	Viewport math3d.Mat4
	// VPM is the camera projection times view matrix.
	VPM math3d.Mat4
	// LightVPM is the light projection times view matrix.
	LightVPM math3d.Mat4

	LightDir   math3d.Vec3
	ViewVector math3d.Vec3

	Diffuse   *Image[color.RGBA]
	NormalMap *Image[color.RGBA]

	// ShadowMap is borrowed from the light pass of the same frame and must
	// be fully drawn before a pass reading it starts. Nil disables shadows.
	ShadowMap *Image[color.Gray]

	Shading Shading

	// Progress, when set, is called after each face.
	Progress func(face, faces int)
}

// NewPipeline returns a pipeline for a width×height output with default
// shading and identity transforms.
func NewPipeline(width, height int) *Pipeline {
	return &Pipeline{
		Width:    width,
		Height:   height,
		Viewport: math3d.Viewport(0, 0, float64(width), float64(height), 1),
		VPM:      math3d.Identity(),
		LightVPM: math3d.Identity(),
		Shading:  DefaultShading(),
	}
}

// Project maps a model-space position through m and the viewport to screen
// space.
func (p *Pipeline) Project(m math3d.Mat4, pos math3d.Vec3) (math3d.Vec3, error) {
	clip := p.Viewport.Mul(m).MulVec4(math3d.V4FromV3(pos, 1))
	return clip.ToNDC()
}

// DrawModel runs shader over every face of model, writing the nearest
// fragments into img and their depths into zbuf. Both buffers keep their
// previous contents, so callers clear them between independent passes.
func (p *Pipeline) DrawModel(model Model, shader Shader, img *Image[color.RGBA], zbuf *Image[color.Gray]) error {
	faces := model.FaceCount()
	for i := range faces {
		face := model.Face(i)
		var pts [3]math3d.Vec3
		for nth, v := range face {
			pos, err := shader.Vertex(p, v, nth)
			if err != nil {
				return fmt.Errorf("face %d vertex %d: %w", i, nth, err)
			}
			pts[nth] = pos
		}
		if err := p.drawTriangle(pts, shader, img, zbuf); err != nil {
			return fmt.Errorf("face %d: %w", i, err)
		}
		if p.Progress != nil {
			p.Progress(i+1, faces)
		}
	}
	return nil
}

// drawTriangle rasterizes one screen-space triangle. Pixel centers are
// tested against the triangle, then against the depth buffer, and only
// fragments that are nearer and not beyond the far plane are shaded.
func (p *Pipeline) drawTriangle(pts [3]math3d.Vec3, shader Shader, img *Image[color.RGBA], zbuf *Image[color.Gray]) error {
	// Only pixels present in both buffers can be drawn
	width := min(img.Width(), zbuf.Width())
	height := min(img.Height(), zbuf.Height())
	if width == 0 || height == 0 {
		return nil
	}
	xy := [3]math3d.Vec2{
		math3d.V2(pts[0].X, pts[0].Y),
		math3d.V2(pts[1].X, pts[1].Y),
		math3d.V2(pts[2].X, pts[2].Y),
	}

	// Bounding box, padded by one pixel and clamped to the buffer
	minX := clampInt(math.Floor(min3(pts[0].X, pts[1].X, pts[2].X))-1, width-1)
	maxX := clampInt(math.Ceil(max3(pts[0].X, pts[1].X, pts[2].X))+1, width-1)
	minY := clampInt(math.Floor(min3(pts[0].Y, pts[1].Y, pts[2].Y))-1, height-1)
	maxY := clampInt(math.Ceil(max3(pts[0].Y, pts[1].Y, pts[2].Y))+1, height-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			center := math3d.V2(float64(x)+0.5, float64(y)+0.5)
			bc := Barycentric(xy[0], xy[1], xy[2], center)
			if !covers(xy, bc) {
				continue
			}

			z := pts[0].Z*bc.X + pts[1].Z*bc.Y + pts[2].Z*bc.Z
			stored := float64(zbuf.At(x, y).Y) / 255
			if !(stored < z && z <= 1) {
				continue
			}

			frag := math3d.Interpolate(pts, bc)
			fragCoord := math3d.V3(max(0, frag.X), max(0, frag.Y), z)
			c, err := shader.Fragment(p, fragCoord, bc)
			if err != nil {
				return fmt.Errorf("fragment (%d, %d): %w", x, y, err)
			}
			img.Set(x, y, c)
			zbuf.Set(x, y, color.Gray{Y: uint8(z * 255)})
		}
	}
	return nil
}

// clampInt converts v to an int in [0, hi].
func clampInt(v float64, hi int) int {
	return int(math3d.Clamp(v, 0, float64(hi)))
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

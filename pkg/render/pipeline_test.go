package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/models"
)

// soup is a model made of independent triangles.
type soup [][3]models.Vertex

func (s soup) FaceCount() int              { return len(s) }
func (s soup) Face(i int) [3]models.Vertex { return s[i] }

func tri(a, b, c math3d.Vec3) [3]models.Vertex {
	return [3]models.Vertex{{Position: a}, {Position: b}, {Position: c}}
}

// screenShader treats vertex positions as screen coordinates and paints a
// constant color.
type screenShader struct {
	color     color.RGBA
	fragments int
}

func (s *screenShader) Vertex(_ *Pipeline, v models.Vertex, _ int) (math3d.Vec3, error) {
	return v.Position, nil
}

func (s *screenShader) Fragment(*Pipeline, math3d.Vec3, math3d.Vec3) (color.RGBA, error) {
	s.fragments++
	return s.color, nil
}

func createTestBuffers(w, h int) (*Image[color.RGBA], *Image[color.Gray]) {
	return NewImage[color.RGBA](w, h), NewImage[color.Gray](w, h)
}

func TestBarycentric(t *testing.T) {
	a, b, c := math3d.V2(0, 0), math3d.V2(10, 0), math3d.V2(0, 10)

	tests := []struct {
		name string
		p    math3d.Vec2
		want math3d.Vec3
	}{
		{"vertex a", a, math3d.V3(1, 0, 0)},
		{"vertex b", b, math3d.V3(0, 1, 0)},
		{"vertex c", c, math3d.V3(0, 0, 1)},
		{"edge midpoint", math3d.V2(5, 0), math3d.V3(0.5, 0.5, 0)},
		{"interior", math3d.V2(2, 3), math3d.V3(0.5, 0.2, 0.3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Barycentric(a, b, c, tt.p)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			assert.InDelta(t, tt.want.Z, got.Z, 1e-9)
		})
	}
}

func TestBarycentricPartitionOfUnity(t *testing.T) {
	tris := [][3]math3d.Vec2{
		{math3d.V2(0.3, 0.1), math3d.V2(17.2, 4.9), math3d.V2(5.5, 21.7)},
		{math3d.V2(5.5, 21.7), math3d.V2(17.2, 4.9), math3d.V2(0.3, 0.1)}, // clockwise
		{math3d.V2(-3, -3), math3d.V2(100, 2), math3d.V2(1, 50)},
	}
	for _, pts := range tris {
		for y := 0; y < 20; y++ {
			for x := 0; x < 20; x++ {
				p := math3d.V2(float64(x)+0.5, float64(y)+0.5)
				bc := Barycentric(pts[0], pts[1], pts[2], p)
				if bc.X <= 0 || bc.Y <= 0 || bc.Z <= 0 {
					continue
				}
				assert.InDelta(t, 1, bc.X+bc.Y+bc.Z, 1e-9, "barycentric(%v, %v) = %v", pts, p, bc)
			}
		}
	}
}

func TestBarycentricDegenerate(t *testing.T) {
	got := Barycentric(math3d.V2(0, 0), math3d.V2(1, 1), math3d.V2(2, 2), math3d.V2(1, 1))
	assert.Equal(t, math3d.V3(-1, 1, 1), got)
}

func TestEdgeFuncAntisymmetric(t *testing.T) {
	a, b := math3d.V2(0.1, 0.7), math3d.V2(3.3, 1.9)
	for _, p := range []math3d.Vec2{math3d.V2(0.5, 0.5), math3d.V2(2.5, 1.5), math3d.V2(-4, 8)} {
		assert.Equal(t, edgeFunc(a, b, p), -edgeFunc(b, a, p))
	}
}

func TestDrawModelSingleTriangle(t *testing.T) {
	img, zbuf := createTestBuffers(2, 2)
	shader := &screenShader{color: ColorRed}
	model := soup{tri(math3d.V3(0, 0, 0.5), math3d.V3(1, 0, 0.5), math3d.V3(0, 1, 0.5))}

	require.NoError(t, NewPipeline(2, 2).DrawModel(model, shader, img, zbuf))

	// Only pixel (0,0) has its center (0.5, 0.5) on the triangle.
	assert.Equal(t, ColorRed, img.At(0, 0))
	assert.Equal(t, uint8(127), zbuf.At(0, 0).Y)
	for _, p := range [][2]int{{1, 0}, {0, 1}, {1, 1}} {
		assert.Equal(t, color.RGBA{}, img.At(p[0], p[1]), "pixel %v", p)
		assert.Equal(t, uint8(0), zbuf.At(p[0], p[1]).Y, "depth %v", p)
	}
	assert.Equal(t, 1, shader.fragments)
}

func TestDrawModelDepthOrder(t *testing.T) {
	far := soup{tri(math3d.V3(-10, -10, 0.2), math3d.V3(30, -10, 0.2), math3d.V3(-10, 30, 0.2))}
	near := soup{tri(math3d.V3(-10, -10, 0.8), math3d.V3(30, -10, 0.8), math3d.V3(-10, 30, 0.8))}

	draw := func(first, second soup, c1, c2 color.RGBA) (*Image[color.RGBA], *Image[color.Gray]) {
		img, zbuf := createTestBuffers(4, 4)
		p := NewPipeline(4, 4)
		require.NoError(t, p.DrawModel(first, &screenShader{color: c1}, img, zbuf))
		require.NoError(t, p.DrawModel(second, &screenShader{color: c2}, img, zbuf))
		return img, zbuf
	}

	img1, z1 := draw(far, near, ColorRed, ColorBlue)
	img2, z2 := draw(near, far, ColorBlue, ColorRed)

	assert.Equal(t, img1, img2)
	assert.Equal(t, z1, z2)
	assert.Equal(t, ColorBlue, img1.At(2, 2))
	assert.Equal(t, uint8(204), z1.At(2, 2).Y)
}

func TestDrawModelSharedEdge(t *testing.T) {
	// A 4x4 square split along the diagonal, which passes through the
	// centers of pixels (0,0)..(3,3).
	lower := tri(math3d.V3(0, 0, 0.3), math3d.V3(4, 0, 0.3), math3d.V3(4, 4, 0.3))
	upper := tri(math3d.V3(0, 0, 0.6), math3d.V3(4, 4, 0.6), math3d.V3(0, 4, 0.6))

	for _, model := range []soup{{lower, upper}, {upper, lower}} {
		img, zbuf := createTestBuffers(4, 4)
		shader := &screenShader{color: ColorGreen}
		require.NoError(t, NewPipeline(4, 4).DrawModel(model, shader, img, zbuf))

		assert.Equal(t, 16, shader.fragments, "every pixel shaded exactly once")
		for y := range 4 {
			for x := range 4 {
				assert.Equal(t, ColorGreen, img.At(x, y))
			}
		}
	}
}

func TestDrawModelDepthRange(t *testing.T) {
	tests := []struct {
		name  string
		z     float64
		drawn bool
	}{
		{"beyond far plane", 1.5, false},
		{"at far plane", 1, true},
		{"behind empty buffer", 0, false},
		{"negative", -0.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, zbuf := createTestBuffers(4, 4)
			model := soup{tri(math3d.V3(-10, -10, tt.z), math3d.V3(30, -10, tt.z), math3d.V3(-10, 30, tt.z))}
			require.NoError(t, NewPipeline(4, 4).DrawModel(model, &screenShader{color: ColorRed}, img, zbuf))
			assert.Equal(t, tt.drawn, img.At(1, 1) == ColorRed)
		})
	}
}

func TestDrawModelOffscreen(t *testing.T) {
	img, zbuf := createTestBuffers(8, 8)
	model := soup{
		tri(math3d.V3(-50, -50, 0.5), math3d.V3(-40, -50, 0.5), math3d.V3(-50, -40, 0.5)),
		tri(math3d.V3(6, 6, 0.5), math3d.V3(20, 6, 0.5), math3d.V3(6, 20, 0.5)),
	}
	shader := &screenShader{color: ColorRed}
	require.NoError(t, NewPipeline(8, 8).DrawModel(model, shader, img, zbuf))
	assert.Equal(t, 4, shader.fragments)
	assert.Equal(t, ColorRed, img.At(7, 7))
}

func TestDrawModelMismatchedBuffers(t *testing.T) {
	img := NewImage[color.RGBA](4, 4)
	zbuf := NewImage[color.Gray](2, 2)
	model := soup{tri(math3d.V3(-1, -1, 0.5), math3d.V3(10, -1, 0.5), math3d.V3(-1, 10, 0.5))}
	shader := &screenShader{color: ColorRed}

	require.NotPanics(t, func() {
		require.NoError(t, NewPipeline(4, 4).DrawModel(model, shader, img, zbuf))
	})
	assert.Equal(t, 4, shader.fragments)
	assert.Equal(t, ColorRed, img.At(1, 1))
	assert.Equal(t, color.RGBA{}, img.At(2, 0))
	assert.Equal(t, color.RGBA{}, img.At(3, 3))
}

// recordingShader logs the order of stage calls.
type recordingShader struct {
	calls []string
}

func (s *recordingShader) Vertex(_ *Pipeline, v models.Vertex, nth int) (math3d.Vec3, error) {
	s.calls = append(s.calls, []string{"v0", "v1", "v2"}[nth])
	return v.Position, nil
}

func (s *recordingShader) Fragment(*Pipeline, math3d.Vec3, math3d.Vec3) (color.RGBA, error) {
	s.calls = append(s.calls, "f")
	return ColorWhite, nil
}

func TestDrawModelStageOrder(t *testing.T) {
	img, zbuf := createTestBuffers(2, 2)
	model := soup{
		tri(math3d.V3(0, 0, 0.5), math3d.V3(1, 0, 0.5), math3d.V3(0, 1, 0.5)),
		tri(math3d.V3(1, 1, 0.7), math3d.V3(2, 1, 0.7), math3d.V3(1, 2, 0.7)),
	}
	shader := &recordingShader{}
	var progress []int
	p := NewPipeline(2, 2)
	p.Progress = func(face, faces int) {
		assert.Equal(t, 2, faces)
		progress = append(progress, face)
	}
	require.NoError(t, p.DrawModel(model, shader, img, zbuf))

	assert.Equal(t, []string{"v0", "v1", "v2", "f", "v0", "v1", "v2", "f"}, shader.calls)
	assert.Equal(t, []int{1, 2}, progress)
}

func TestDrawModelVertexError(t *testing.T) {
	img, zbuf := createTestBuffers(2, 2)
	p := NewPipeline(2, 2)
	p.VPM = math3d.Mat4{}
	model := soup{tri(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))}

	err := p.DrawModel(model, ZShader{}, img, zbuf)
	assert.ErrorIs(t, err, math3d.ErrDivideByZero)
	assert.ErrorContains(t, err, "face 0 vertex 0")
}

func TestDrawWireframe(t *testing.T) {
	img := NewImage[color.RGBA](8, 8)
	model := soup{tri(math3d.V3(0, 0, 0), math3d.V3(7, 0, 0), math3d.V3(0, 7, 0))}

	require.NoError(t, NewPipeline(8, 8).DrawWireframe(model, &screenShader{}, img, ColorWhite))
	assert.Equal(t, ColorWhite, img.At(3, 0))
	assert.Equal(t, ColorWhite, img.At(0, 3))
	assert.Equal(t, ColorWhite, img.At(3, 4))
	assert.Equal(t, color.RGBA{}, img.At(2, 2))
}

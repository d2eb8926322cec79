package render

import (
	"fmt"
	"image/color"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/models"
)

// MainShader lights the model with Phong shading, tangent-space normal
// mapping and a shadow map lookup.
type MainShader struct {
	// Per-triangle varyings, written by Vertex for nth = 0..2.
	positions [3]math3d.Vec3
	normals   [3]math3d.Vec3
	uvs       [3]math3d.Vec2
}

// Vertex implements Shader.
func (s *MainShader) Vertex(p *Pipeline, v models.Vertex, nth int) (math3d.Vec3, error) {
	s.positions[nth] = v.Position
	s.normals[nth] = v.Normal
	s.uvs[nth] = v.UV
	return p.Project(p.VPM, v.Position)
}

// Fragment implements Shader.
func (s *MainShader) Fragment(p *Pipeline, _ math3d.Vec3, bar math3d.Vec3) (color.RGBA, error) {
	pos := math3d.Interpolate(s.positions, bar)
	normal := math3d.Interpolate(s.normals, bar).Normalize()
	uv := math3d.Interpolate2(s.uvs, bar)

	if p.NormalMap != nil {
		mapped, err := s.tangentNormal(normal, FindNearestTextureColor(uv, p.NormalMap))
		if err != nil {
			return color.RGBA{}, err
		}
		normal = mapped
	}

	base := ColorWhite
	if p.Diffuse != nil {
		base = FindNearestTextureColor(uv, p.Diffuse)
	}
	c := PhongColor(normal, p.ViewVector, p.LightDir, base, p.Shading.Phong)

	if p.ShadowMap != nil {
		shadowed, err := p.inShadow(pos)
		if err != nil {
			return color.RGBA{}, err
		}
		if shadowed {
			c = ScaleColor(c, p.Shading.ShadowAttenuation)
		}
	}
	return c, nil
}

// tangentNormal rotates a normal map texel from the triangle's Darboux
// frame into model space.
func (s *MainShader) tangentNormal(normal math3d.Vec3, texel color.RGBA) (math3d.Vec3, error) {
	darboux := math3d.Mat3FromRows(
		s.positions[1].Sub(s.positions[0]),
		s.positions[2].Sub(s.positions[0]),
		normal,
	)
	inv, err := darboux.Inverse()
	if err != nil {
		return math3d.Vec3{}, fmt.Errorf("darboux frame: %w", err)
	}

	du := s.uvs[1].Sub(s.uvs[0])
	dv := s.uvs[2].Sub(s.uvs[0])
	i := inv.MulVec3(math3d.V3(du.X, dv.X, 0)).Normalize()
	j := inv.MulVec3(math3d.V3(du.Y, dv.Y, 0)).Normalize()

	tn := ColorToVec(texel)
	return i.Scale(tn.X).Add(j.Scale(tn.Y)).Add(normal.Scale(tn.Z)).Normalize(), nil
}

// inShadow projects a model-space position into the shadow map. A texel
// the light pass never reached counts as shadowed, so a missing light pass
// darkens the whole frame instead of lighting it.
func (p *Pipeline) inShadow(pos math3d.Vec3) (bool, error) {
	sc := math3d.Viewport(0, 0, 1, 1, 255).Mul(p.LightVPM).MulVec4(math3d.V4FromV3(pos, 1))
	light, err := sc.ToNDC()
	if err != nil {
		return false, fmt.Errorf("shadow lookup: %w", err)
	}
	stored := FindNearestTextureColor(math3d.V2(light.X, light.Y), p.ShadowMap).Y
	if stored == 0 {
		return true, nil
	}
	return light.Z+p.Shading.ShadowBias < float64(stored), nil
}

// DepthShader renders the scene from the light. Only its depth output
// matters.
type DepthShader struct{}

// Vertex implements Shader.
func (DepthShader) Vertex(p *Pipeline, v models.Vertex, _ int) (math3d.Vec3, error) {
	return p.Project(p.LightVPM, v.Position)
}

// Fragment implements Shader.
func (DepthShader) Fragment(*Pipeline, math3d.Vec3, math3d.Vec3) (color.RGBA, error) {
	return ColorWhite, nil
}

// ZShader renders the scene from the camera into a depth buffer for
// ambient occlusion.
type ZShader struct{}

// Vertex implements Shader.
func (ZShader) Vertex(p *Pipeline, v models.Vertex, _ int) (math3d.Vec3, error) {
	return p.Project(p.VPM, v.Position)
}

// Fragment implements Shader.
func (ZShader) Fragment(*Pipeline, math3d.Vec3, math3d.Vec3) (color.RGBA, error) {
	return color.RGBA{}, nil
}

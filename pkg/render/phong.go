package render

import (
	"image/color"
	"math"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// Phong holds the coefficients of the Phong reflection model.
type Phong struct {
	Diffuse   float64 `yaml:"diffuse" toml:"diffuse"`
	Specular  float64 `yaml:"specular" toml:"specular"`
	Shininess float64 `yaml:"shininess" toml:"shininess"`
}

// DefaultPhong returns diffuse 1, specular 0.5 and shininess 16.
func DefaultPhong() Phong {
	return Phong{Diffuse: 1, Specular: 0.5, Shininess: 16}
}

// Shading groups the lighting constants of the main pass.
type Shading struct {
	Phong Phong `yaml:"phong" toml:"phong"`
	// ShadowBias is added to a fragment's light depth, in 0-255 units,
	// before comparing it with the shadow map.
	ShadowBias float64 `yaml:"shadow_bias" toml:"shadow_bias"`
	// ShadowAttenuation scales the color of shadowed fragments.
	ShadowAttenuation float64 `yaml:"shadow_attenuation" toml:"shadow_attenuation"`
}

// DefaultShading returns the default lighting constants.
func DefaultShading() Shading {
	return Shading{
		Phong:             DefaultPhong(),
		ShadowBias:        0.05 * 255,
		ShadowAttenuation: 0.1,
	}
}

// PhongColor lights base with one directional light. lightDir points from
// the light towards the scene and view points from the surface towards the
// viewer. normal is expected to be unit length.
func PhongColor(normal, view, lightDir math3d.Vec3, base color.RGBA, k Phong) color.RGBA {
	l := lightDir.Normalize()
	toLight := l.Negate()
	r := l.Reflect(normal)
	v := view.Normalize()

	diffuse := ScaleColor(base, k.Diffuse*max(0, normal.Dot(toLight)))
	specular := ScaleColor(ColorWhite, k.Specular*math.Pow(max(0, r.Dot(v)), k.Shininess))
	return AddColor(diffuse, specular)
}

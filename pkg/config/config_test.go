package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/render"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 800, cfg.Height)
	assert.Equal(t, [3]float64{1, 1, 1}, cfg.Camera)
	assert.Equal(t, [3]float64{0, 0, -2}, cfg.Light)
	assert.Equal(t, render.DefaultShading(), cfg.Shading)

	// Everything but the model is usable as is.
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	cfg.Model = "head.obj"
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "scene.yaml", `
width: 320
height: 240
model: head.obj
normal_map: head_nm.tga
camera: [0, 0, 3]
shading:
  shadow_bias: 5
  phong:
    shininess: 8
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 240, cfg.Height)
	assert.Equal(t, "head.obj", cfg.Model)
	assert.Equal(t, "head_nm.tga", cfg.NormalMap)
	assert.Empty(t, cfg.Diffuse)
	assert.Equal(t, [3]float64{0, 0, 3}, cfg.Camera)
	assert.Equal(t, [3]float64{0, 0, -2}, cfg.Light)
	assert.InDelta(t, 5, cfg.Shading.ShadowBias, 1e-12)
	assert.InDelta(t, 8, cfg.Shading.Phong.Shininess, 1e-12)
	assert.InDelta(t, 0.1, cfg.Shading.ShadowAttenuation, 1e-12)
	require.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "scene.toml", `
width = 64
height = 32
model = "cube.glb"
light = [1.0, 1.0, 0.0]

[shading.phong]
specular = 0.0
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
	assert.Equal(t, "cube.glb", cfg.Model)
	assert.Equal(t, [3]float64{1, 1, 0}, cfg.Light)
	assert.Zero(t, cfg.Shading.Phong.Specular)
	assert.InDelta(t, 1, cfg.Shading.Phong.Diffuse, 1e-12)

	opts := cfg.RenderOptions()
	assert.Equal(t, math3d.V3(1, 1, 0), opts.Light)
	assert.Equal(t, math3d.V3(1, 1, 1), opts.Camera)
	assert.Equal(t, 64, opts.Width)
}

func TestLoadHomeExpansion(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, "scene.yml", "model: ~/head.obj\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.NotContains(t, cfg.Model, "~")
	assert.Equal(t, "head.obj", filepath.Base(cfg.Model))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "scene.json", "{}"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(writeFile(t, "scene.yaml", "width: [1, 2]\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"no model", func(c *Config) { c.Model = "" }},
		{"camera at origin", func(c *Config) { c.Camera = [3]float64{} }},
		{"light at origin", func(c *Config) { c.Light = [3]float64{} }},
		{"negative shininess", func(c *Config) { c.Shading.Phong.Shininess = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Model = "head.obj"
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

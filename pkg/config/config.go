// Package config loads tinyrender scene files.
//
// A scene file is YAML or TOML, picked by extension:
//
//	width: 800
//	height: 800
//	model: ~/models/head.obj
//	diffuse: ~/models/head_diffuse.tga
//	normal_map: ~/models/head_nm_tangent.tga
//	camera: [1, 1, 1]
//	light: [0, 0, -2]
//	output: out
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/render"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config describes one frame.
type Config struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`

	Model     string `yaml:"model" toml:"model"`
	Diffuse   string `yaml:"diffuse,omitempty" toml:"diffuse,omitempty"`
	NormalMap string `yaml:"normal_map,omitempty" toml:"normal_map,omitempty"`

	Camera [3]float64 `yaml:"camera" toml:"camera"`
	Light  [3]float64 `yaml:"light" toml:"light"`

	// Output is the directory the PNG files are written to.
	Output string `yaml:"output" toml:"output"`

	Shading render.Shading `yaml:"shading" toml:"shading"`
}

// Default returns an 800x800 scene with the camera at (1,1,1) and the light
// at (0,0,-2), writing into the working directory.
func Default() Config {
	opts := render.DefaultRenderOptions()
	return Config{
		Width:   opts.Width,
		Height:  opts.Height,
		Camera:  [3]float64{opts.Camera.X, opts.Camera.Y, opts.Camera.Z},
		Light:   [3]float64{opts.Light.X, opts.Light.Y, opts.Light.Z},
		Output:  ".",
		Shading: opts.Shading,
	}
}

// Load reads a scene file on top of the defaults. Keys missing from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	path, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("expand %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config format %q: %w", ext, ErrInvalidConfig)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.expandPaths(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Model, &c.Diffuse, &c.NormalMap, &c.Output} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expand %s: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate reports the first problem that would make the scene
// unrenderable.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Model == "":
		return fmt.Errorf("%w: no model", ErrInvalidConfig)
	case c.Camera == [3]float64{}:
		return fmt.Errorf("%w: camera at the origin", ErrInvalidConfig)
	case c.Light == [3]float64{}:
		return fmt.Errorf("%w: light at the origin", ErrInvalidConfig)
	case c.Shading.Phong.Shininess < 0:
		return fmt.Errorf("%w: negative shininess", ErrInvalidConfig)
	}
	return nil
}

// RenderOptions converts the scene into options for render.RenderModel.
func (c Config) RenderOptions() render.RenderOptions {
	return render.RenderOptions{
		Width:   c.Width,
		Height:  c.Height,
		Camera:  math3d.V3(c.Camera[0], c.Camera[1], c.Camera[2]),
		Light:   math3d.V3(c.Light[0], c.Light[1], c.Light[2]),
		Shading: c.Shading,
	}
}

package main

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taigrr/tinyrender/pkg/config"
	"github.com/taigrr/tinyrender/pkg/models"
	"github.com/taigrr/tinyrender/pkg/render"
)

// sceneFlags are the flags shared by render and view. Any flag set on the
// command line overrides the scene file.
type sceneFlags struct {
	config    string
	width     int
	height    int
	diffuse   string
	normalMap string
	camera    []float64
	light     []float64
	normalize bool
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	defaults := config.Default()
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "Scene file (YAML or TOML)")
	fl.IntVar(&f.width, "width", defaults.Width, "Frame width in pixels")
	fl.IntVar(&f.height, "height", defaults.Height, "Frame height in pixels")
	fl.StringVar(&f.diffuse, "diffuse", "", "Diffuse texture")
	fl.StringVar(&f.normalMap, "normal-map", "", "Tangent-space normal map")
	fl.Float64SliceVar(&f.camera, "camera", defaults.Camera[:], "Camera position x,y,z")
	fl.Float64SliceVar(&f.light, "light", defaults.Light[:], "Light position x,y,z")
	fl.BoolVar(&f.normalize, "normalize", true, "Fit the model into [-1,1] before rendering")
}

// load builds the scene from the config file, the flags and the optional
// model argument, in that order of precedence.
func (f *sceneFlags) load(cmd *cobra.Command, args []string) (config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return cfg, err
		}
		slog.Debug("loaded scene", "path", f.config)
	}

	fl := cmd.Flags()
	if fl.Changed("width") {
		cfg.Width = f.width
	}
	if fl.Changed("height") {
		cfg.Height = f.height
	}
	if fl.Changed("diffuse") {
		cfg.Diffuse = f.diffuse
	}
	if fl.Changed("normal-map") {
		cfg.NormalMap = f.normalMap
	}
	if fl.Changed("camera") {
		if err := setVec(&cfg.Camera, f.camera); err != nil {
			return cfg, fmt.Errorf("--camera: %w", err)
		}
	}
	if fl.Changed("light") {
		if err := setVec(&cfg.Light, f.light); err != nil {
			return cfg, fmt.Errorf("--light: %w", err)
		}
	}
	if len(args) > 0 {
		cfg.Model = args[0]
	}
	return cfg, cfg.Validate()
}

func setVec(dst *[3]float64, v []float64) error {
	if len(v) != 3 {
		return fmt.Errorf("want 3 components, got %d", len(v))
	}
	copy(dst[:], v)
	return nil
}

// assets holds everything RenderModel needs besides the options.
type assets struct {
	mesh      *models.Mesh
	diffuse   *render.Image[color.RGBA]
	normalMap *render.Image[color.RGBA]
}

func loadAssets(cfg config.Config, normalize bool) (*assets, error) {
	mesh, err := models.Load(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if normalize {
		mesh.Normalize()
	}
	slog.Info("loaded model", "path", cfg.Model, "vertices", len(mesh.Vertices), "faces", mesh.FaceCount())

	a := &assets{mesh: mesh}
	switch {
	case cfg.Diffuse != "":
		if a.diffuse, err = render.LoadImage(cfg.Diffuse); err != nil {
			return nil, err
		}
	case mesh.DiffuseMap != nil:
		a.diffuse = render.FromImage(mesh.DiffuseMap)
		slog.Debug("using embedded texture", "width", a.diffuse.Width(), "height", a.diffuse.Height())
	}
	if cfg.NormalMap != "" {
		if a.normalMap, err = render.LoadImage(cfg.NormalMap); err != nil {
			return nil, err
		}
	}
	return a, nil
}

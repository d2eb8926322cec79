package main

import (
	"fmt"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/tinyrender/pkg/render"
)

type renderFlags struct {
	scene     sceneFlags
	output    string
	composite bool
	wireframe bool
	quiet     bool
}

func newRenderCmd() *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render [model]",
		Short: "Render a model to PNG files",
		Long: `Render a model with shadows and ambient occlusion.

Writes output.png along with the intermediate buffers z_buffer.png,
shadow_map.png and ao.png into the output directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.scene.load(cmd, args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = f.output
			}
			a, err := loadAssets(cfg, f.scene.normalize)
			if err != nil {
				return err
			}

			opts := cfg.RenderOptions()
			var bar *progressbar.ProgressBar
			if !f.quiet {
				bar = newPassBar(3 * a.mesh.FaceCount())
				opts.Progress = passProgress(bar)
			}

			start := time.Now()
			res, err := render.RenderModel(a.mesh, a.diffuse, a.normalMap, opts)
			if bar != nil {
				_ = bar.Finish()
			}
			if err != nil {
				return err
			}
			slog.Info("rendered frame", "width", cfg.Width, "height", cfg.Height, "elapsed", time.Since(start))

			outputs := map[string]imageWriter{
				"output.png":     res.Frame,
				"z_buffer.png":   res.ZBuffer,
				"shadow_map.png": res.ShadowMap,
				"ao.png":         res.AO,
			}
			if f.composite {
				outputs["composite.png"] = compositeWriter{res}
			}
			if f.wireframe {
				wire, err := drawWireframe(a, opts)
				if err != nil {
					return err
				}
				outputs["wireframe.png"] = wire
			}
			return writeOutputs(cfg.Output, outputs)
		},
	}
	f.scene.register(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", ".", "Output directory")
	cmd.Flags().BoolVar(&f.composite, "composite", false, "Also write the frame multiplied by ambient occlusion")
	cmd.Flags().BoolVar(&f.wireframe, "wireframe", false, "Also write a wireframe of the camera view")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "Hide the progress bar")
	return cmd
}

func newPassBar(faces int) *progressbar.ProgressBar {
	return progressbar.NewOptions(faces,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("rendering"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// passProgress advances bar once per face of every pass. The shadow and
// depth passes report from different goroutines.
func passProgress(bar *progressbar.ProgressBar) func(render.Pass, int, int) {
	var mu sync.Mutex
	current := render.Pass("")
	return func(pass render.Pass, _, _ int) {
		mu.Lock()
		defer mu.Unlock()
		if pass != current {
			current = pass
			bar.Describe(string(pass) + " pass")
		}
		_ = bar.Add(1)
	}
}

func drawWireframe(a *assets, opts render.RenderOptions) (*render.Image[color.RGBA], error) {
	p, err := render.Setup(opts)
	if err != nil {
		return nil, err
	}
	img := render.NewImage[color.RGBA](opts.Width, opts.Height)
	img.Fill(render.ColorBlack)
	if err := p.DrawWireframe(a.mesh, render.ZShader{}, img, render.ColorGreen); err != nil {
		return nil, fmt.Errorf("wireframe: %w", err)
	}
	return img, nil
}

type imageWriter interface {
	SavePNG(path string) error
}

type compositeWriter struct{ res *render.Result }

func (c compositeWriter) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, c.res.Composite()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// writeOutputs encodes every image into dir concurrently.
func writeOutputs(dir string, outputs map[string]imageWriter) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	var g errgroup.Group
	for name, img := range outputs {
		path := filepath.Join(dir, name)
		g.Go(func() error {
			if err := img.SavePNG(path); err != nil {
				return fmt.Errorf("write %s: %w", name, err)
			}
			slog.Debug("wrote image", "path", path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("wrote images", "dir", dir, "count", len(outputs))
	return nil
}

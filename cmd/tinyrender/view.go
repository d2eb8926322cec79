package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/taigrr/tinyrender/pkg/config"
	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/render"
)

type viewFlags struct {
	scene sceneFlags
	fps   int
	scale int
	watch bool
}

func newViewCmd() *cobra.Command {
	var f viewFlags
	cmd := &cobra.Command{
		Use:   "view [model]",
		Short: "Preview a model in the terminal",
		Long: `Preview a model in the terminal.

Controls:
  Arrows / WASD  Orbit the camera
  R              Reset the camera
  Q / Esc        Quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.scene.load(cmd, args)
			if err != nil {
				return err
			}
			a, err := loadAssets(cfg, f.scene.normalize)
			if err != nil {
				return err
			}

			var reload <-chan struct{}
			if f.watch && f.scene.config != "" {
				ch, err := watchFile(cmd.Context(), f.scene.config)
				if err != nil {
					return err
				}
				reload = ch
			}

			v := &viewer{
				flags:  &f,
				cmd:    cmd,
				args:   args,
				cfg:    cfg,
				assets: a,
				orbit:  newOrbit(f.fps, math3d.V3(cfg.Camera[0], cfg.Camera[1], cfg.Camera[2])),
			}
			return v.run(cmd.Context(), reload)
		},
	}
	f.scene.register(cmd)
	cmd.Flags().IntVar(&f.fps, "fps", 30, "Target frames per second")
	cmd.Flags().IntVar(&f.scale, "scale", 1, "Supersampling factor")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Reload the scene file when it changes")
	return cmd
}

// viewer owns the terminal session of the view command.
type viewer struct {
	flags  *viewFlags
	cmd    *cobra.Command
	args   []string
	cfg    config.Config
	assets *assets
	orbit  *orbit

	term          *uv.Terminal
	width, height int
}

func (v *viewer) run(ctx context.Context, reload <-chan struct{}) error {
	v.term = uv.DefaultTerminal()

	width, height, err := v.term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	v.width, v.height = width, height

	if err := v.term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	v.term.EnterAltScreen()
	v.term.HideCursor()
	v.term.Resize(width, height)
	defer func() {
		v.term.ExitAltScreen()
		v.term.ShowCursor()
		v.term.Shutdown(context.Background())
	}()

	ticker := time.NewTicker(time.Second / time.Duration(max(v.flags.fps, 1)))
	defer ticker.Stop()

	const impulse = 0.05
	dirty := true
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-reload:
			if err := v.reload(); err != nil {
				slog.Warn("reload failed", "error", err)
				continue
			}
			dirty = true

		case ev := <-v.term.Events():
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				v.width, v.height = ev.Width, ev.Height
				v.term.Erase()
				v.term.Resize(v.width, v.height)
				dirty = true
			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("q", "escape", "ctrl+c"):
					return nil
				case ev.MatchString("r"):
					v.orbit.reset()
					dirty = true
				case ev.MatchString("a", "left"):
					v.orbit.push(-impulse, 0)
				case ev.MatchString("d", "right"):
					v.orbit.push(impulse, 0)
				case ev.MatchString("w", "up"):
					v.orbit.push(0, impulse)
				case ev.MatchString("s", "down"):
					v.orbit.push(0, -impulse)
				}
			}

		case <-ticker.C:
			if v.orbit.update() {
				dirty = true
			}
			if !dirty {
				continue
			}
			dirty = false
			if err := v.draw(); err != nil {
				return err
			}
		}
	}
}

// draw renders one frame at the terminal's resolution. Each cell holds two
// pixel rows.
func (v *viewer) draw() error {
	scale := max(v.flags.scale, 1)
	w, h := v.width, v.height*2
	if w <= 0 || h <= 0 {
		return nil
	}

	opts := v.cfg.RenderOptions()
	opts.Width, opts.Height = w*scale, h*scale
	opts.Camera = v.orbit.camera()

	res, err := render.RenderModel(v.assets.mesh, v.assets.diffuse, v.assets.normalMap, opts)
	if err != nil {
		return err
	}
	frame := render.Fit(res.Frame, w, h)
	frame.Draw(v.term, uv.Rect(0, 0, v.width, v.height))
	return v.term.Display()
}

func (v *viewer) reload() error {
	cfg, err := v.flags.scene.load(v.cmd, v.args)
	if err != nil {
		return err
	}
	a, err := loadAssets(cfg, v.flags.scene.normalize)
	if err != nil {
		return err
	}
	v.cfg, v.assets = cfg, a
	v.orbit.Distance = math3d.V3(cfg.Camera[0], cfg.Camera[1], cfg.Camera[2]).Len()
	return nil
}

// watchFile signals on the returned channel whenever path is written.
func watchFile(ctx context.Context, path string) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					// Renames and removes drop the watch; re-add the new file.
					if event.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
						_ = watcher.Add(path)
					}
					continue
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("watcher error", "error", err)
			}
		}
	}()
	return ch, nil
}

// tinyrender - software rasterizer with shadows and ambient occlusion
//
// Renders OBJ and glTF models on the CPU in three passes: a shadow map
// from the light, a camera depth buffer for screen-space ambient occlusion,
// and a Phong-shaded color pass with normal mapping.
//
// Usage:
//
//	tinyrender render [model] [flags]   Write output.png and the pass buffers
//	tinyrender view [model] [flags]     Orbit the model in the terminal
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tinyrender",
		Short: "Software rasterizer with shadow mapping and ambient occlusion",
		PersistentPreRun: func(*cobra.Command, []string) {
			setupLogging(verbose)
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newRenderCmd(), newViewCmd())
	return root
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// Command mandelbrot opens a window showing the Mandelbrot set and lets you
// explore it with the keyboard and mouse. The snapshot subcommand renders a
// view to an image file on the CPU.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/mandelbrot"
)

func mainCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)
	def := defaultConfig()
	f := windowFlags{
		width:  def.Window.Width,
		height: def.Window.Height,
		title:  def.Window.Title,
	}

	cmd := &cobra.Command{
		Use:   "mandelbrot",
		Short: "Explore the Mandelbrot set on the GPU",
		Long: `Explore the Mandelbrot set on the GPU.

Controls:
  = / -, scroll wheel   zoom in / out
  W A S D              move
  left mouse drag      pan
  Esc                  quit`,
		Args: cobra.ExactArgs(0),
		PersistentPreRun: func(*cobra.Command, []string) {
			setupLogging(verbose)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true
			c, err := resolveConfig(configPath)
			if err != nil {
				return err
			}
			return runWindow(f.apply(cmd.Flags(), c))
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file with window, control and color settings")

	flags := cmd.Flags()
	flags.IntVar(&f.width, "width", f.width, "initial window width")
	flags.IntVar(&f.height, "height", f.height, "initial window height")
	flags.StringVar(&f.title, "title", f.title, "window title")

	cmd.AddCommand(snapshotCmd(), backendsCmd(), configCmd(&configPath))
	return cmd
}

// resolveConfig returns the defaults when path is empty.
func resolveConfig(path string) (config, error) {
	if path == "" {
		return defaultConfig(), nil
	}
	return loadConfig(path)
}

func configCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			c, err := resolveConfig(*path)
			if err != nil {
				return err
			}
			return writeConfig(cmd.OutOrStdout(), c)
		},
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	mandelbrot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}

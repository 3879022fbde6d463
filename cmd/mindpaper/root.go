package main

import (
	"context"
	"fmt"

	"github.com/phanxgames/mindpaper"
	"github.com/phanxgames/mindpaper/canvas"
	"github.com/phanxgames/mindpaper/internal/config"
	"github.com/phanxgames/mindpaper/internal/ui"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "mindpaper",
		Short: "mindpaper: mind maps on an infinite canvas",
		Long: ui.Brand.Sprint("mindpaper") + " draws mind maps you can pan, zoom and edit\n" +
			ui.Subtle.Sprint("Open a map, export it as PNG or SVG, or run the note list"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cmd.SetContext(withConfig(cmd.Context(), cfg))
			return nil
		},
	}
	root.SetVersionTemplate("mindpaper {{ .Version }}\n")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.Path()+")")

	root.AddCommand(
		canvasCmd(),
		exportCmd(),
		notesCmd(),
		serveCmd(),
		configCmd(),
	)

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\nrun '%s --help' for usage", err, cmd.CommandPath())
	})
	return root
}

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom returns the configuration loaded by the root command.
func configFrom(cmd *cobra.Command) *config.Config {
	if ctx := cmd.Context(); ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
			return cfg
		}
	}
	return config.Default()
}

// loadConfig reads path, or the default location when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load(), nil
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// canvasConfig maps the file configuration onto the canvas window.
func canvasConfig(cfg *config.Config) (canvas.Config, error) {
	theme := mindpaper.DefaultTheme()
	if cfg.Canvas.Background != "" {
		bg, err := mindpaper.ParseHexColor(cfg.Canvas.Background)
		if err != nil {
			return canvas.Config{}, fmt.Errorf("canvas.background: %w", err)
		}
		theme.Background = bg
	}
	g := cfg.Gesture
	return canvas.Config{
		Width:   cfg.Canvas.Width,
		Height:  cfg.Canvas.Height,
		Title:   cfg.Canvas.Title,
		ShowFPS: cfg.Canvas.ShowFPS,
		Debug:   cfg.Canvas.Debug,
		Theme:   theme,
		Gesture: mindpaper.GestureConfig{
			DoubleTapWindow: g.DoubleTap(),
			LongPressDelay:  g.LongPress(),
			MoveThreshold:   g.MoveThreshold,
			DragDeadZone:    g.DragDeadZone,
		},
		ZoomStep: g.WheelStep,
		MinZoom:  g.MinZoom,
		MaxZoom:  g.MaxZoom,
	}, nil
}

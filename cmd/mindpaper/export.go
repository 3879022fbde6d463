package main

import (
	"errors"
	"fmt"

	"github.com/phanxgames/mindpaper"
	"github.com/phanxgames/mindpaper/export"
	"github.com/phanxgames/mindpaper/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func exportCmd() *cobra.Command {
	var (
		outputs   []string
		scale     float64
		padding   float64
		fontSize  float64
		expandAll bool
	)

	cmd := &cobra.Command{
		Use:   "export [map-file]",
		Short: "Render a mind map to PNG or SVG",
		Long: `Render the drawable part of a mind map to one or more image files.
Collapsed branches stay hidden unless --expand-all is given.

  mindpaper export plan.yaml -o plan.png
  mindpaper export plan.yaml -o plan.png -o plan.svg --scale 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(outputs) == 0 {
				return errors.New("at least one --output is required")
			}
			var file string
			if len(args) == 1 {
				file = args[0]
			}
			tree, err := openTree(file)
			if err != nil {
				return err
			}
			if expandAll {
				tree = mindpaper.SetAllExpanded(tree, true)
			}

			opts := export.DefaultOptions()
			opts.Scale, opts.Padding, opts.FontSize = scale, padding, fontSize
			cc, err := canvasConfig(configFrom(cmd))
			if err != nil {
				return err
			}
			opts.Theme = cc.Theme

			var g errgroup.Group
			for _, out := range outputs {
				g.Go(func() error {
					if err := export.WriteFile(out, tree, opts); err != nil {
						return fmt.Errorf("%s: %w", out, err)
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			for _, out := range outputs {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", ui.Check(true), out)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&outputs, "output", "o", nil, "output file (.png or .svg), repeatable")
	cmd.Flags().Float64Var(&scale, "scale", 1, "scale factor")
	cmd.Flags().Float64Var(&padding, "padding", 24, "padding around the map in canvas units")
	cmd.Flags().Float64Var(&fontSize, "font-size", 13, "label size in points")
	cmd.Flags().BoolVar(&expandAll, "expand-all", false, "expand every branch before rendering")
	return cmd
}

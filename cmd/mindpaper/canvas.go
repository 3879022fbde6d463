package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/phanxgames/mindpaper"
	"github.com/phanxgames/mindpaper/canvas"
	"github.com/phanxgames/mindpaper/internal/watch"
	"github.com/spf13/cobra"
)

const reloadDebounce = 150 * time.Millisecond

func canvasCmd() *cobra.Command {
	var (
		file      string
		script    string
		watchFile bool
		exitAfter bool
		edit      bool
		writeBack bool
		debug     bool
	)

	cmd := &cobra.Command{
		Use:   "canvas",
		Short: "Open a mind map in the canvas window",
		Long: `Open a mind map in an editor window. Without --file the built-in
sample map is shown.

  mindpaper canvas                        # sample map
  mindpaper canvas -f plan.yaml --watch   # reload when plan.yaml changes
  mindpaper canvas -f plan.json --edit --write
  mindpaper canvas --script taps.json --exit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if watchFile && file == "" {
				return errors.New("--watch needs --file")
			}
			if writeBack && file == "" {
				return errors.New("--write needs --file")
			}

			tree, err := openTree(file)
			if err != nil {
				return err
			}
			cfg, err := canvasConfig(configFrom(cmd))
			if err != nil {
				return err
			}
			cfg.EditMode = edit
			cfg.Debug = cfg.Debug || debug
			if cfg.Debug {
				mindpaper.SetLogOutput(cmd.ErrOrStderr())
			}
			if script != "" {
				if cfg.Script, err = os.ReadFile(script); err != nil {
					return fmt.Errorf("read script: %w", err)
				}
			}

			if watchFile {
				w, err := watch.New(file, reloadDebounce)
				if err != nil {
					return err
				}
				defer w.Close()
				cfg.Reloads = w.Reloads()
			}

			latest, changed := tree, false
			cfg.OnChange = func(t mindpaper.FlatTree) {
				latest, changed = t, true
			}

			if err := canvas.Run(tree, cfg, exitAfter); err != nil {
				return err
			}
			if writeBack && changed {
				if err := mindpaper.SaveTreeFile(file, latest); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", file)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "mind map file (.json, .yaml)")
	cmd.Flags().StringVar(&script, "script", "", "JSON input script to replay")
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "reload the map when the file changes")
	cmd.Flags().BoolVar(&exitAfter, "exit", false, "close the window when the script finishes")
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "start in edit mode")
	cmd.Flags().BoolVar(&writeBack, "write", false, "write the edited map back to --file on exit")
	cmd.Flags().BoolVar(&debug, "debug", false, "log gestures and edits to stderr")
	return cmd
}

// openTree loads path, or the sample map when path is empty.
func openTree(path string) (mindpaper.FlatTree, error) {
	if path == "" {
		return mindpaper.Flatten(mindpaper.SampleTree()), nil
	}
	t, err := mindpaper.LoadTreeFile(path)
	if err != nil {
		return mindpaper.FlatTree{}, fmt.Errorf("open %s: %w", path, err)
	}
	return t, nil
}

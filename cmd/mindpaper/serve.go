package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phanxgames/mindpaper/internal/ui"
	"github.com/phanxgames/mindpaper/notes"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var addr, dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the note server",
		Long: `Serve the note API backed by a SQLite file until interrupted.

  mindpaper serve
  mindpaper serve --addr :9090 --db /tmp/notes.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd)
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if dbPath == "" {
				dbPath = cfg.Server.DBPath
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := notes.OpenStore(ctx, dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			logger := log.New(cmd.ErrOrStderr(), "[notes] ", log.Ltime|log.Lmicroseconds)
			srv, err := notes.NewServer(addr, store, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s on %s %s\n",
				ui.Brand.Sprint("notes"), ui.Info.Sprint(addr), ui.Subtle.Sprint("("+dbPath+")"))
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite file, or :memory: (default from config)")
	return cmd
}

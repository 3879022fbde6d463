package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/phanxgames/mindpaper/internal/ui"
	"github.com/phanxgames/mindpaper/notes"
	"github.com/phanxgames/mindpaper/notes/notelist"
	"github.com/spf13/cobra"
)

type notesFlags struct {
	api     string
	timeout time.Duration
}

func (f *notesFlags) client(cmd *cobra.Command) (*notes.Client, time.Duration) {
	cfg := configFrom(cmd)
	api, timeout := cfg.Notes.APIURL, cfg.Notes.Timeout()
	if f.api != "" {
		api = f.api
	}
	if f.timeout > 0 {
		timeout = f.timeout
	}
	return notes.NewClient(api, timeout), timeout
}

func notesCmd() *cobra.Command {
	var f notesFlags

	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Browse and edit notes",
		Long: `Open the note list in the terminal, or manage notes directly.
Notes live on a note server; start one with 'mindpaper serve'.

  mindpaper notes                  # interactive list
  mindpaper notes ls
  mindpaper notes add buy milk
  mindpaper notes edit 3 buy oat milk
  mindpaper notes rm 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, timeout := f.client(cmd)
			return notelist.Run(notelist.New(c, timeout))
		},
	}
	cmd.PersistentFlags().StringVar(&f.api, "api", "", "note server URL (default from config)")
	cmd.PersistentFlags().DurationVar(&f.timeout, "timeout", 0, "request timeout (default from config)")

	cmd.AddCommand(
		notesListCmd(&f),
		notesAddCmd(&f),
		notesEditCmd(&f),
		notesRemoveCmd(&f),
	)
	return cmd
}

func notesListCmd(f *notesFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List notes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _ := f.client(cmd)
			list, err := c.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, ui.Subtle.Sprint("  no notes yet"))
				return nil
			}
			rows := make([][]string, len(list))
			for i, n := range list {
				rows[i] = []string{strconv.FormatInt(n.ID, 10), n.Title}
			}
			ui.Table(out, []string{"ID", "TITLE"}, rows)
			return nil
		},
	}
}

func notesAddCmd(f *notesFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Add a note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _ := f.client(cmd)
			title := strings.Join(args, " ")
			if err := c.Add(cmd.Context(), title); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s added %q\n", ui.Check(true), title)
			return nil
		},
	}
}

func notesEditCmd(f *notesFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <title>",
		Short: "Change a note's title",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			c, _ := f.client(cmd)
			title := strings.Join(args[1:], " ")
			if err := c.Edit(cmd.Context(), id, title); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s note %d is now %q\n", ui.Check(true), id, title)
			return nil
		},
	}
}

func notesRemoveCmd(f *notesFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			c, _ := f.client(cmd)
			if err := c.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s deleted note %d\n", ui.Check(true), id)
			return nil
		},
	}
}

func parseNoteID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", s)
	}
	return id, nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/render"
	"github.com/mesh-intelligence/kanban/internal/store"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the selected board",
		Long:  "Display the board named by --board (or default_board) with one column per list.\nTask indexes shown here are the ones the task commands take.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBoard(cmd, func(_ *store.Store, b *types.Board) error {
				if a.flags.jsonMode {
					return writeJSON(cmd, render.NewBoardView(b))
				}
				fmt.Fprint(cmd.OutOrStdout(), render.Board(b))
				return nil
			})
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "Manage the lists of a board",
	}
	list.AddCommand(&cobra.Command{
		Use:   "add <title>",
		Short: "Append an empty list to the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			return a.withBoard(cmd, func(_ *store.Store, b *types.Board) error {
				if title == "" {
					return fmt.Errorf("empty list title: %w", types.ErrInvalidTitle)
				}
				if _, err := resolveList(b, title); err == nil {
					return fmt.Errorf("list %q already exists on board %q", title, b.Title())
				}
				b.AddNew(title)
				if a.flags.jsonMode {
					return writeJSON(cmd, render.NewBoardView(b))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added list %q to board %q\n", title, b.Title())
				return nil
			})
		},
	})
	return list
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Convert boards saved by the previous version to JSON",
		Long: "Convert every pickled <title>.pkl board file in the data directory to <title>.json.\n" +
			"Converted files are renamed to <title>.pkl.migrated; a .pkl whose .json already exists is left alone.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := a.newStore()
			if err != nil {
				return err
			}
			defer closeStore(s, &err)

			n, merr := s.Migrate()
			if a.flags.jsonMode {
				if jerr := writeJSON(cmd, map[string]any{"migrated": n}); jerr != nil {
					return jerr
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d board(s)\n", n)
			}
			return merr
		},
	}
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/render"
	"github.com/mesh-intelligence/kanban/internal/store"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

// boardSummary is the --json form of one entry in "kanban boards".
type boardSummary struct {
	Title   string `json:"title"`
	Lists   int    `json:"lists"`
	Tasks   int    `json:"tasks"`
	Current bool   `json:"current"`
}

func newBoardsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s *store.Store) error {
				boards := s.Boards()
				current := a.boardTitle()
				if a.flags.jsonMode {
					out := make([]boardSummary, 0, len(boards))
					for _, b := range boards {
						out = append(out, boardSummary{
							Title:   b.Title(),
							Lists:   b.Len(),
							Tasks:   b.TaskCount(),
							Current: b.Title() == current,
						})
					}
					return writeJSON(cmd, out)
				}
				if len(boards) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No boards.")
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), render.BoardList(boards, current))
				return nil
			})
		},
	}
}

func newBoardCmd(a *app) *cobra.Command {
	board := &cobra.Command{
		Use:   "board",
		Short: "Manage boards",
	}
	board.AddCommand(&cobra.Command{
		Use:   "create <title>",
		Short: "Create a board with the Backlog, Ready, Doing and Done lists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(s *store.Store) error {
				b, err := s.CreateBoard(args[0])
				if errors.Is(err, types.ErrBoardExists) {
					return fmt.Errorf("board %q already exists", args[0])
				}
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return writeJSON(cmd, render.NewBoardView(b))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created board %q\n", b.Title())
				return nil
			})
		},
	})
	board.AddCommand(&cobra.Command{
		Use:   "use <title>",
		Short: "Make a board the default for later commands",
		Long:  "Record <title> as default_board in config.yaml. --board still overrides it per command.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			err := a.withStore(cmd, func(s *store.Store) error {
				_, err := s.Get(title)
				return err
			})
			if err != nil {
				return err
			}
			if err := setConfigValue(a.configDir, cfgKeyDefaultBoard, title); err != nil {
				return systemError(err)
			}
			a.log.WithField("board", title).Debug("default board changed")
			if a.flags.jsonMode {
				return writeJSON(cmd, map[string]string{"default_board": title})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Now using board %q\n", title)
			return nil
		},
	})
	return board
}

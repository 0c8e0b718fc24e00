// Shared helpers for kanban CLI commands.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/render"
	"github.com/mesh-intelligence/kanban/internal/store"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

// newStore creates the store for the resolved data directory without
// touching the files in it.
func (a *app) newStore() (*store.Store, error) {
	cfg := types.Config{
		DataDir:      a.dataDir,
		SyncStrategy: a.settings.SyncStrategy,
	}
	s, err := store.New(cfg, store.WithLogger(a.log))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return s, nil
}

// openStore creates the store, converts any legacy board files and loads
// the boards. Boards that fail to migrate or load are reported on stderr;
// the rest stay usable. The caller must Close the store.
func (a *app) openStore(cmd *cobra.Command) (*store.Store, error) {
	s, err := a.newStore()
	if err != nil {
		return nil, err
	}
	if n, err := s.Migrate(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
	} else if n > 0 {
		a.log.WithField("boards", n).Info("migrated legacy boards")
	}
	if err := s.Load(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
	}
	return s, nil
}

// withStore opens the store, runs fn and closes the store. A failure to
// write pending changes on close is a system error.
func (a *app) withStore(cmd *cobra.Command, fn func(s *store.Store) error) (err error) {
	s, err := a.openStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore(s, &err)
	return fn(s)
}

// closeStore closes s and, unless *err is already set, reports a failure to
// write pending changes as a system error.
func closeStore(s *store.Store, err *error) {
	if cerr := s.Close(); cerr != nil && *err == nil {
		*err = systemError(cerr)
	}
}

// withBoard is withStore for commands that act on the selected board.
func (a *app) withBoard(cmd *cobra.Command, fn func(s *store.Store, b *types.Board) error) error {
	return a.withStore(cmd, func(s *store.Store) error {
		b, err := s.Get(a.boardTitle())
		if err != nil {
			return err
		}
		return fn(s, b)
	})
}

// resolveList finds a list by exact title, falling back to a
// case-insensitive match so "doing" selects "Doing".
func resolveList(b *types.Board, name string) (*types.TaskList, error) {
	if l, ok := b.List(name); ok {
		return l, nil
	}
	for _, l := range b.Lists() {
		if strings.EqualFold(l.Title(), name) {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%q on board %q: %w", name, b.Title(), types.ErrListNotFound)
}

// parseIndex converts a task index argument.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: must be a whole number", s)
	}
	return n, nil
}

// parsePosition reads a <list> <index> argument pair.
func parsePosition(b *types.Board, listArg, indexArg string) (types.Position, error) {
	l, err := resolveList(b, listArg)
	if err != nil {
		return types.Position{}, err
	}
	idx, err := parseIndex(indexArg)
	if err != nil {
		return types.Position{}, err
	}
	return types.Position{List: l.Title(), Index: idx}, nil
}

// writeJSON prints v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	if err := render.JSON(cmd.OutOrStdout(), v); err != nil {
		return systemError(fmt.Errorf("marshal JSON: %w", err))
	}
	return nil
}

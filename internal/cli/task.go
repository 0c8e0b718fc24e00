package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kanban/internal/render"
	"github.com/mesh-intelligence/kanban/internal/store"
	"github.com/mesh-intelligence/kanban/pkg/types"
)

// taskResult is the --json output of the task commands.
type taskResult struct {
	Changed  bool             `json:"changed"`
	Position *types.Position  `json:"position,omitempty"`
	Task     *render.TaskView `json:"task,omitempty"`
}

// taskFlags holds flags shared by the task subcommands.
type taskFlags struct {
	events bool
}

func newTaskCmd(a *app) *cobra.Command {
	var tf taskFlags
	task := &cobra.Command{
		Use:   "task",
		Short: "Add, move and edit tasks",
		Long: "Tasks are addressed by list title and index, as shown by \"kanban show\".\n" +
			"List titles match case-insensitively.",
	}
	task.PersistentFlags().BoolVar(&tf.events, "events", false, "print each change notification to stderr")

	task.AddCommand(newTaskAddCmd(a, &tf))
	task.AddCommand(newTaskMoveCmd(a, &tf))
	for _, km := range keyboardMoves {
		task.AddCommand(newTaskKeyboardMoveCmd(a, &tf, km))
	}
	task.AddCommand(newTaskRenameCmd(a, &tf))
	task.AddCommand(newTaskDueCmd(a, &tf))
	task.AddCommand(newTaskDeleteCmd(a, &tf))
	return task
}

// editBoard runs fn against the selected board, echoing change
// notifications to stderr when --events is set.
func (a *app) editBoard(cmd *cobra.Command, tf *taskFlags, fn func(b *types.Board) error) error {
	return a.withBoard(cmd, func(_ *store.Store, b *types.Board) error {
		if tf.events {
			stop := render.Watch(b, cmd.ErrOrStderr())
			defer stop()
		}
		return fn(b)
	})
}

// report prints the outcome of a task command.
func (a *app) report(cmd *cobra.Command, changed bool, pos *types.Position, task *types.Task, msg string) error {
	if a.flags.jsonMode {
		res := taskResult{Changed: changed, Position: pos}
		if task != nil {
			tv := taskView(task, pos)
			res.Task = &tv
		}
		return writeJSON(cmd, res)
	}
	if !changed {
		msg = "no change"
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func taskView(t *types.Task, pos *types.Position) render.TaskView {
	tv := render.TaskView{
		ID:        t.ID,
		Title:     t.Title,
		CreatedAt: t.CreationDate.UTC(),
		UpdatedAt: t.UpdateDate.UTC(),
	}
	if pos != nil {
		tv.Index = pos.Index
	}
	if t.DueDate != nil {
		tv.DueDate = t.DueDate.String()
	}
	return tv
}

func newTaskAddCmd(a *app, tf *taskFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add <list> <title>...",
		Short: "Append a new task to a list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args[1:], " ")
			return a.editBoard(cmd, tf, func(b *types.Board) error {
				l, err := resolveList(b, args[0])
				if err != nil {
					return err
				}
				task := l.AddNew(title)
				pos := types.Position{List: l.Title(), Index: l.Len() - 1}
				return a.report(cmd, true, &pos, task, fmt.Sprintf("Added %s to %s[%d]", task, pos.List, pos.Index))
			})
		},
	}
}

func newTaskMoveCmd(a *app, tf *taskFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "move <list> <index> <target-list> <target-index>",
		Short: "Move a task, as if dragged and dropped",
		Long: "Remove the task at <list> <index> and insert it at <target-index> of <target-list>.\n" +
			"The target index counts positions after the removal. Dropping a task on its own\n" +
			"slot changes nothing.",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editBoard(cmd, tf, func(b *types.Board) error {
				from, err := parsePosition(b, args[0], args[1])
				if err != nil {
					return err
				}
				to, err := parsePosition(b, args[2], args[3])
				if err != nil {
					return err
				}
				src, _ := b.List(from.List)
				task, err := src.Task(from.Index)
				if err != nil {
					return err
				}
				moved, err := b.Drop(
					types.DragSource{ListTitle: from.List, Index: from.Index},
					types.DropTarget{ListTitle: to.List, Index: to.Index},
				)
				if err != nil {
					return err
				}
				return a.report(cmd, moved, &to, task, fmt.Sprintf("Moved %s to %s[%d]", task, to.List, to.Index))
			})
		},
	}
}

// keyboardMove describes one of the single-step move commands.
type keyboardMove struct {
	use   string
	short string
	move  func(b *types.Board, at types.Position) (types.Position, error)
}

var keyboardMoves = []keyboardMove{
	{use: "up", short: "Move a task one place up", move: (*types.Board).MoveUp},
	{use: "down", short: "Move a task one place down", move: (*types.Board).MoveDown},
	{use: "top", short: "Move a task to the top of its list", move: (*types.Board).MoveTop},
	{use: "bottom", short: "Move a task to the bottom of its list", move: (*types.Board).MoveBottom},
	{use: "next", short: "Move a task to the top of the next list", move: (*types.Board).MoveToNextList},
	{use: "prev", short: "Move a task to the top of the previous list", move: (*types.Board).MoveToPrevList},
}

func newTaskKeyboardMoveCmd(a *app, tf *taskFlags, km keyboardMove) *cobra.Command {
	return &cobra.Command{
		Use:   km.use + " <list> <index>",
		Short: km.short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editBoard(cmd, tf, func(b *types.Board) error {
				at, err := parsePosition(b, args[0], args[1])
				if err != nil {
					return err
				}
				src, _ := b.List(at.List)
				task, err := src.Task(at.Index)
				if err != nil {
					return err
				}
				to, err := km.move(b, at)
				if err != nil {
					return err
				}
				return a.report(cmd, to != at, &to, task, fmt.Sprintf("Moved %s to %s[%d]", task, to.List, to.Index))
			})
		},
	}
}

func newTaskRenameCmd(a *app, tf *taskFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <list> <index> <title>...",
		Short: "Change the title of a task",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args[2:], " ")
			return a.editBoard(cmd, tf, func(b *types.Board) error {
				at, err := parsePosition(b, args[0], args[1])
				if err != nil {
					return err
				}
				l, _ := b.List(at.List)
				if err := l.SetTaskTitle(at.Index, title); err != nil {
					return err
				}
				task, _ := l.Task(at.Index)
				return a.report(cmd, true, &at, task, fmt.Sprintf("Renamed %s[%d] to %s", at.List, at.Index, task))
			})
		},
	}
}

func newTaskDueCmd(a *app, tf *taskFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "due <list> <index> <YYYY-MM-DD|none>",
		Short: "Set or clear the due date of a task",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var due *types.DueDate
			if !strings.EqualFold(args[2], "none") {
				d, err := types.ParseDueDate(args[2])
				if err != nil {
					return err
				}
				due = d
			}
			return a.editBoard(cmd, tf, func(b *types.Board) error {
				at, err := parsePosition(b, args[0], args[1])
				if err != nil {
					return err
				}
				l, _ := b.List(at.List)
				if err := l.SetTaskDueDate(at.Index, due); err != nil {
					return err
				}
				task, _ := l.Task(at.Index)
				msg := fmt.Sprintf("Cleared due date of %s", task)
				if due != nil {
					msg = fmt.Sprintf("%s is due %s", task, due)
				}
				return a.report(cmd, true, &at, task, msg)
			})
		},
	}
}

func newTaskDeleteCmd(a *app, tf *taskFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <list> <index>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editBoard(cmd, tf, func(b *types.Board) error {
				at, err := parsePosition(b, args[0], args[1])
				if err != nil {
					return err
				}
				task, err := b.DeleteTask(at.List, at.Index)
				if err != nil {
					return err
				}
				return a.report(cmd, true, nil, task, fmt.Sprintf("Deleted %s from %s", task, at.List))
			})
		},
	}
}

// Package render draws boards for the terminal and reports board changes as
// they happen.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// ColumnWidth is the inner width of one list column.
const ColumnWidth = 24

type styles struct {
	header      lipgloss.Style
	column      lipgloss.Style
	columnTitle lipgloss.Style
	task        lipgloss.Style
	due         lipgloss.Style
	empty       lipgloss.Style
	current     lipgloss.Style
}

func newStyles() styles {
	return styles{
		header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
		column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(ColumnWidth).
			Padding(0, 1),
		columnTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		task:        lipgloss.NewStyle(),
		due:         lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		empty:       lipgloss.NewStyle().Faint(true),
		current:     lipgloss.NewStyle().Bold(true),
	}
}

// Board renders b as a title line above one bordered column per list, in
// board order. Each task line carries the index used by the task commands.
func Board(b *types.Board) string {
	st := newStyles()

	colViews := make([]string, 0, b.Len())
	for _, l := range b.Lists() {
		colViews = append(colViews, column(st, l))
	}

	var sb strings.Builder
	sb.WriteString(st.header.Render(b.Title()))
	sb.WriteRune('\n')
	if len(colViews) == 0 {
		sb.WriteString(st.empty.Render("(no lists)"))
	} else {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, colViews...))
	}
	sb.WriteRune('\n')
	return sb.String()
}

func column(st styles, l *types.TaskList) string {
	lines := []string{st.columnTitle.Render(fmt.Sprintf("%s (%d)", l.Title(), l.Len()))}
	tasks := l.Tasks()
	if len(tasks) == 0 {
		lines = append(lines, st.empty.Render("(empty)"))
	}
	for i, t := range tasks {
		lines = append(lines, st.task.Render(fmt.Sprintf("%d. %s", i, t.Title)))
		if t.DueDate != nil {
			lines = append(lines, st.due.Render("   due "+t.DueDate.String()))
		}
	}
	return st.column.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// BoardList renders one line per board with its list and task counts. The
// board titled current is marked with an asterisk.
func BoardList(boards []*types.Board, current string) string {
	st := newStyles()
	var sb strings.Builder
	for _, b := range boards {
		marker := "  "
		line := fmt.Sprintf("%s (%d lists, %d tasks)", b.Title(), b.Len(), b.TaskCount())
		if b.Title() == current {
			marker = "* "
			line = st.current.Render(line)
		}
		sb.WriteString(marker + line + "\n")
	}
	return sb.String()
}

// Watch writes one line to w for every change on b until the returned
// function is called.
func Watch(b *types.Board, w io.Writer) func() {
	return b.Subscribe(func(ev types.Event) {
		fmt.Fprintln(w, EventLine(ev))
	})
}

// EventLine formats a change notification, e.g.
// "task_inserted Doing[1] #write docs" or
// "task_moved Backlog[0] -> Doing[1] #write docs".
func EventLine(ev types.Event) string {
	line := fmt.Sprintf("%s %s[%d]", ev.Kind, ev.List, ev.Index)
	if ev.From != nil {
		line = fmt.Sprintf("%s %s[%d] -> %s[%d]", ev.Kind, ev.From.List, ev.From.Index, ev.List, ev.Index)
	}
	if ev.Task != nil {
		line += " " + ev.Task.String()
	}
	return line
}

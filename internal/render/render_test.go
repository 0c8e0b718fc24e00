package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

func sampleBoard(t *testing.T) *types.Board {
	t.Helper()
	b := types.NewStandardBoard("Home")
	backlog, _ := b.List(types.ListBacklog)
	backlog.AddNew("paint")
	backlog.AddNew("sweep")
	doing, _ := b.List(types.ListDoing)
	task := doing.AddNew("cook")
	require.NoError(t, task.SetDueDate(2025, 3, 1))
	return b
}

func TestBoard(t *testing.T) {
	out := Board(sampleBoard(t))

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[0], "Home")

	for _, want := range []string{
		"Backlog (2)", "Ready (0)", "Doing (1)", "Done (0)",
		"0. paint", "1. sweep", "0. cook", "due 2025-03-01", "(empty)",
	} {
		assert.Contains(t, out, want)
	}

	// Columns sit side by side: the list titles share one line.
	var titleLine string
	for _, l := range lines {
		if strings.Contains(l, "Backlog (2)") {
			titleLine = l
			break
		}
	}
	require.NotEmpty(t, titleLine)
	assert.Less(t, strings.Index(titleLine, "Backlog"), strings.Index(titleLine, "Ready"))
	assert.Less(t, strings.Index(titleLine, "Ready"), strings.Index(titleLine, "Doing"))
	assert.Less(t, strings.Index(titleLine, "Doing"), strings.Index(titleLine, "Done"))
}

func TestBoardWithoutLists(t *testing.T) {
	out := Board(types.NewBoard("Bare"))
	assert.Contains(t, out, "Bare")
	assert.Contains(t, out, "(no lists)")
}

func TestBoardList(t *testing.T) {
	boards := []*types.Board{sampleBoard(t), types.NewStandardBoard("Work")}

	out := BoardList(boards, "Work")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "  Home"))
	assert.Contains(t, lines[0], "(4 lists, 3 tasks)")
	assert.True(t, strings.HasPrefix(lines[1], "* "))
	assert.Contains(t, lines[1], "Work (4 lists, 0 tasks)")
}

func TestWatch(t *testing.T) {
	b := sampleBoard(t)
	var buf bytes.Buffer
	stop := Watch(b, &buf)

	moved, err := b.Move(
		types.Position{List: types.ListBacklog, Index: 1},
		types.Position{List: types.ListDone, Index: 0},
	)
	require.NoError(t, err)
	require.True(t, moved)
	b.AddNew("Someday")

	stop()
	backlog, _ := b.List(types.ListBacklog)
	backlog.AddNew("unseen")

	assert.Equal(t,
		"task_moved Backlog[1] -> Done[0] #sweep\n"+
			"list_added Someday[4]\n",
		buf.String())
}

func TestNewBoardView(t *testing.T) {
	b := sampleBoard(t)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, NewBoardView(b)))

	var got BoardView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Home", got.Title)
	require.Len(t, got.Lists, 4)
	assert.Equal(t, "Backlog", got.Lists[0].Title)
	require.Len(t, got.Lists[0].Tasks, 2)
	assert.Equal(t, 1, got.Lists[0].Tasks[1].Index)
	assert.Equal(t, "sweep", got.Lists[0].Tasks[1].Title)
	assert.NotEmpty(t, got.Lists[0].Tasks[1].ID)
	assert.Empty(t, got.Lists[0].Tasks[1].DueDate)
	assert.Equal(t, "2025-03-01", got.Lists[2].Tasks[0].DueDate)
	assert.NotNil(t, got.Lists[1].Tasks)
	assert.Contains(t, buf.String(), `"tasks": []`)
}

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listTitles(b *Board) []string {
	out := make([]string, 0, b.Len())
	for _, l := range b.Lists() {
		out = append(out, l.Title())
	}
	return out
}

func TestNewStandardBoard(t *testing.T) {
	b := NewStandardBoard("Work")

	assert.Equal(t, "Work", b.Title())
	assert.Equal(t, []string{"Backlog", "Ready", "Doing", "Done"}, listTitles(b))
	assert.Zero(t, b.TaskCount())
}

func TestBoardKeepsInsertionOrder(t *testing.T) {
	b := NewBoard("Home")
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		b.AddNew(name)
	}

	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, listTitles(b))
	assert.Equal(t, 1, b.ListIndex("Alpha"))
	assert.Equal(t, -1, b.ListIndex("Missing"))
}

func TestBoardAddReplacesInPlace(t *testing.T) {
	b := NewStandardBoard("Work")
	replacement := newList("Ready", "r1", "r2")

	b.Add(replacement)

	assert.Equal(t, []string{"Backlog", "Ready", "Doing", "Done"}, listTitles(b))
	got, ok := b.List("Ready")
	require.True(t, ok)
	assert.Same(t, replacement, got)
	assert.Equal(t, 2, b.TaskCount())
}

func TestBoardListLookup(t *testing.T) {
	b := NewStandardBoard("Work")

	l, ok := b.List("Doing")
	require.True(t, ok)
	assert.Equal(t, "Doing", l.Title())

	_, ok = b.List("doing")
	assert.False(t, ok, "lookup is case sensitive")
}

func TestBoardForwardsListEvents(t *testing.T) {
	b := NewStandardBoard("Work")
	var events []Event
	b.Subscribe(func(ev Event) { events = append(events, ev) })

	doing, _ := b.List("Doing")
	task := doing.AddNew("ship it")
	b.AddNew("Archive")

	require.Len(t, events, 2)
	assert.Equal(t, Event{Kind: TaskInserted, List: "Doing", Index: 0, Task: task}, events[0])
	assert.Equal(t, Event{Kind: ListAdded, List: "Archive", Index: 4}, events[1])
}

func TestBoardStopsForwardingReplacedList(t *testing.T) {
	b := NewStandardBoard("Work")
	old, _ := b.List("Done")
	b.Add(NewTaskList("Done"))

	calls := 0
	b.Subscribe(func(Event) { calls++ })
	old.AddNew("orphan")

	assert.Zero(t, calls, "replaced list must not reach board observers")
}

func TestBoardDeleteTask(t *testing.T) {
	b := NewStandardBoard("Work")
	backlog, _ := b.List("Backlog")
	backlog.AddNew("a")
	backlog.AddNew("b")

	task, err := b.DeleteTask("Backlog", 0)
	require.NoError(t, err)
	assert.Equal(t, "a", task.Title)
	assert.Equal(t, []string{"b"}, titles(backlog))

	_, err = b.DeleteTask("Nope", 0)
	assert.ErrorIs(t, err, ErrListNotFound)

	_, err = b.DeleteTask("Backlog", 3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestBoardString(t *testing.T) {
	b := NewBoard("Work")
	b.Add(newList("Backlog", "a"))
	b.Add(newList("Done"))

	assert.Equal(t, "=== Work ===\n>Backlog\n#a\n>Done", b.String())
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "task_inserted", TaskInserted.String())
	assert.Equal(t, "task_removed", TaskRemoved.String())
	assert.Equal(t, "task_updated", TaskUpdated.String())
	assert.Equal(t, "list_added", ListAdded.String())
	assert.Equal(t, "task_moved", TaskMoved.String())
	assert.Equal(t, "unknown", EventKind(0).String())
}

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(l *TaskList) []string {
	out := make([]string, 0, l.Len())
	for _, t := range l.Tasks() {
		out = append(out, t.Title)
	}
	return out
}

func newList(title string, tasks ...string) *TaskList {
	l := NewTaskList(title)
	for _, name := range tasks {
		l.AddNew(name)
	}
	return l
}

func TestTaskListAddNew(t *testing.T) {
	l := NewTaskList("Backlog")

	a := l.AddNew("a")
	b := l.AddNew("b")

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []string{"a", "b"}, titles(l))
	assert.Equal(t, 0, l.IndexOf(a))
	assert.Equal(t, 1, l.IndexOf(b))
	assert.Equal(t, -1, l.IndexOf(NewTask("x")))
}

func TestTaskListInsert(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		want    []string
		wantErr error
	}{
		{name: "at head", index: 0, want: []string{"x", "a", "b", "c"}},
		{name: "in middle", index: 1, want: []string{"a", "x", "b", "c"}},
		{name: "at len appends", index: 3, want: []string{"a", "b", "c", "x"}},
		{name: "negative index", index: -1, wantErr: ErrIndexOutOfRange},
		{name: "past len", index: 4, wantErr: ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newList("L", "a", "b", "c")
			err := l.Insert(tt.index, NewTask("x"))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, []string{"a", "b", "c"}, titles(l), "list should not change on error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(l))
		})
	}
}

func TestTaskListRemove(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		removed string
		want    []string
		wantErr error
	}{
		{name: "first", index: 0, removed: "a", want: []string{"b", "c"}},
		{name: "middle", index: 1, removed: "b", want: []string{"a", "c"}},
		{name: "last", index: 2, removed: "c", want: []string{"a", "b"}},
		{name: "negative", index: -1, wantErr: ErrIndexOutOfRange},
		{name: "at len", index: 3, wantErr: ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newList("L", "a", "b", "c")
			task, err := l.Remove(tt.index)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, task)
				assert.Equal(t, 3, l.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.removed, task.Title)
			assert.Equal(t, tt.want, titles(l))
		})
	}
}

func TestTaskListRemoveFromEmpty(t *testing.T) {
	_, err := NewTaskList("empty").Remove(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

// Length equals net inserts minus removes, and untouched tasks keep their
// relative order.
func TestTaskListInsertRemoveSequence(t *testing.T) {
	l := newList("L", "a", "b", "c", "d")
	ops := []struct {
		insert bool
		index  int
		title  string
	}{
		{insert: true, index: 2, title: "x"},
		{insert: false, index: 0},
		{insert: true, index: 4, title: "y"},
		{insert: false, index: 1},
		{insert: true, index: 0, title: "z"},
	}
	net := l.Len()
	for _, op := range ops {
		if op.insert {
			require.NoError(t, l.Insert(op.index, NewTask(op.title)))
			net++
		} else {
			_, err := l.Remove(op.index)
			require.NoError(t, err)
			net--
		}
	}

	assert.Equal(t, net, l.Len())
	var untouched []string
	for _, title := range titles(l) {
		if title == "b" || title == "c" || title == "d" {
			untouched = append(untouched, title)
		}
	}
	assert.Equal(t, []string{"b", "c", "d"}, untouched)
	assert.Equal(t, []string{"z", "b", "c", "d", "y"}, titles(l))
}

func TestTaskListTasksReturnsCopy(t *testing.T) {
	l := newList("L", "a", "b")
	tasks := l.Tasks()
	tasks[0] = NewTask("mutated")

	assert.Equal(t, []string{"a", "b"}, titles(l))
}

func TestTaskListEvents(t *testing.T) {
	l := newList("Doing", "a")
	var events []Event
	cancel := l.Subscribe(func(ev Event) { events = append(events, ev) })

	b := l.AddNew("b")
	require.NoError(t, l.Insert(0, NewTask("c")))
	_, err := l.Remove(2)
	require.NoError(t, err)
	require.NoError(t, l.SetTaskTitle(0, "c2"))
	require.NoError(t, l.SetTaskDueDate(0, &DueDate{Year: 2026, Month: 5, Day: 1}))

	require.Len(t, events, 5)
	assert.Equal(t, Event{Kind: TaskInserted, List: "Doing", Index: 1, Task: b}, events[0])
	assert.Equal(t, TaskInserted, events[1].Kind)
	assert.Equal(t, 0, events[1].Index)
	assert.Equal(t, TaskRemoved, events[2].Kind)
	assert.Same(t, b, events[2].Task)
	assert.Equal(t, TaskUpdated, events[3].Kind)
	assert.Equal(t, "c2", events[3].Task.Title)
	assert.Equal(t, TaskUpdated, events[4].Kind)

	cancel()
	cancel()
	l.AddNew("quiet")
	assert.Len(t, events, 5, "no events after cancel")
}

func TestTaskListFailedOperationsEmitNothing(t *testing.T) {
	l := newList("L", "a")
	calls := 0
	l.Subscribe(func(Event) { calls++ })

	assert.Error(t, l.Insert(5, NewTask("x")))
	_, err := l.Remove(5)
	assert.Error(t, err)
	assert.Error(t, l.SetTaskTitle(5, "x"))
	assert.Error(t, l.SetTaskDueDate(0, &DueDate{Year: 2026, Month: 2, Day: 30}))

	assert.Zero(t, calls)
}

func TestTaskListSubscriptionsArePerInstance(t *testing.T) {
	a := NewTaskList("A")
	b := NewTaskList("B")
	var gotA, gotB int
	a.Subscribe(func(Event) { gotA++ })
	b.Subscribe(func(Event) { gotB++ })

	a.AddNew("x")

	assert.Equal(t, 1, gotA)
	assert.Equal(t, 0, gotB)
}

func TestTaskListObserverMayCancelItself(t *testing.T) {
	l := NewTaskList("L")
	calls := 0
	var cancel func()
	cancel = l.Subscribe(func(Event) {
		calls++
		cancel()
	})

	l.AddNew("a")
	l.AddNew("b")

	assert.Equal(t, 1, calls)
}

func TestTaskListString(t *testing.T) {
	l := newList("Ready", "a", "b")
	assert.Equal(t, ">Ready\n#a\n#b", l.String())
}

package types

import (
	"fmt"
	"strings"
)

// Titles of the lists every new board starts with, in display order.
const (
	ListBacklog = "Backlog"
	ListReady   = "Ready"
	ListDoing   = "Doing"
	ListDone    = "Done"
)

// StandardListTitles is the default column layout.
var StandardListTitles = []string{ListBacklog, ListReady, ListDoing, ListDone}

// Board is a named collection of task lists. Lists are addressable by title
// and keep the order in which they were added; that order is the column
// order on screen.
type Board struct {
	title     string
	lists     []*TaskList
	index     map[string]*TaskList
	forward   map[*TaskList]func()
	observers observers
	moving    bool
}

// NewBoard creates a board with no lists.
func NewBoard(title string) *Board {
	return &Board{
		title:   title,
		index:   make(map[string]*TaskList),
		forward: make(map[*TaskList]func()),
	}
}

// NewStandardBoard creates a board with the Backlog, Ready, Doing and Done
// lists.
func NewStandardBoard(title string) *Board {
	b := NewBoard(title)
	for _, name := range StandardListTitles {
		b.AddNew(name)
	}
	return b
}

// Title returns the board title, which is its key within a store.
func (b *Board) Title() string {
	return b.title
}

// Len returns the number of lists.
func (b *Board) Len() int {
	return len(b.lists)
}

// Lists returns the lists in display order.
func (b *Board) Lists() []*TaskList {
	out := make([]*TaskList, len(b.lists))
	copy(out, b.lists)
	return out
}

// List looks up a list by title.
func (b *Board) List(title string) (*TaskList, bool) {
	l, ok := b.index[title]
	return l, ok
}

// ListIndex returns the display position of the list, or -1.
func (b *Board) ListIndex(title string) int {
	for i, l := range b.lists {
		if l.title == title {
			return i
		}
	}
	return -1
}

// TaskCount returns the number of tasks across all lists.
func (b *Board) TaskCount() int {
	n := 0
	for _, l := range b.lists {
		n += l.Len()
	}
	return n
}

// AddNew creates an empty list and adds it.
func (b *Board) AddNew(title string) *TaskList {
	l := NewTaskList(title)
	b.Add(l)
	return l
}

// Add inserts tasklist keyed by its title. A list with the same title is
// replaced at its current position; otherwise the list is appended.
func (b *Board) Add(tasklist *TaskList) {
	pos := b.ListIndex(tasklist.title)
	if pos >= 0 {
		old := b.lists[pos]
		if cancel, ok := b.forward[old]; ok {
			cancel()
			delete(b.forward, old)
		}
		b.lists[pos] = tasklist
	} else {
		b.lists = append(b.lists, tasklist)
		pos = len(b.lists) - 1
	}
	b.index[tasklist.title] = tasklist
	b.forward[tasklist] = tasklist.Subscribe(b.relay)
	b.observers.emit(Event{Kind: ListAdded, List: tasklist.title, Index: pos})
}

// relay passes list events on to the board's observers, except while a
// move is half done.
func (b *Board) relay(ev Event) {
	if b.moving {
		return
	}
	b.observers.emit(ev)
}

// Subscribe registers an observer that receives the board's own events and
// every event of its lists, with a move reported as one TaskMoved. It
// returns a cancel function.
func (b *Board) Subscribe(fn Observer) func() {
	return b.observers.add(fn)
}

// DeleteTask removes the task at index from the named list.
func (b *Board) DeleteTask(list string, index int) (*Task, error) {
	l, err := b.mustList(list)
	if err != nil {
		return nil, err
	}
	return l.Remove(index)
}

// String renders the board header followed by each list.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("=== " + b.title + " ===")
	for _, l := range b.lists {
		sb.WriteString("\n" + l.String())
	}
	return sb.String()
}

func (b *Board) mustList(title string) (*TaskList, error) {
	l, ok := b.index[title]
	if !ok {
		return nil, fmt.Errorf("%q on board %q: %w", title, b.title, ErrListNotFound)
	}
	return l, nil
}

package types

import (
	"fmt"
	"strings"
)

// TaskList is a named, ordered sequence of tasks (a kanban column). The
// slice order is the order the user sees.
type TaskList struct {
	title     string
	tasks     []*Task
	observers observers
}

// NewTaskList creates an empty list.
func NewTaskList(title string) *TaskList {
	return &TaskList{title: title}
}

// Title returns the list title, which is its key within a Board.
func (l *TaskList) Title() string {
	return l.title
}

// Len returns the number of tasks.
func (l *TaskList) Len() int {
	return len(l.tasks)
}

// Tasks returns a copy of the task slice. The tasks themselves are shared.
func (l *TaskList) Tasks() []*Task {
	out := make([]*Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Task returns the task at index.
// Returns ErrIndexOutOfRange if index is not in [0, Len).
func (l *TaskList) Task(index int) (*Task, error) {
	if err := l.checkIndex(index); err != nil {
		return nil, err
	}
	return l.tasks[index], nil
}

// IndexOf returns the position of task, or -1 if it is not in the list.
func (l *TaskList) IndexOf(task *Task) int {
	for i, t := range l.tasks {
		if t == task {
			return i
		}
	}
	return -1
}

// AddNew creates a task with the given title and appends it.
func (l *TaskList) AddNew(title string) *Task {
	task := NewTask(title)
	l.Add(task)
	return task
}

// Add appends an existing task.
func (l *TaskList) Add(task *Task) {
	l.tasks = append(l.tasks, task)
	l.observers.emit(Event{Kind: TaskInserted, List: l.title, Index: len(l.tasks) - 1, Task: task})
}

// Insert places task at index, shifting later tasks right. Index Len appends.
// Returns ErrIndexOutOfRange if index is not in [0, Len].
func (l *TaskList) Insert(index int, task *Task) error {
	if index < 0 || index > len(l.tasks) {
		return fmt.Errorf("insert into %q at %d (len %d): %w", l.title, index, len(l.tasks), ErrIndexOutOfRange)
	}
	l.tasks = append(l.tasks, nil)
	copy(l.tasks[index+1:], l.tasks[index:])
	l.tasks[index] = task
	l.observers.emit(Event{Kind: TaskInserted, List: l.title, Index: index, Task: task})
	return nil
}

// Remove deletes the task at index and returns it.
// Returns ErrIndexOutOfRange if index is not in [0, Len).
func (l *TaskList) Remove(index int) (*Task, error) {
	if err := l.checkIndex(index); err != nil {
		return nil, err
	}
	task := l.tasks[index]
	copy(l.tasks[index:], l.tasks[index+1:])
	l.tasks[len(l.tasks)-1] = nil
	l.tasks = l.tasks[:len(l.tasks)-1]
	l.observers.emit(Event{Kind: TaskRemoved, List: l.title, Index: index, Task: task})
	return task, nil
}

// SetTaskTitle renames the task at index and notifies observers.
func (l *TaskList) SetTaskTitle(index int, title string) error {
	task, err := l.Task(index)
	if err != nil {
		return err
	}
	task.SetTitle(title)
	l.observers.emit(Event{Kind: TaskUpdated, List: l.title, Index: index, Task: task})
	return nil
}

// SetTaskDueDate sets or, when due is nil, clears the due date of the task at
// index and notifies observers.
func (l *TaskList) SetTaskDueDate(index int, due *DueDate) error {
	task, err := l.Task(index)
	if err != nil {
		return err
	}
	if due == nil {
		task.ClearDueDate()
	} else if err := task.SetDueDate(due.Year, due.Month, due.Day); err != nil {
		return err
	}
	l.observers.emit(Event{Kind: TaskUpdated, List: l.title, Index: index, Task: task})
	return nil
}

// Subscribe registers an observer for this list only and returns a function
// that cancels the subscription.
func (l *TaskList) Subscribe(fn Observer) func() {
	return l.observers.add(fn)
}

// String renders the list as ">title" followed by one "#task" per line.
func (l *TaskList) String() string {
	var sb strings.Builder
	sb.WriteString(">" + l.title)
	for _, t := range l.tasks {
		sb.WriteString("\n" + t.String())
	}
	return sb.String()
}

func (l *TaskList) checkIndex(index int) error {
	if index < 0 || index >= len(l.tasks) {
		return fmt.Errorf("index %d in %q (len %d): %w", index, l.title, len(l.tasks), ErrIndexOutOfRange)
	}
	return nil
}

// Package types defines the kanban data model: Task, TaskList and Board,
// the change events they publish, the move and drag-and-drop operations,
// the store Config, and the standard error values.
//
// The model is single-threaded by design. Callers run every mutation on one
// goroutine (the UI event loop or a CLI command) and observers are invoked
// synchronously before the mutating call returns.
package types

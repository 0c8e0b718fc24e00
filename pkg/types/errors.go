package types

import "errors"

// Model operation errors.
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrListNotFound    = errors.New("task list not found")
	ErrInvalidTitle    = errors.New("invalid title")
	ErrInvalidDueDate  = errors.New("invalid due date")
)

// Store errors.
var (
	ErrBoardNotFound = errors.New("board not found")
	ErrBoardExists   = errors.New("board already exists")
	ErrMissingField  = errors.New("missing required field")
	ErrStoreClosed   = errors.New("store is closed")
)

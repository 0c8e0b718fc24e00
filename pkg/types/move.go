package types

import "fmt"

// Position addresses a task slot on a board.
type Position struct {
	List  string `json:"list"`
	Index int    `json:"index"`
}

// DragSource is the payload a front end attaches to a drag: the list and
// index of the dragged task at the moment the drag started.
type DragSource struct {
	ListTitle string `json:"source_list_title"`
	Index     int    `json:"source_index"`
}

// DropTarget is where the dragged task was released.
type DropTarget struct {
	ListTitle string `json:"target_list_title"`
	Index     int    `json:"target_index"`
}

// Drop completes a drag. Dropping a task onto its own slot is a no-op that
// returns false and emits no events. Otherwise the task is removed from the
// source and inserted at the target index, and Drop returns true. Board
// observers get one TaskMoved event.
func (b *Board) Drop(src DragSource, dst DropTarget) (bool, error) {
	return b.Move(Position{List: src.ListTitle, Index: src.Index}, Position{List: dst.ListTitle, Index: dst.Index})
}

// Move relocates the task at from to the slot to. The target index is
// applied after the task has been removed from its source, so within one
// list the valid range is [0, Len-1] and across lists it is [0, Len].
//
// Both coordinates are checked before anything changes; on error the board
// is untouched. Returns false without mutating when from == to. Board
// observers see a single TaskMoved after the task is in place, never the
// state between the remove and the insert.
func (b *Board) Move(from, to Position) (bool, error) {
	srcList, err := b.mustList(from.List)
	if err != nil {
		return false, err
	}
	dstList, err := b.mustList(to.List)
	if err != nil {
		return false, err
	}
	if err := srcList.checkIndex(from.Index); err != nil {
		return false, err
	}
	maxTarget := dstList.Len()
	if srcList == dstList {
		maxTarget = srcList.Len() - 1
	}
	if to.Index < 0 || to.Index > maxTarget {
		return false, fmt.Errorf("move target %d in %q (max %d): %w", to.Index, to.List, maxTarget, ErrIndexOutOfRange)
	}
	if srcList == dstList && from.Index == to.Index {
		return false, nil
	}

	b.moving = true
	task, err := srcList.Remove(from.Index)
	if err != nil {
		b.moving = false
		return false, err
	}
	if err := dstList.Insert(to.Index, task); err != nil {
		// Unreachable after the checks above; put the task back.
		_ = srcList.Insert(from.Index, task)
		b.moving = false
		return false, err
	}
	b.moving = false

	src := from
	b.observers.emit(Event{Kind: TaskMoved, List: to.List, Index: to.Index, Task: task, From: &src})
	return true, nil
}

// MoveUp moves the task one slot towards the top of its list. At the top it
// is a no-op. Returns the task's resulting position.
func (b *Board) MoveUp(at Position) (Position, error) {
	return b.moveWithin(at, func(_ int) int { return at.Index - 1 })
}

// MoveDown moves the task one slot towards the bottom of its list.
func (b *Board) MoveDown(at Position) (Position, error) {
	return b.moveWithin(at, func(_ int) int { return at.Index + 1 })
}

// MoveTop moves the task to the first slot of its list.
func (b *Board) MoveTop(at Position) (Position, error) {
	return b.moveWithin(at, func(_ int) int { return 0 })
}

// MoveBottom moves the task to the last slot of its list.
func (b *Board) MoveBottom(at Position) (Position, error) {
	return b.moveWithin(at, func(n int) int { return n - 1 })
}

// MoveToNextList moves the task to the top of the list to the right. On the
// last list it is a no-op.
func (b *Board) MoveToNextList(at Position) (Position, error) {
	return b.moveAcross(at, 1)
}

// MoveToPrevList moves the task to the top of the list to the left. On the
// first list it is a no-op.
func (b *Board) MoveToPrevList(at Position) (Position, error) {
	return b.moveAcross(at, -1)
}

func (b *Board) moveWithin(at Position, target func(n int) int) (Position, error) {
	l, err := b.mustList(at.List)
	if err != nil {
		return at, err
	}
	if err := l.checkIndex(at.Index); err != nil {
		return at, err
	}
	idx := target(l.Len())
	if idx < 0 || idx >= l.Len() || idx == at.Index {
		return at, nil
	}
	to := Position{List: at.List, Index: idx}
	if _, err := b.Move(at, to); err != nil {
		return at, err
	}
	return to, nil
}

func (b *Board) moveAcross(at Position, step int) (Position, error) {
	pos := b.ListIndex(at.List)
	if pos < 0 {
		return at, fmt.Errorf("%q on board %q: %w", at.List, b.title, ErrListNotFound)
	}
	if err := b.lists[pos].checkIndex(at.Index); err != nil {
		return at, err
	}
	next := pos + step
	if next < 0 || next >= len(b.lists) {
		return at, nil
	}
	to := Position{List: b.lists[next].title, Index: 0}
	if _, err := b.Move(at, to); err != nil {
		return at, err
	}
	return to, nil
}

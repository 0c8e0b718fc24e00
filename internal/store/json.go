// JSON record structures for board files.
// One file holds one board:
//
//	{"title": ..., "tasklists": [{"title": ..., "tasks": [{"id": ..., "title": ...,
//	  "creation_date": 1530000000.5, "update_date": ..., "due_date": null}]}]}
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// boardJSON is the top-level record of a board file. Pointer fields let the
// decoder tell a missing field from an empty one.
type boardJSON struct {
	Title     *string         `json:"title"`
	TaskLists *[]tasklistJSON `json:"tasklists"`
}

// tasklistJSON is one column.
type tasklistJSON struct {
	Title *string     `json:"title"`
	Tasks *[]taskJSON `json:"tasks"`
}

// taskJSON is one card. id is absent in files written before tasks had IDs.
type taskJSON struct {
	ID           string         `json:"id,omitempty"`
	Title        *string        `json:"title"`
	CreationDate *timestamp     `json:"creation_date"`
	UpdateDate   *timestamp     `json:"update_date"`
	DueDate      *types.DueDate `json:"due_date"`
}

// timestamp is stored as Unix seconds with a fractional part, which is what
// earlier versions of the application wrote. RFC 3339 strings are accepted
// on read.
type timestamp time.Time

func (ts timestamp) MarshalJSON() ([]byte, error) {
	secs := float64(time.Time(ts).UnixMicro()) / 1e6
	return []byte(strconv.FormatFloat(secs, 'f', -1, 64)), nil
}

func (ts *timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("parsing timestamp %q: %w", s, err)
		}
		*ts = timestamp(t)
		return nil
	}
	secs, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("parsing timestamp %s: %w", data, err)
	}
	*ts = timestamp(unixSeconds(secs))
	return nil
}

// unixSeconds converts fractional Unix seconds at microsecond precision.
func unixSeconds(secs float64) time.Time {
	return time.UnixMicro(int64(math.Round(secs * 1e6)))
}

// encodeBoard converts a board to its file record.
func encodeBoard(b *types.Board) boardJSON {
	title := b.Title()
	lists := make([]tasklistJSON, 0, b.Len())
	for _, l := range b.Lists() {
		listTitle := l.Title()
		tasks := make([]taskJSON, 0, l.Len())
		for _, t := range l.Tasks() {
			taskTitle := t.Title
			created := timestamp(t.CreationDate)
			updated := timestamp(t.UpdateDate)
			tasks = append(tasks, taskJSON{
				ID:           t.ID,
				Title:        &taskTitle,
				CreationDate: &created,
				UpdateDate:   &updated,
				DueDate:      t.DueDate,
			})
		}
		lists = append(lists, tasklistJSON{Title: &listTitle, Tasks: &tasks})
	}
	return boardJSON{Title: &title, TaskLists: &lists}
}

// decodeBoard rebuilds a board from its record. Any missing required field
// fails the whole board with ErrMissingField; there is no partial recovery.
func decodeBoard(rec boardJSON) (*types.Board, error) {
	if rec.Title == nil {
		return nil, fmt.Errorf("board title: %w", types.ErrMissingField)
	}
	if rec.TaskLists == nil {
		return nil, fmt.Errorf("board %q tasklists: %w", *rec.Title, types.ErrMissingField)
	}
	b := types.NewBoard(*rec.Title)
	for i, lr := range *rec.TaskLists {
		if lr.Title == nil {
			return nil, fmt.Errorf("board %q tasklist %d title: %w", *rec.Title, i, types.ErrMissingField)
		}
		if lr.Tasks == nil {
			return nil, fmt.Errorf("board %q tasklist %q tasks: %w", *rec.Title, *lr.Title, types.ErrMissingField)
		}
		l := types.NewTaskList(*lr.Title)
		for j, tr := range *lr.Tasks {
			task, err := decodeTask(tr)
			if err != nil {
				return nil, fmt.Errorf("board %q tasklist %q task %d: %w", *rec.Title, *lr.Title, j, err)
			}
			l.Add(task)
		}
		b.Add(l)
	}
	return b, nil
}

func decodeTask(tr taskJSON) (*types.Task, error) {
	if tr.Title == nil {
		return nil, fmt.Errorf("title: %w", types.ErrMissingField)
	}
	if tr.CreationDate == nil {
		return nil, fmt.Errorf("creation_date: %w", types.ErrMissingField)
	}
	task := &types.Task{
		ID:           tr.ID,
		Title:        *tr.Title,
		CreationDate: time.Time(*tr.CreationDate),
		UpdateDate:   time.Time(*tr.CreationDate),
	}
	if tr.UpdateDate != nil && !time.Time(*tr.UpdateDate).Before(task.CreationDate) {
		task.UpdateDate = time.Time(*tr.UpdateDate)
	}
	if tr.DueDate != nil {
		// Older files stored an unset calendar as day 0; treat it as no date.
		if d, err := types.NewDueDate(tr.DueDate.Year, tr.DueDate.Month, tr.DueDate.Day); err == nil {
			task.DueDate = d
		}
	}
	task.EnsureID()
	return task, nil
}

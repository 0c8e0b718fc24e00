package render

import (
	"encoding/json"
	"io"
	"time"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// BoardView is the machine-readable form of a board printed by --json.
type BoardView struct {
	Title string     `json:"title"`
	Lists []ListView `json:"lists"`
}

// ListView is one column of a BoardView.
type ListView struct {
	Title string     `json:"title"`
	Tasks []TaskView `json:"tasks"`
}

// TaskView is one task with its position in the list.
type TaskView struct {
	Index     int       `json:"index"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	DueDate   string    `json:"due_date,omitempty"`
}

// NewBoardView converts b for JSON output.
func NewBoardView(b *types.Board) BoardView {
	v := BoardView{Title: b.Title(), Lists: make([]ListView, 0, b.Len())}
	for _, l := range b.Lists() {
		lv := ListView{Title: l.Title(), Tasks: make([]TaskView, 0, l.Len())}
		for i, t := range l.Tasks() {
			tv := TaskView{
				Index:     i,
				ID:        t.ID,
				Title:     t.Title,
				CreatedAt: t.CreationDate.UTC(),
				UpdatedAt: t.UpdateDate.UTC(),
			}
			if t.DueDate != nil {
				tv.DueDate = t.DueDate.String()
			}
			lv.Tasks = append(lv.Tasks, tv)
		}
		v.Lists = append(v.Lists, lv)
	}
	return v
}

// JSON writes v as indented JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

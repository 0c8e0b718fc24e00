package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// dueDateLayout is the textual form of a DueDate.
const dueDateLayout = "2006-01-02"

// DueDate is a calendar day without time of day or zone.
type DueDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// NewDueDate validates the triple and returns a DueDate.
// Returns ErrInvalidDueDate if the triple is not a real calendar day.
func NewDueDate(year, month, day int) (*DueDate, error) {
	if month < 1 || month > 12 || day < 1 {
		return nil, fmt.Errorf("%04d-%02d-%02d: %w", year, month, day, ErrInvalidDueDate)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return nil, fmt.Errorf("%04d-%02d-%02d: %w", year, month, day, ErrInvalidDueDate)
	}
	return &DueDate{Year: year, Month: month, Day: day}, nil
}

// ParseDueDate parses a YYYY-MM-DD string.
func ParseDueDate(s string) (*DueDate, error) {
	t, err := time.Parse(dueDateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s, ErrInvalidDueDate)
	}
	return &DueDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

// String formats the due date as YYYY-MM-DD.
func (d DueDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Task is a single work item. A task is owned by exactly one TaskList at a
// time; moving it between lists transfers the same pointer.
type Task struct {
	ID           string    // UUID v7, generated on creation.
	Title        string    // Text shown on the card.
	CreationDate time.Time // Set once when the task is created.
	UpdateDate   time.Time // Bumped on title change; never before CreationDate.
	DueDate      *DueDate  // Optional; nil when no date is set.
}

// NewTask creates a task with a fresh ID and both timestamps set to now.
func NewTask(title string) *Task {
	now := time.Now()
	return &Task{
		ID:           newTaskID(),
		Title:        title,
		CreationDate: now,
		UpdateDate:   now,
	}
}

// SetTitle changes the title and bumps UpdateDate.
func (t *Task) SetTitle(title string) {
	t.Title = title
	t.touch()
}

// SetDueDate sets the due date after validating the triple.
// The task is unchanged on error.
func (t *Task) SetDueDate(year, month, day int) error {
	d, err := NewDueDate(year, month, day)
	if err != nil {
		return err
	}
	t.DueDate = d
	return nil
}

// ClearDueDate removes the due date. Idempotent.
func (t *Task) ClearDueDate() {
	t.DueDate = nil
}

// String returns the card form used by the text renderer, "#title".
func (t *Task) String() string {
	return "#" + t.Title
}

func (t *Task) touch() {
	now := time.Now()
	if now.Before(t.CreationDate) {
		now = t.CreationDate
	}
	t.UpdateDate = now
}

// newTaskID generates a UUID v7, falling back to v4.
func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// EnsureID assigns an ID to tasks decoded from files that predate IDs.
func (t *Task) EnsureID() {
	if t.ID == "" {
		t.ID = newTaskID()
	}
}

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	task := NewTask("write docs")

	assert.Equal(t, "write docs", task.Title)
	assert.NotEmpty(t, task.ID)
	assert.WithinDuration(t, time.Now(), task.CreationDate, time.Second)
	assert.Equal(t, task.CreationDate, task.UpdateDate)
	assert.Nil(t, task.DueDate)
	assert.Equal(t, "#write docs", task.String())
}

func TestNewTaskIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTask("t").ID
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestTaskSetTitle(t *testing.T) {
	task := NewTask("old")
	task.UpdateDate = task.CreationDate

	task.SetTitle("new")

	assert.Equal(t, "new", task.Title)
	assert.False(t, task.UpdateDate.Before(task.CreationDate), "update date must not precede creation date")
}

func TestTaskSetTitleNeverBeforeCreation(t *testing.T) {
	task := NewTask("future")
	task.CreationDate = time.Now().Add(time.Hour)

	task.SetTitle("still future")

	assert.Equal(t, task.CreationDate, task.UpdateDate)
}

func TestTaskSetDueDate(t *testing.T) {
	tests := []struct {
		name    string
		y, m, d int
		wantErr error
	}{
		{name: "regular day", y: 2026, m: 10, d: 19},
		{name: "leap day", y: 2024, m: 2, d: 29},
		{name: "non-leap feb 29", y: 2025, m: 2, d: 29, wantErr: ErrInvalidDueDate},
		{name: "month zero", y: 2026, m: 0, d: 1, wantErr: ErrInvalidDueDate},
		{name: "month thirteen", y: 2026, m: 13, d: 1, wantErr: ErrInvalidDueDate},
		{name: "day zero", y: 2026, m: 1, d: 0, wantErr: ErrInvalidDueDate},
		{name: "april 31", y: 2026, m: 4, d: 31, wantErr: ErrInvalidDueDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := NewTask("due")
			err := task.SetDueDate(tt.y, tt.m, tt.d)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, task.DueDate, "due date should not change on error")
				return
			}
			require.NoError(t, err)
			require.NotNil(t, task.DueDate)
			assert.Equal(t, DueDate{Year: tt.y, Month: tt.m, Day: tt.d}, *task.DueDate)
		})
	}
}

func TestTaskClearDueDate(t *testing.T) {
	task := NewTask("due")
	require.NoError(t, task.SetDueDate(2026, 1, 2))

	task.ClearDueDate()
	task.ClearDueDate()

	assert.Nil(t, task.DueDate)
}

func TestParseDueDate(t *testing.T) {
	d, err := ParseDueDate("2026-03-07")
	require.NoError(t, err)
	assert.Equal(t, DueDate{Year: 2026, Month: 3, Day: 7}, *d)
	assert.Equal(t, "2026-03-07", d.String())

	_, err = ParseDueDate("07/03/2026")
	assert.ErrorIs(t, err, ErrInvalidDueDate)
}

func TestTaskEnsureID(t *testing.T) {
	task := &Task{Title: "legacy"}
	task.EnsureID()
	assert.NotEmpty(t, task.ID)

	id := task.ID
	task.EnsureID()
	assert.Equal(t, id, task.ID)
}

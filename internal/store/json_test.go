// Unit tests for the board file codec.
package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

func TestTimestampMarshal(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{name: "whole seconds", in: time.Unix(1530000000, 0), want: "1530000000"},
		{name: "fraction", in: time.Unix(1530000000, 500_000_000), want: "1530000000.5"},
		{name: "microseconds", in: time.Unix(1530000000, 123_456_000), want: "1530000000.123456"},
		{name: "sub-microsecond truncated", in: time.Unix(1530000000, 123_456_789), want: "1530000000.123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(timestamp(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{name: "integer", in: `1530000000`, want: time.Unix(1530000000, 0)},
		{name: "float", in: `1530000000.25`, want: time.Unix(1530000000, 250_000_000)},
		{name: "microseconds", in: `1530000000.123456`, want: time.Unix(1530000000, 123_456_000)},
		{name: "rfc3339", in: `"2018-06-26T08:00:00Z"`, want: time.Date(2018, 6, 26, 8, 0, 0, 0, time.UTC)},
		{name: "rfc3339 offset", in: `"2018-06-26T10:00:00+02:00"`, want: time.Date(2018, 6, 26, 8, 0, 0, 0, time.UTC)},
		{name: "bad string", in: `"yesterday"`, wantErr: true},
		{name: "bool", in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts timestamp
			err := json.Unmarshal([]byte(tt.in), &ts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(time.Time(ts)), "got %v want %v", time.Time(ts), tt.want)
		})
	}
}

func TestEncodeDecodeBoard(t *testing.T) {
	b := types.NewStandardBoard("Home")
	doing, _ := b.List(types.ListDoing)
	task := doing.AddNew("cook")
	require.NoError(t, task.SetDueDate(2025, 12, 31))
	b.AddNew("Later")

	data, err := json.Marshal(encodeBoard(b))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Home", raw["title"])
	lists, ok := raw["tasklists"].([]any)
	require.True(t, ok)
	assert.Len(t, lists, 5)

	var rec boardJSON
	require.NoError(t, json.Unmarshal(data, &rec))
	got, err := decodeBoard(rec)
	require.NoError(t, err)

	assert.Equal(t, b.String(), got.String())
	gotDoing, _ := got.List(types.ListDoing)
	require.Equal(t, 1, gotDoing.Len())
	gotTask := gotDoing.Tasks()[0]
	assert.Equal(t, task.ID, gotTask.ID)
	assert.Equal(t, task.DueDate, gotTask.DueDate)
}

func TestEncodeEmptyListsAsArrays(t *testing.T) {
	data, err := json.Marshal(encodeBoard(types.NewStandardBoard("Empty")))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tasks":[]`)
	assert.NotContains(t, string(data), "null")
}

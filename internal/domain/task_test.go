package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskInput_Validate(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		input   TaskInput
	}{
		{
			name:  "valid",
			input: TaskInput{Title: "Write report", Status: StatusPending},
		},
		{
			name:  "empty status is allowed",
			input: TaskInput{Title: "Write report"},
		},
		{
			name:  "priority out of range is not enforced",
			input: TaskInput{Title: "Write report", PriorityScore: 250},
		},
		{
			name:    "empty title",
			input:   TaskInput{Title: ""},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "whitespace title",
			input:   TaskInput{Title: "   "},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "invalid status",
			input:   TaskInput{Title: "Write report", Status: "blocked"},
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTask_Input(t *testing.T) {
	catID := "cat-1"
	deadline := time.Date(2025, 7, 10, 17, 0, 0, 0, time.UTC)
	task := Task{
		ID:            "t-1",
		Title:         "Finish report",
		Description:   "Quarterly numbers",
		CategoryID:    &catID,
		PriorityScore: 80,
		Deadline:      &deadline,
		Status:        StatusInProgress,
	}

	in := task.Input()

	assert.Equal(t, "Finish report", in.Title)
	assert.Equal(t, "Quarterly numbers", in.Description)
	assert.Equal(t, 80, in.PriorityScore)
	assert.Equal(t, StatusInProgress, in.Status)
	require.NotNil(t, in.CategoryID)
	assert.Equal(t, "cat-1", *in.CategoryID)
	require.NotNil(t, in.Deadline)
	assert.True(t, deadline.Equal(*in.Deadline))

	// The input must not alias the task's pointers.
	*in.CategoryID = "cat-2"
	assert.Equal(t, "cat-1", *task.CategoryID)
}

func TestTask_UnmarshalBackendJSON(t *testing.T) {
	data := `{
		"id": "3f0c9a52-8d7e-4c1b-9a57-2d8e1a0b6c11",
		"title": "Finish project report",
		"description": null,
		"category": null,
		"priority_score": 50,
		"deadline": "2025-07-10T17:00:00Z",
		"status": "pending",
		"created_at": "2025-07-01T09:00:00Z",
		"updated_at": "2025-07-01T09:00:00Z"
	}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(data), &task))

	assert.Equal(t, "3f0c9a52-8d7e-4c1b-9a57-2d8e1a0b6c11", task.EntityID())
	assert.Equal(t, "Finish project report", task.Title)
	assert.Empty(t, task.Description)
	assert.False(t, task.HasCategory())
	assert.Equal(t, 50, task.PriorityScore)
	require.NotNil(t, task.Deadline)
	assert.Equal(t, 2025, task.Deadline.Year())
	assert.Equal(t, StatusPending, task.Status)
}

func TestTaskInput_MarshalNullCategory(t *testing.T) {
	in := TaskInput{Title: "x", Status: StatusPending, PriorityScore: 50}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"category":null`)
	assert.Contains(t, string(data), `"deadline":null`)
	assert.NotContains(t, string(data), `"id"`)
}

func TestTaskInput_MarshalOmitsEmptyStatus(t *testing.T) {
	data, err := json.Marshal(TaskInput{Title: "x"})
	require.NoError(t, err)

	assert.NotContains(t, string(data), `"status"`)
}

func TestTaskFilter_Match(t *testing.T) {
	cat := "c1"
	other := "c2"
	tasks := []Task{
		{ID: "1", Status: StatusPending, CategoryID: &cat},
		{ID: "2", Status: StatusDone, CategoryID: &other},
		{ID: "3", Status: StatusPending},
	}

	tests := []struct {
		name   string
		filter TaskFilter
		want   []string
	}{
		{"empty filter", TaskFilter{}, []string{"1", "2", "3"}},
		{"by status", TaskFilter{Status: StatusPending}, []string{"1", "3"}},
		{"by category", TaskFilter{CategoryID: &cat}, []string{"1"}},
		{"by status and category", TaskFilter{Status: StatusDone, CategoryID: &cat}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, task := range tasks {
				if tt.filter.Match(task) {
					got = append(got, task.ID)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

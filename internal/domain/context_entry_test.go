package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortContextEntries_NewestFirst(t *testing.T) {
	entries := []ContextEntry{
		{ID: "1", Timestamp: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{ID: "2", Timestamp: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)},
	}

	SortContextEntries(entries)

	assert.Equal(t, []string{"2", "1"}, contextIDs(entries))
}

func TestSortContextEntries_TiesKeepServerOrder(t *testing.T) {
	same := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	entries := []ContextEntry{
		{ID: "a", Timestamp: same},
		{ID: "old", Timestamp: same.Add(-time.Hour)},
		{ID: "b", Timestamp: same},
		{ID: "new", Timestamp: same.Add(time.Hour)},
		{ID: "c", Timestamp: same},
	}

	SortContextEntries(entries)

	assert.Equal(t, []string{"new", "a", "b", "c", "old"}, contextIDs(entries))
}

func TestContextInput_Validate(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		input   ContextInput
	}{
		{name: "valid", input: ContextInput{Content: "call Bob", SourceType: SourceNote}},
		{name: "empty content", input: ContextInput{Content: " ", SourceType: SourceNote}, wantErr: ErrEmptyContent},
		{name: "unknown source", input: ContextInput{Content: "x", SourceType: "sms"}, wantErr: ErrInvalidSourceType},
		{name: "missing source", input: ContextInput{Content: "x"}, wantErr: ErrInvalidSourceType},
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

func TestParseSourceType(t *testing.T) {
	st, err := ParseSourceType(" WhatsApp ")
	require.NoError(t, err)
	assert.Equal(t, SourceWhatsApp, st)

	_, err = ParseSourceType("telegram")
	assert.ErrorIs(t, err, ErrInvalidSourceType)
}

func TestParseTimestamp(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)

	tests := []struct {
		want    time.Time
		input   string
		wantErr bool
	}{
		{input: "2024-01-02T10:00:00Z", want: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)},
		{input: "2024-01-02T10:00", want: time.Date(2024, 1, 2, 10, 0, 0, 0, loc)},
		{input: "2024-01-02T10:00:30", want: time.Date(2024, 1, 2, 10, 0, 30, 0, loc)},
		{input: "2024-01-02 10:00", want: time.Date(2024, 1, 2, 10, 0, 0, 0, loc)},
		{input: "2024-01-02", want: time.Date(2024, 1, 2, 0, 0, 0, 0, loc)},
		{input: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input, loc)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimestamp)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func contextIDs(entries []ContextEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

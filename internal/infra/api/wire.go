package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/runoshun/taskdeck/internal/domain"
)

// wire is a response shape that converts into a domain entity.
type wire[T any] interface {
	toDomain() T
}

// wireID accepts both numeric primary keys and string IDs.
type wireID string

func (id *wireID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s", data)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("invalid id %s", data)
	}
	*id = wireID(n.String())
	return nil
}

// ref converts a nullable reference.
func (id *wireID) ref() *string {
	if id == nil || *id == "" {
		return nil
	}
	s := string(*id)
	return &s
}

// wireTime accepts RFC3339 and the zone-less forms a backend without time
// zone support emits ("2024-01-01T10:00:00", "2024-01-01T10:00").
// Zone-less values are read as local time.
type wireTime struct {
	t time.Time
}

func (w *wireTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		w.t = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid time %s", data)
	}
	if s == "" {
		w.t = time.Time{}
		return nil
	}
	t, err := domain.ParseTimestamp(s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", s, err)
	}
	w.t = t
	return nil
}

// ptr converts a nullable time.
func (w *wireTime) ptr() *time.Time {
	if w == nil || w.t.IsZero() {
		return nil
	}
	t := w.t
	return &t
}

// The outer fields shadow the embedded ones during decoding.

type wireTask struct {
	Category  *wireID   `json:"category"`
	Deadline  *wireTime `json:"deadline"`
	ID        wireID    `json:"id"`
	CreatedAt wireTime  `json:"created_at"`
	UpdatedAt wireTime  `json:"updated_at"`
	domain.Task
}

func (w wireTask) toDomain() domain.Task {
	t := w.Task
	t.ID = string(w.ID)
	t.CategoryID = w.Category.ref()
	t.Deadline = w.Deadline.ptr()
	t.CreatedAt = w.CreatedAt.t
	t.UpdatedAt = w.UpdatedAt.t
	return t
}

type wireCategory struct {
	ID wireID `json:"id"`
	domain.Category
}

func (w wireCategory) toDomain() domain.Category {
	c := w.Category
	c.ID = string(w.ID)
	return c
}

type wireContextEntry struct {
	ID        wireID   `json:"id"`
	Timestamp wireTime `json:"timestamp"`
	domain.ContextEntry
}

func (w wireContextEntry) toDomain() domain.ContextEntry {
	e := w.ContextEntry
	e.ID = string(w.ID)
	e.Timestamp = w.Timestamp.t
	return e
}

type wireSuggestion struct {
	DeadlineRecommendation *wireTime `json:"deadline_recommendation"`
	domain.Suggestion
}

func (w wireSuggestion) toDomain() domain.Suggestion {
	s := w.Suggestion
	s.DeadlineRecommendation = w.DeadlineRecommendation.ptr()
	return s
}

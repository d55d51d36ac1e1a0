package domain

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// SourceType identifies where a context entry came from.
type SourceType string

const (
	SourceWhatsApp SourceType = "whatsapp"
	SourceEmail    SourceType = "email"
	SourceNote     SourceType = "note"
)

// AllSourceTypes returns all valid source types.
func AllSourceTypes() []SourceType {
	return []SourceType{SourceWhatsApp, SourceEmail, SourceNote}
}

// IsValid returns true if the source type is one of the known values.
func (s SourceType) IsValid() bool {
	switch s {
	case SourceWhatsApp, SourceEmail, SourceNote:
		return true
	}
	return false
}

// ParseSourceType converts user input to a SourceType.
func ParseSourceType(s string) (SourceType, error) {
	st := SourceType(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", ErrInvalidSourceType
	}
	return st, nil
}

// ContextEntry is a piece of daily context (a message, an email, a note)
// that the assistant can use when suggesting task details.
// Fields are ordered to minimize memory padding.
type ContextEntry struct {
	Timestamp         time.Time       `json:"timestamp" yaml:"timestamp"`
	ProcessedInsights json.RawMessage `json:"processed_insights,omitempty" yaml:"-"`
	ID                string          `json:"id" yaml:"id"`
	Content           string          `json:"content" yaml:"content"`
	SourceType        SourceType      `json:"source_type" yaml:"source_type"`
}

// EntityID returns the server-assigned ID.
func (e ContextEntry) EntityID() string {
	return e.ID
}

// ContextInput is the body sent to create a context entry.
type ContextInput struct {
	Timestamp  time.Time  `json:"timestamp"`
	Content    string     `json:"content"`
	SourceType SourceType `json:"source_type"`
}

// Validate checks the input before it is sent to the backend.
func (in ContextInput) Validate() error {
	if strings.TrimSpace(in.Content) == "" {
		return ErrEmptyContent
	}
	if !in.SourceType.IsValid() {
		return ErrInvalidSourceType
	}
	return nil
}

// CompareContextEntries orders entries newest first.
// Entries with equal timestamps compare equal so a stable sort keeps server order.
func CompareContextEntries(a, b ContextEntry) int {
	return b.Timestamp.Compare(a.Timestamp)
}

// SortContextEntries sorts entries newest first, keeping server order for ties.
func SortContextEntries(entries []ContextEntry) {
	slices.SortStableFunc(entries, CompareContextEntries)
}

// timestampLayouts are the accepted input forms, most precise first.
// The minute-precision form is what datetime-local form fields produce.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses a user-supplied timestamp.
// Forms without a zone are interpreted in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}

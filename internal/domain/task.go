// Package domain contains core business entities and interfaces.
package domain

import (
	"strings"
	"time"
)

// DefaultPriorityScore is the priority assigned to new tasks when none is given.
const DefaultPriorityScore = 50

// Task represents a work item stored on the backend.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt     time.Time  `json:"created_at,omitzero" yaml:"created_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at,omitzero" yaml:"updated_at,omitempty"`
	CategoryID    *string    `json:"category" yaml:"category"`                               // Category reference (nil = uncategorized)
	Deadline      *time.Time `json:"deadline" yaml:"deadline,omitempty"`                     // Deadline (optional)
	ID            string     `json:"id" yaml:"id"`                                           // Server-assigned ID
	Title         string     `json:"title" yaml:"title"`                                     // Title (required)
	Description   string     `json:"description" yaml:"description,omitempty"`               // Description (optional)
	CategoryName  string     `json:"category_name,omitempty" yaml:"category_name,omitempty"` // Read-only name provided by some backends
	Status        Status     `json:"status" yaml:"status"`                                   // Current status
	PriorityScore int        `json:"priority_score" yaml:"priority_score"`                   // Intended range 0-100, not enforced
}

// EntityID returns the server-assigned ID.
func (t Task) EntityID() string {
	return t.ID
}

// HasCategory returns true if the task references a category.
func (t Task) HasCategory() bool {
	return t.CategoryID != nil && *t.CategoryID != ""
}

// Input returns the writable fields of the task as a TaskInput.
// It is the starting point for building a full PUT body from a partial edit.
func (t Task) Input() TaskInput {
	in := TaskInput{
		Title:         t.Title,
		Description:   t.Description,
		PriorityScore: t.PriorityScore,
		Status:        t.Status,
	}
	if t.CategoryID != nil {
		id := *t.CategoryID
		in.CategoryID = &id
	}
	if t.Deadline != nil {
		d := *t.Deadline
		in.Deadline = &d
	}
	return in
}

// TaskInput is the body sent to create or update a task.
// It never carries an ID: the server assigns one on create and the URL
// identifies the target on update.
type TaskInput struct {
	CategoryID    *string    `json:"category"`
	Deadline      *time.Time `json:"deadline"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        Status     `json:"status,omitempty"` // Empty = backend default (pending)
	PriorityScore int        `json:"priority_score"`
}

// Validate checks the input before it is sent to the backend.
func (in TaskInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrEmptyTitle
	}
	if in.Status != "" && !in.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// TaskFilter specifies criteria for listing tasks.
type TaskFilter struct {
	Status     Status  // Empty = all statuses
	CategoryID *string // nil = all categories
}

// Match returns true if the task satisfies the filter.
func (f TaskFilter) Match(t Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.CategoryID != nil {
		if t.CategoryID == nil || *t.CategoryID != *f.CategoryID {
			return false
		}
	}
	return true
}

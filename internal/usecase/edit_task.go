package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
)

// EditTaskInput contains the parameters for editing a task.
// All fields except ID are optional. Only non-nil fields will be updated.
// Fields are ordered to minimize memory padding.
type EditTaskInput struct {
	Title         *string        // New title (nil = no change)
	Description   *string        // New description (nil = no change)
	Category      *string        // Category ID or name (nil = no change, "" = remove)
	Priority      *int           // New priority score (nil = no change)
	Deadline      *time.Time     // New deadline (nil = no change)
	Status        *domain.Status // New status (nil = no change)
	ID            string         // Task ID to edit (required)
	ClearDeadline bool           // Remove the deadline
}

// EditTaskOutput contains the result of editing a task.
type EditTaskOutput struct {
	Task domain.Task // The task as stored by the backend
}

// EditTask is the use case for editing an existing task.
// The backend replaces all writable fields, so the patch is applied onto
// the confirmed record and the full body is sent.
type EditTask struct {
	ws     *collection.Workspace
	logger domain.Logger
}

// NewEditTask creates a new EditTask use case.
func NewEditTask(ws *collection.Workspace, logger domain.Logger) *EditTask {
	return &EditTask{
		ws:     ws,
		logger: logger,
	}
}

// Execute edits a task with the given input.
func (uc *EditTask) Execute(ctx context.Context, in EditTaskInput) (*EditTaskOutput, error) {
	if in.Title == nil && in.Description == nil && in.Category == nil && in.Priority == nil &&
		in.Deadline == nil && in.Status == nil && !in.ClearDeadline {
		return nil, domain.ErrNoFieldsToUpdate
	}

	task, err := findTask(ctx, uc.ws.Tasks, in.ID)
	if err != nil {
		return nil, err
	}

	body := task.Input()
	if in.Title != nil {
		body.Title = *in.Title
	}
	if in.Description != nil {
		body.Description = *in.Description
	}
	if in.Priority != nil {
		body.PriorityScore = *in.Priority
	}
	if in.Status != nil {
		body.Status = *in.Status
	}
	if in.ClearDeadline {
		body.Deadline = nil
	} else if in.Deadline != nil {
		d := *in.Deadline
		body.Deadline = &d
	}
	if err := body.Validate(); err != nil {
		return nil, err
	}
	if in.Category != nil {
		if *in.Category == "" {
			body.CategoryID = nil
		} else {
			c, err := resolveCategory(ctx, uc.ws.Categories, *in.Category)
			if err != nil {
				return nil, err
			}
			body.CategoryID = &c.ID
		}
	}

	updated, err := uc.ws.Tasks.Update(ctx, in.ID, body)
	if err != nil {
		return nil, err
	}

	uc.logger.Info(domain.KindTask, "usecase", fmt.Sprintf("edited %s", in.ID))
	return &EditTaskOutput{Task: updated}, nil
}

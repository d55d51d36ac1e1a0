package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
)

// CreateTaskInput contains the parameters for creating a new task.
// Fields are ordered to minimize memory padding.
type CreateTaskInput struct {
	Deadline    *time.Time    // Deadline (nil = now, unless NoDeadline)
	Priority    *int          // Priority score (nil = configured default)
	Title       string        // Task title (required)
	Description string        // Task description (optional)
	Category    string        // Category ID or name (optional)
	Status      domain.Status // Initial status (empty = pending)
	NoDeadline  bool          // Create the task without a deadline
}

// CreateTaskOutput contains the result of creating a new task.
type CreateTaskOutput struct {
	Task domain.Task // The task as stored by the backend
}

// CreateTask is the use case for creating a new task.
type CreateTask struct {
	ws              *collection.Workspace
	clock           domain.Clock
	logger          domain.Logger
	defaultPriority int
}

// NewCreateTask creates a new CreateTask use case.
func NewCreateTask(ws *collection.Workspace, clock domain.Clock, logger domain.Logger, defaultPriority int) *CreateTask {
	return &CreateTask{
		ws:              ws,
		clock:           clock,
		logger:          logger,
		defaultPriority: defaultPriority,
	}
}

// Execute creates a new task with the given input.
func (uc *CreateTask) Execute(ctx context.Context, in CreateTaskInput) (*CreateTaskOutput, error) {
	draft := domain.TaskInput{
		Title:         in.Title,
		Description:   in.Description,
		Status:        in.Status,
		PriorityScore: uc.defaultPriority,
	}
	if draft.Status == "" {
		draft.Status = domain.StatusPending
	}
	if in.Priority != nil {
		draft.PriorityScore = *in.Priority
	}
	switch {
	case in.NoDeadline:
	case in.Deadline != nil:
		d := *in.Deadline
		draft.Deadline = &d
	default:
		now := uc.clock.Now()
		draft.Deadline = &now
	}

	// Check the draft before resolving the category to avoid a useless fetch.
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	if in.Category != "" {
		c, err := resolveCategory(ctx, uc.ws.Categories, in.Category)
		if err != nil {
			return nil, err
		}
		draft.CategoryID = &c.ID
	}

	task, err := uc.ws.Tasks.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	uc.logger.Info(domain.KindTask, "usecase", fmt.Sprintf("created %s: %q", task.ID, task.Title))
	return &CreateTaskOutput{Task: task}, nil
}

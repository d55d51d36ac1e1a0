package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
)

// SetTaskStatusInput contains the parameters for changing a task's status.
// Fields are ordered to minimize memory padding.
type SetTaskStatusInput struct {
	ID     string        // Task ID
	Status domain.Status // Target status (ignored when Cycle is set)
	Cycle  bool          // Advance to the next status instead
}

// SetTaskStatusOutput contains the result of changing a task's status.
type SetTaskStatusOutput struct {
	Task     domain.Task   // The task as stored by the backend
	Previous domain.Status // Status before the change
}

// SetTaskStatus is the use case for moving a task through its lifecycle.
type SetTaskStatus struct {
	ws     *collection.Workspace
	logger domain.Logger
}

// NewSetTaskStatus creates a new SetTaskStatus use case.
func NewSetTaskStatus(ws *collection.Workspace, logger domain.Logger) *SetTaskStatus {
	return &SetTaskStatus{
		ws:     ws,
		logger: logger,
	}
}

// Execute sends the task with its new status to the backend.
func (uc *SetTaskStatus) Execute(ctx context.Context, in SetTaskStatusInput) (*SetTaskStatusOutput, error) {
	if !in.Cycle && !in.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	task, err := findTask(ctx, uc.ws.Tasks, in.ID)
	if err != nil {
		return nil, err
	}

	next := in.Status
	if in.Cycle {
		next = task.Status.Next()
	}

	body := task.Input()
	body.Status = next
	updated, err := uc.ws.Tasks.Update(ctx, in.ID, body)
	if err != nil {
		return nil, err
	}

	uc.logger.Info(domain.KindTask, "usecase", fmt.Sprintf("%s: %s -> %s", in.ID, task.Status, updated.Status))
	return &SetTaskStatusOutput{Task: updated, Previous: task.Status}, nil
}

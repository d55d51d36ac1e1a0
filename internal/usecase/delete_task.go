package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	ID string // Task ID to delete
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	Task domain.Task // The task that was deleted
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	ws     *collection.Workspace
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(ws *collection.Workspace, logger domain.Logger) *DeleteTask {
	return &DeleteTask{
		ws:     ws,
		logger: logger,
	}
}

// Execute deletes the task once the backend confirms.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	task, err := findTask(ctx, uc.ws.Tasks, in.ID)
	if err != nil {
		return nil, err
	}

	if err := uc.ws.Tasks.Delete(ctx, in.ID); err != nil {
		return nil, err
	}

	uc.logger.Info(domain.KindTask, "usecase", fmt.Sprintf("deleted %s: %q", task.ID, task.Title))
	return &DeleteTaskOutput{Task: task}, nil
}

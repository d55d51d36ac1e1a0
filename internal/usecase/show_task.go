package usecase

import (
	"context"

	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
)

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	ID string // Task ID
}

// ShowTaskOutput contains the task and its resolved category name.
type ShowTaskOutput struct {
	CategoryName string      // "" when uncategorized or the category is gone
	Task         domain.Task // The task
}

// ShowTask is the use case for showing one task.
type ShowTask struct {
	ws *collection.Workspace
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(ws *collection.Workspace) *ShowTask {
	return &ShowTask{ws: ws}
}

// Execute returns the task with id.
func (uc *ShowTask) Execute(ctx context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	task, err := findTask(ctx, uc.ws.Tasks, in.ID)
	if err != nil {
		return nil, err
	}

	out := &ShowTaskOutput{Task: task}
	if task.HasCategory() {
		// Names are best effort.
		if err := ensureLoaded(ctx, uc.ws.Categories); err == nil {
			out.CategoryName = uc.ws.CategoryName(task)
		}
	}
	return out, nil
}

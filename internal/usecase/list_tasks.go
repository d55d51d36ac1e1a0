package usecase

import (
	"context"

	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
// Fields are ordered to minimize memory padding.
type ListTasksInput struct {
	Status   domain.Status // Filter by status (empty = all)
	Category string        // Filter by category ID or name (empty = all)
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Categories domain.CategoryLookup // Categories for display names
	Tasks      []domain.Task         // Tasks in display order
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	ws     *collection.Workspace
	logger domain.Logger
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(ws *collection.Workspace, logger domain.Logger) *ListTasks {
	return &ListTasks{
		ws:     ws,
		logger: logger,
	}
}

// Execute loads the tasks and returns those matching the filter.
// Categories are loaded for display; a failed category load only loses names.
func (uc *ListTasks) Execute(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	if in.Status != "" && !in.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	filter := domain.TaskFilter{Status: in.Status}
	if in.Category != "" {
		c, err := resolveCategory(ctx, uc.ws.Categories, in.Category)
		if err != nil {
			return nil, err
		}
		filter.CategoryID = &c.ID
	}

	tasks, err := uc.ws.Tasks.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := ensureLoaded(ctx, uc.ws.Categories); err != nil {
		uc.logger.Warn(domain.KindCategory, "usecase", "category names unavailable: "+err.Error())
	}

	matched := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Match(t) {
			matched = append(matched, t)
		}
	}

	return &ListTasksOutput{
		Tasks:      matched,
		Categories: uc.ws.CategoryLookup(),
	}, nil
}

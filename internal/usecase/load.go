// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
)

// ensureLoaded loads c unless a previous load already succeeded.
func ensureLoaded[T domain.Entity, I any](ctx context.Context, c *collection.Collection[T, I]) error {
	if c.Loaded() {
		return nil
	}
	_, err := c.Load(ctx)
	return err
}

// resolveCategory finds a category by ID or name, loading categories if needed.
func resolveCategory(ctx context.Context, categories *collection.Categories, idOrName string) (domain.Category, error) {
	if err := ensureLoaded(ctx, categories); err != nil {
		return domain.Category{}, err
	}
	c, ok := domain.FindCategory(categories.Snapshot(), idOrName)
	if !ok {
		return domain.Category{}, fmt.Errorf("%q: %w", idOrName, domain.ErrCategoryNotFound)
	}
	return c, nil
}

// findTask returns the confirmed task with id, loading tasks if needed.
func findTask(ctx context.Context, tasks *collection.Tasks, id string) (domain.Task, error) {
	if err := ensureLoaded(ctx, tasks); err != nil {
		return domain.Task{}, err
	}
	t, ok := tasks.Get(id)
	if !ok {
		return domain.Task{}, fmt.Errorf("task %q: %w", id, domain.ErrEntityNotFound)
	}
	return t, nil
}

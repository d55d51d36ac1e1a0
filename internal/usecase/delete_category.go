package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
)

// DeleteCategoryInput contains the parameters for deleting a category.
type DeleteCategoryInput struct {
	Category string // Category ID or name
}

// DeleteCategoryOutput contains the result of deleting a category.
type DeleteCategoryOutput struct {
	Category domain.Category // The category that was deleted
}

// DeleteCategory is the use case for deleting a category.
// The backend keeps the category's tasks and clears their reference.
type DeleteCategory struct {
	ws     *collection.Workspace
	logger domain.Logger
}

// NewDeleteCategory creates a new DeleteCategory use case.
func NewDeleteCategory(ws *collection.Workspace, logger domain.Logger) *DeleteCategory {
	return &DeleteCategory{
		ws:     ws,
		logger: logger,
	}
}

// Execute deletes the category once the backend confirms.
func (uc *DeleteCategory) Execute(ctx context.Context, in DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	c, err := resolveCategory(ctx, uc.ws.Categories, in.Category)
	if err != nil {
		return nil, err
	}

	if err := uc.ws.Categories.Delete(ctx, c.ID); err != nil {
		return nil, err
	}

	uc.logger.Info(domain.KindCategory, "usecase", fmt.Sprintf("deleted %s: %q", c.ID, c.Name))
	return &DeleteCategoryOutput{Category: c}, nil
}

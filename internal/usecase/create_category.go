package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
)

// CreateCategoryInput contains the parameters for creating a category.
type CreateCategoryInput struct {
	Name string // Category name (required, unique on the backend)
}

// CreateCategoryOutput contains the result of creating a category.
type CreateCategoryOutput struct {
	Category domain.Category // The category as stored by the backend
}

// CreateCategory is the use case for creating a category.
type CreateCategory struct {
	ws     *collection.Workspace
	logger domain.Logger
}

// NewCreateCategory creates a new CreateCategory use case.
func NewCreateCategory(ws *collection.Workspace, logger domain.Logger) *CreateCategory {
	return &CreateCategory{
		ws:     ws,
		logger: logger,
	}
}

// Execute creates the category. Name uniqueness is left to the backend.
func (uc *CreateCategory) Execute(ctx context.Context, in CreateCategoryInput) (*CreateCategoryOutput, error) {
	c, err := uc.ws.Categories.Create(ctx, domain.CategoryInput{Name: strings.TrimSpace(in.Name)})
	if err != nil {
		return nil, err
	}
	uc.logger.Info(domain.KindCategory, "usecase", fmt.Sprintf("created %s: %q", c.ID, c.Name))
	return &CreateCategoryOutput{Category: c}, nil
}

package usecase

import (
	"context"

	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
)

// ListCategoriesInput contains the parameters for listing categories.
type ListCategoriesInput struct{}

// ListCategoriesOutput contains the result of listing categories.
type ListCategoriesOutput struct {
	Categories []domain.Category // Categories in server order
}

// ListCategories is the use case for listing categories.
type ListCategories struct {
	ws *collection.Workspace
}

// NewListCategories creates a new ListCategories use case.
func NewListCategories(ws *collection.Workspace) *ListCategories {
	return &ListCategories{ws: ws}
}

// Execute loads the categories.
func (uc *ListCategories) Execute(ctx context.Context, _ ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories, err := uc.ws.Categories.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &ListCategoriesOutput{Categories: categories}, nil
}

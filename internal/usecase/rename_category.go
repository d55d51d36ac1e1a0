package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
)

// RenameCategoryInput contains the parameters for renaming a category.
type RenameCategoryInput struct {
	Category string // Category ID or current name
	Name     string // New name
}

// RenameCategoryOutput contains the result of renaming a category.
type RenameCategoryOutput struct {
	Category domain.Category // The category as stored by the backend
	OldName  string          // Name before the rename
}

// RenameCategory is the use case for renaming a category.
type RenameCategory struct {
	ws     *collection.Workspace
	logger domain.Logger
}

// NewRenameCategory creates a new RenameCategory use case.
func NewRenameCategory(ws *collection.Workspace, logger domain.Logger) *RenameCategory {
	return &RenameCategory{
		ws:     ws,
		logger: logger,
	}
}

// Execute renames the category.
func (uc *RenameCategory) Execute(ctx context.Context, in RenameCategoryInput) (*RenameCategoryOutput, error) {
	body := domain.CategoryInput{Name: strings.TrimSpace(in.Name)}
	if err := body.Validate(); err != nil {
		return nil, err
	}

	current, err := resolveCategory(ctx, uc.ws.Categories, in.Category)
	if err != nil {
		return nil, err
	}

	updated, err := uc.ws.Categories.Update(ctx, current.ID, body)
	if err != nil {
		return nil, err
	}

	uc.logger.Info(domain.KindCategory, "usecase", fmt.Sprintf("renamed %s: %q -> %q", current.ID, current.Name, updated.Name))
	return &RenameCategoryOutput{Category: updated, OldName: current.Name}, nil
}

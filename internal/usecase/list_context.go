package usecase

import (
	"context"

	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
)

// ListContextInput contains the parameters for listing context entries.
// Fields are ordered to minimize memory padding.
type ListContextInput struct {
	Source domain.SourceType // Filter by source (empty = all)
	Limit  int               // Maximum number of entries (0 = all)
}

// ListContextOutput contains the result of listing context entries.
type ListContextOutput struct {
	Entries []domain.ContextEntry // Entries, newest first
}

// ListContext is the use case for listing context entries.
type ListContext struct {
	ws *collection.Workspace
}

// NewListContext creates a new ListContext use case.
func NewListContext(ws *collection.Workspace) *ListContext {
	return &ListContext{ws: ws}
}

// Execute loads the context entries.
func (uc *ListContext) Execute(ctx context.Context, in ListContextInput) (*ListContextOutput, error) {
	if in.Source != "" && !in.Source.IsValid() {
		return nil, domain.ErrInvalidSourceType
	}

	entries, err := uc.ws.Context.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ContextEntry, 0, len(entries))
	for _, e := range entries {
		if in.Source != "" && e.SourceType != in.Source {
			continue
		}
		out = append(out, e)
		if in.Limit > 0 && len(out) == in.Limit {
			break
		}
	}
	return &ListContextOutput{Entries: out}, nil
}

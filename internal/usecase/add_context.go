package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/taskdeck/internal/collection"
	"github.com/runoshun/taskdeck/internal/domain"
)

// AddContextInput contains the parameters for adding a context entry.
// Fields are ordered to minimize memory padding.
type AddContextInput struct {
	Timestamp *time.Time        // When it happened (nil = now)
	Content   string            // Entry text (required)
	Source    domain.SourceType // whatsapp, email or note (required)
}

// AddContextOutput contains the result of adding a context entry.
type AddContextOutput struct {
	Entry domain.ContextEntry // The entry as stored by the backend
}

// AddContext is the use case for recording a context entry.
type AddContext struct {
	ws     *collection.Workspace
	clock  domain.Clock
	logger domain.Logger
}

// NewAddContext creates a new AddContext use case.
func NewAddContext(ws *collection.Workspace, clock domain.Clock, logger domain.Logger) *AddContext {
	return &AddContext{
		ws:     ws,
		clock:  clock,
		logger: logger,
	}
}

// Execute sends the entry to the backend.
func (uc *AddContext) Execute(ctx context.Context, in AddContextInput) (*AddContextOutput, error) {
	draft := domain.ContextInput{
		Content:    in.Content,
		SourceType: in.Source,
	}
	if in.Timestamp != nil {
		draft.Timestamp = *in.Timestamp
	} else {
		draft.Timestamp = uc.clock.Now()
	}

	entry, err := uc.ws.Context.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	uc.logger.Info(domain.KindContext, "usecase", fmt.Sprintf("added %s (%s)", entry.ID, entry.SourceType))
	return &AddContextOutput{Entry: entry}, nil
}

package api

import (
	"context"
	"net/http"

	"github.com/runoshun/taskdeck/internal/domain"
)

// Ensure resource implements domain.Remote for every collection.
var (
	_ domain.TaskRemote     = (*resource[domain.Task, domain.TaskInput, wireTask])(nil)
	_ domain.CategoryRemote = (*resource[domain.Category, domain.CategoryInput, wireCategory])(nil)
	_ domain.ContextRemote  = (*resource[domain.ContextEntry, domain.ContextInput, wireContextEntry])(nil)
)

// resource is one REST collection. W is the wire shape T is decoded through.
type resource[T domain.Entity, I any, W wire[T]] struct {
	client *Client
	kind   domain.EntityKind
}

// List implements domain.Remote.
func (r *resource[T, I, W]) List(ctx context.Context) ([]T, error) {
	var ws []W
	if err := r.client.do(ctx, http.MethodGet, collectionPath(r.kind), nil, &ws); err != nil {
		return nil, err
	}
	items := make([]T, 0, len(ws))
	for _, w := range ws {
		items = append(items, w.toDomain())
	}
	return items, nil
}

// Create implements domain.Remote.
func (r *resource[T, I, W]) Create(ctx context.Context, in I) (T, error) {
	var w W
	if err := r.client.do(ctx, http.MethodPost, collectionPath(r.kind), in, &w); err != nil {
		var zero T
		return zero, err
	}
	return w.toDomain(), nil
}

// Update implements domain.Remote.
func (r *resource[T, I, W]) Update(ctx context.Context, id string, in I) (T, error) {
	var w W
	if err := r.client.do(ctx, http.MethodPut, itemPath(r.kind, id), in, &w); err != nil {
		var zero T
		return zero, err
	}
	return w.toDomain(), nil
}

// Delete implements domain.Remote.
func (r *resource[T, I, W]) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, http.MethodDelete, itemPath(r.kind, id), nil, nil)
}

package collection

import (
	"context"
	"errors"

	"github.com/runoshun/taskdeck/internal/domain"
)

// Tasks is the task collection.
type Tasks = Collection[domain.Task, domain.TaskInput]

// Categories is the category collection.
type Categories = Collection[domain.Category, domain.CategoryInput]

// ContextEntries is the context entry collection.
type ContextEntries = Collection[domain.ContextEntry, domain.ContextInput]

// NewTasks creates the task collection. New tasks are shown first.
func NewTasks(remote domain.TaskRemote, logger domain.Logger) *Tasks {
	return New(domain.KindTask, remote, Options[domain.Task, domain.TaskInput]{
		Logger:    logger,
		Validate:  domain.TaskInput.Validate,
		Placement: PlaceFirst,
	})
}

// NewCategories creates the category collection. New categories are appended.
func NewCategories(remote domain.CategoryRemote, logger domain.Logger) *Categories {
	return New(domain.KindCategory, remote, Options[domain.Category, domain.CategoryInput]{
		Logger:    logger,
		Validate:  domain.CategoryInput.Validate,
		Placement: PlaceLast,
	})
}

// NewContextEntries creates the context entry collection.
// Entries are sorted newest first on load and new entries are shown first.
func NewContextEntries(remote domain.ContextRemote, logger domain.Logger) *ContextEntries {
	return New(domain.KindContext, remote, Options[domain.ContextEntry, domain.ContextInput]{
		Logger:    logger,
		Order:     domain.CompareContextEntries,
		Validate:  domain.ContextInput.Validate,
		Placement: PlaceFirst,
	})
}

// Workspace holds the collections of one session.
type Workspace struct {
	Tasks      *Tasks
	Categories *Categories
	Context    *ContextEntries
}

// NewWorkspace creates a Workspace over the given remotes.
func NewWorkspace(tasks domain.TaskRemote, categories domain.CategoryRemote, entries domain.ContextRemote, logger domain.Logger) *Workspace {
	return &Workspace{
		Tasks:      NewTasks(tasks, logger),
		Categories: NewCategories(categories, logger),
		Context:    NewContextEntries(entries, logger),
	}
}

// LoadAll loads every collection. A failed load leaves that collection
// unchanged and does not stop the others; all failures are joined.
func (w *Workspace) LoadAll(ctx context.Context) error {
	var errs []error
	if _, err := w.Tasks.Load(ctx); err != nil {
		errs = append(errs, err)
	}
	if _, err := w.Categories.Load(ctx); err != nil {
		errs = append(errs, err)
	}
	if _, err := w.Context.Load(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// CategoryLookup returns a lookup over the current categories.
func (w *Workspace) CategoryLookup() domain.CategoryLookup {
	return domain.NewCategoryLookup(w.Categories.Snapshot())
}

// CategoryName returns the display name of the task's category,
// or "" when it has none or the reference is dangling.
func (w *Workspace) CategoryName(t domain.Task) string {
	return w.CategoryLookup().NameOf(t)
}

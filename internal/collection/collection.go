// Package collection keeps ordered in-memory mirrors of the backend's
// collections and applies remote mutations to them once they are confirmed.
//
// A Collection never shows an unconfirmed change: creates are inserted when
// the backend returns the stored entity, updates replace the record when the
// backend returns the new version, and deletes remove the record when the
// backend confirms. On any failure the local state is left as it was and an
// *domain.OpError is returned.
package collection

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/runoshun/taskdeck/internal/domain"
)

// Placement decides where a newly created entity is inserted.
type Placement int

const (
	PlaceLast  Placement = iota // Append after existing entities
	PlaceFirst                  // Insert before existing entities
)

// errMissingID is reported when the backend confirms a create without an ID.
var errMissingID = errors.New("backend returned an entity without id")

// Options configures a Collection.
// Fields are ordered to minimize memory padding.
type Options[T domain.Entity, I any] struct {
	Logger    domain.Logger    // Operation log (nil = discard)
	Order     func(a, b T) int // Stable re-sort applied on Load (nil = server order)
	Validate  func(I) error    // Input check before create/update (nil = none)
	Placement Placement        // Where creates are inserted
}

// Collection is the owned in-memory mirror of one backend collection.
// It is safe for concurrent use; remote calls run without holding the lock.
// Concurrent updates of the same ID are not serialized: the response that
// resolves last wins.
// Fields are ordered to minimize memory padding.
type Collection[T domain.Entity, I any] struct {
	remote    domain.Remote[T, I]
	logger    domain.Logger
	order     func(a, b T) int
	validate  func(I) error
	subs      map[int]func([]T)
	kind      domain.EntityKind
	items     []T
	mu        sync.RWMutex
	nextSub   int
	placement Placement
	loaded    bool
}

// New creates an empty Collection for kind backed by remote.
func New[T domain.Entity, I any](kind domain.EntityKind, remote domain.Remote[T, I], opts Options[T, I]) *Collection[T, I] {
	logger := opts.Logger
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Collection[T, I]{
		remote:    remote,
		logger:    logger,
		order:     opts.Order,
		validate:  opts.Validate,
		subs:      make(map[int]func([]T)),
		kind:      kind,
		placement: opts.Placement,
	}
}

// Kind returns the entity kind held by the collection.
func (c *Collection[T, I]) Kind() domain.EntityKind {
	return c.kind
}

// Load fetches the full remote collection and replaces the local one.
// On failure the local collection is left unchanged.
func (c *Collection[T, I]) Load(ctx context.Context) ([]T, error) {
	items, err := c.remote.List(ctx)
	if err != nil {
		return nil, c.fail(domain.OpFetch, "", err)
	}

	items, dropped := dedupe(items)
	if dropped > 0 {
		c.logger.Warn(c.kind, "sync", fmt.Sprintf("dropped %d duplicate %s from list response", dropped, c.kind.Plural()))
	}
	if c.order != nil {
		slices.SortStableFunc(items, c.order)
	}

	snap := c.commit(func([]T) []T { return items }, true)
	c.logger.Debug(c.kind, "sync", fmt.Sprintf("loaded %d %s", len(snap), c.kind.Plural()))
	return snap, nil
}

// Create sends draft to the backend and inserts the stored entity.
// Validation errors are returned as-is without calling the backend.
func (c *Collection[T, I]) Create(ctx context.Context, draft I) (T, error) {
	var zero T
	if err := c.check(draft); err != nil {
		return zero, err
	}

	created, err := c.remote.Create(ctx, draft)
	if err != nil {
		return zero, c.fail(domain.OpCreate, "", err)
	}
	id := created.EntityID()
	if id == "" {
		return zero, c.fail(domain.OpCreate, "", errMissingID)
	}

	c.commit(func(items []T) []T {
		// A create confirmed after a reload may already be present.
		if i := indexOf(items, id); i >= 0 {
			items[i] = created
			return items
		}
		if c.placement == PlaceFirst {
			return slices.Insert(items, 0, created)
		}
		return append(items, created)
	}, false)
	c.logger.Info(c.kind, "sync", fmt.Sprintf("created %s %s", c.kind, id))
	return created, nil
}

// Update sends in for the entity with id and replaces the local record with
// the backend's answer, keeping its position.
// id must identify an entity in the collection; otherwise ErrEntityNotFound
// is returned without calling the backend.
func (c *Collection[T, I]) Update(ctx context.Context, id string, in I) (T, error) {
	var zero T
	if !c.Has(id) {
		return zero, c.missing(id)
	}
	if err := c.check(in); err != nil {
		return zero, err
	}

	updated, err := c.remote.Update(ctx, id, in)
	if err != nil {
		return zero, c.fail(domain.OpUpdate, id, err)
	}

	c.commit(func(items []T) []T {
		// The record may have been deleted while the request was in flight.
		if i := indexOf(items, id); i >= 0 {
			items[i] = updated
		}
		return items
	}, false)
	c.logger.Info(c.kind, "sync", fmt.Sprintf("updated %s %s", c.kind, id))
	return updated, nil
}

// Delete removes the entity with id once the backend confirms the deletion.
// id must identify an entity in the collection; otherwise ErrEntityNotFound
// is returned without calling the backend.
func (c *Collection[T, I]) Delete(ctx context.Context, id string) error {
	if !c.Has(id) {
		return c.missing(id)
	}

	if err := c.remote.Delete(ctx, id); err != nil {
		return c.fail(domain.OpDelete, id, err)
	}

	c.commit(func(items []T) []T {
		if i := indexOf(items, id); i >= 0 {
			return slices.Delete(items, i, i+1)
		}
		return items
	}, false)
	c.logger.Info(c.kind, "sync", fmt.Sprintf("deleted %s %s", c.kind, id))
	return nil
}

// Snapshot returns a copy of the current ordered collection.
func (c *Collection[T, I]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Get returns the entity with id.
func (c *Collection[T, I]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := indexOf(c.items, id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Has returns true if an entity with id is in the collection.
func (c *Collection[T, I]) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// Len returns the number of entities in the collection.
func (c *Collection[T, I]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Loaded returns true once a Load has succeeded.
func (c *Collection[T, I]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Subscribe registers fn to receive a snapshot after every change.
// fn is called synchronously from the goroutine that made the change and
// must not block. The returned function cancels the subscription.
func (c *Collection[T, I]) Subscribe(fn func([]T)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// commit applies fn to the items under the lock and notifies subscribers
// with the resulting snapshot.
func (c *Collection[T, I]) commit(fn func([]T) []T, load bool) []T {
	c.mu.Lock()
	c.items = fn(c.items)
	if load {
		c.loaded = true
	}
	snap := slices.Clone(c.items)
	subs := make([]func([]T), 0, len(c.subs))
	for _, id := range sortedKeys(c.subs) {
		subs = append(subs, c.subs[id])
	}
	c.mu.Unlock()

	for _, sub := range subs {
		sub(slices.Clone(snap))
	}
	return snap
}

func (c *Collection[T, I]) check(in I) error {
	if c.validate == nil {
		return nil
	}
	return c.validate(in)
}

func (c *Collection[T, I]) fail(op domain.Op, id string, err error) error {
	opErr := domain.NewOpError(op, c.kind, id, err)
	c.logger.Error(c.kind, "sync", opErr.Error())
	return opErr
}

func (c *Collection[T, I]) missing(id string) error {
	return fmt.Errorf("%s %q: %w", c.kind, id, domain.ErrEntityNotFound)
}

func indexOf[T domain.Entity](items []T, id string) int {
	return slices.IndexFunc(items, func(item T) bool {
		return item.EntityID() == id
	})
}

// dedupe returns items without repeated IDs, keeping the first occurrence,
// and the number of dropped entries. The input is never modified.
func dedupe[T domain.Entity](items []T) ([]T, int) {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		id := item.EntityID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, item)
	}
	return out, len(items) - len(out)
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

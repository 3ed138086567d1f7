package repo

import (
	"context"
)

// Record is satisfied by pointers to entities that carry an integer id.
type Record[T any] interface {
	*T
	GetID() int
	SetID(id int)
}

// Patch applies an explicit update struct to an entity.
type Patch[T any] interface {
	Apply(item *T)
}

// Collection is typed CRUD over one named list. Every read decodes a fresh copy
// and every write replaces the whole list; it is not safe for concurrent writers.
type Collection[T any, P Record[T]] struct {
	store *Store
	name  string
}

func NewCollection[T any, P Record[T]](s *Store, name string) *Collection[T, P] {
	return &Collection[T, P]{store: s, name: name}
}

func (c *Collection[T, P]) Name() string { return c.name }

func (c *Collection[T, P]) All(ctx context.Context) ([]T, error) {
	return ReadList[T](ctx, c.store, c.name)
}

func (c *Collection[T, P]) ByID(ctx context.Context, id int) (T, bool, error) {
	var zero T
	items, err := c.All(ctx)
	if err != nil {
		return zero, false, err
	}
	for i := range items {
		if P(&items[i]).GetID() == id {
			return items[i], true, nil
		}
	}
	return zero, false, nil
}

// Create stores item under max(existing ids, 0) + 1, ignoring any id it carries.
func (c *Collection[T, P]) Create(ctx context.Context, item T) (T, error) {
	items, err := c.All(ctx)
	if err != nil {
		return item, err
	}

	P(&item).SetID(MaxID[T, P](items) + 1)
	items = append(items, item)
	if err := WriteList(ctx, c.store, c.name, items); err != nil {
		return item, err
	}
	return item, nil
}

// Update returns false, and writes nothing, when no record has id.
func (c *Collection[T, P]) Update(ctx context.Context, id int, patch Patch[T]) (T, bool, error) {
	var zero T
	items, err := c.All(ctx)
	if err != nil {
		return zero, false, err
	}

	idx := -1
	for i := range items {
		if P(&items[i]).GetID() == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return zero, false, nil
	}

	patch.Apply(&items[idx])
	P(&items[idx]).SetID(id)
	if err := WriteList(ctx, c.store, c.name, items); err != nil {
		return zero, false, err
	}
	return items[idx], true, nil
}

// Remove always writes the filtered list and reports true, so removing an
// unknown id succeeds.
func (c *Collection[T, P]) Remove(ctx context.Context, id int) (bool, error) {
	items, err := c.All(ctx)
	if err != nil {
		return false, err
	}

	kept := items[:0]
	for i := range items {
		if P(&items[i]).GetID() != id {
			kept = append(kept, items[i])
		}
	}
	if err := WriteList(ctx, c.store, c.name, kept); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Collection[T, P]) Replace(ctx context.Context, items []T) error {
	return WriteList(ctx, c.store, c.name, items)
}

func MaxID[T any, P Record[T]](items []T) int {
	m := 0
	for i := range items {
		if id := P(&items[i]).GetID(); id > m {
			m = id
		}
	}
	return m
}

// LastID is the id of the final record, or 0 for an empty list.
func LastID[T any, P Record[T]](items []T) int {
	if len(items) == 0 {
		return 0
	}
	return P(&items[len(items)-1]).GetID()
}

// Package entitystore implements the write-through list store shared by
// customers, products and invoices: an in-memory normalized list, CRUD
// operations that mirror every mutation to the persistence layer, and a
// selection pointer driving the create/edit form modes.
package entitystore

import (
	"context"
	"errors"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	// ErrNotFound signals an update against an id that is not in the list.
	ErrNotFound = errors.New("not_found")
	// ErrMissingID signals an update without an id.
	ErrMissingID = errors.New("missing_id")
)

// IDGenerator mints entity ids. Implementations must produce non-empty,
// collision-free ids for the lifetime of one store.
type IDGenerator interface {
	NewID() string
}

// SnowflakeIDs generates ids from a snowflake node, which keeps them
// time-ordered like the timestamp ids the storage format originally used
// while staying unique under rapid successive inserts.
type SnowflakeIDs struct {
	Node *snowflake.Node
}

func (g SnowflakeIDs) NewID() string { return g.Node.Generate().String() }

// Persistence is the adapter the store writes through to. It is satisfied
// by *blobstore.Collection[T].
type Persistence[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, items []T) error
}

// Config wires a Store to its persistence, id generator and id accessors.
type Config[T any] struct {
	Persistence Persistence[T]
	GenID       IDGenerator
	IDOf        func(T) string
	WithID      func(T, string) T
}

// Store holds one entity type's list and selection pointer. All operations
// are serialized by the store mutex, so each mutation plus its write-through
// is atomic with respect to concurrent requests.
type Store[T any] struct {
	mu        sync.Mutex
	items     []T
	selection Selection[T]
	cfg       Config[T]
}

// New constructs an empty store; call LoadAll to hydrate it.
func New[T any](cfg Config[T]) *Store[T] {
	return &Store[T]{cfg: cfg}
}

// LoadAll replaces the in-memory list with the persisted one.
func (s *Store[T]) LoadAll(ctx context.Context) error {
	items, err := s.cfg.Persistence.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// List returns a copy of the current list in insertion order.
func (s *Store[T]) List() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the entity with the given id.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if s.cfg.IDOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Add assigns a fresh id, appends the entity and writes through. The stored
// entity is returned so callers can adopt it inline (the invoice form's
// nested add-new flow relies on this).
func (s *Store[T]) Add(ctx context.Context, entity T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity = s.cfg.WithID(entity, s.cfg.GenID.NewID())
	next := append(append([]T{}, s.items...), entity)
	if err := s.cfg.Persistence.Save(ctx, next); err != nil {
		var zero T
		return zero, err
	}
	s.items = next
	return entity, nil
}

// Update replaces the element carrying the entity's id in place, preserving
// list order. An absent id leaves the list untouched and reports
// ErrNotFound.
func (s *Store[T]) Update(ctx context.Context, entity T) (T, error) {
	id := s.cfg.IDOf(entity)
	var zero T
	if id == "" {
		return zero, ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i, item := range s.items {
		if s.cfg.IDOf(item) == id {
			index = i
			break
		}
	}
	if index < 0 {
		return zero, ErrNotFound
	}

	next := append([]T{}, s.items...)
	next[index] = entity
	if err := s.cfg.Persistence.Save(ctx, next); err != nil {
		return zero, err
	}
	s.items = next
	return entity, nil
}

// Remove deletes the element with the given id and writes through. A stale
// id is a silent no-op.
func (s *Store[T]) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]T, 0, len(s.items))
	removed := false
	for _, item := range s.items {
		if !removed && s.cfg.IDOf(item) == id {
			removed = true
			continue
		}
		next = append(next, item)
	}
	if !removed {
		return nil
	}
	if err := s.cfg.Persistence.Save(ctx, next); err != nil {
		return err
	}
	s.items = next
	return nil
}

// Select points the selection at an entity, switching the form to edit mode.
// The pointer is in-memory only and never persisted.
func (s *Store[T]) Select(entity T) {
	s.mu.Lock()
	s.selection = Selection[T]{mode: Editing, entity: entity}
	s.mu.Unlock()
}

// ClearSelection returns the selection to create mode.
func (s *Store[T]) ClearSelection() {
	s.mu.Lock()
	s.selection = Selection[T]{}
	s.mu.Unlock()
}

// Selection returns the current selection pointer.
func (s *Store[T]) Selection() Selection[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

package entitystore

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
)

type entity struct {
	ID   string
	Name string
}

type memoryPersistence struct {
	saved   []entity
	loadErr error
	saveErr error
}

func (m *memoryPersistence) Load(ctx context.Context) ([]entity, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]entity, len(m.saved))
	copy(out, m.saved)
	return out, nil
}

func (m *memoryPersistence) Save(ctx context.Context, items []entity) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = make([]entity, len(items))
	copy(m.saved, items)
	return nil
}

func setupStore(t *testing.T, persistence *memoryPersistence) *Store[entity] {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new snowflake node: %v", err)
	}
	return New(Config[entity]{
		Persistence: persistence,
		GenID:       SnowflakeIDs{Node: node},
		IDOf:        func(e entity) string { return e.ID },
		WithID:      func(e entity, id string) entity { e.ID = id; return e },
	})
}

func TestAddAssignsUniqueIDsAndWritesThrough(t *testing.T) {
	persistence := &memoryPersistence{}
	store := setupStore(t, persistence)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		stored, err := store.Add(ctx, entity{Name: "Customer"})
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if stored.ID == "" {
			t.Fatalf("expected a generated id")
		}
		if seen[stored.ID] {
			t.Fatalf("duplicate id %q", stored.ID)
		}
		seen[stored.ID] = true
	}

	if len(persistence.saved) != 10 {
		t.Fatalf("expected 10 persisted entities, got %d", len(persistence.saved))
	}
	if len(store.List()) != 10 {
		t.Fatalf("expected 10 in-memory entities, got %d", len(store.List()))
	}
}

func TestLoadAllReplacesList(t *testing.T) {
	persistence := &memoryPersistence{saved: []entity{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}}
	store := setupStore(t, persistence)

	if err := store.LoadAll(context.Background()); err != nil {
		t.Fatalf("load all: %v", err)
	}
	items := store.List()
	if len(items) != 2 || items[0].ID != "1" || items[1].ID != "2" {
		t.Fatalf("unexpected list after hydrate: %+v", items)
	}
}

func TestUpdateReplacesInPlace(t *testing.T) {
	persistence := &memoryPersistence{saved: []entity{
		{ID: "1", Name: "a"},
		{ID: "2", Name: "b"},
		{ID: "3", Name: "c"},
	}}
	store := setupStore(t, persistence)
	ctx := context.Background()
	if err := store.LoadAll(ctx); err != nil {
		t.Fatalf("load all: %v", err)
	}

	if _, err := store.Update(ctx, entity{ID: "2", Name: "beta"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	items := store.List()
	if items[0].Name != "a" || items[1].Name != "beta" || items[2].Name != "c" {
		t.Fatalf("expected only element 2 replaced, got %+v", items)
	}
	if persistence.saved[1].Name != "beta" {
		t.Fatalf("expected write-through, persisted %+v", persistence.saved)
	}
}

func TestUpdateAbsentIDLeavesListUnchanged(t *testing.T) {
	persistence := &memoryPersistence{saved: []entity{{ID: "1", Name: "a"}}}
	store := setupStore(t, persistence)
	ctx := context.Background()
	if err := store.LoadAll(ctx); err != nil {
		t.Fatalf("load all: %v", err)
	}

	_, err := store.Update(ctx, entity{ID: "999", Name: "ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	items := store.List()
	if len(items) != 1 || items[0].Name != "a" {
		t.Fatalf("list changed on stale update: %+v", items)
	}
}

func TestUpdateWithoutID(t *testing.T) {
	store := setupStore(t, &memoryPersistence{})
	_, err := store.Update(context.Background(), entity{Name: "no id"})
	if !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
}

func TestRemoveDeletesExactlyTheMatch(t *testing.T) {
	persistence := &memoryPersistence{saved: []entity{
		{ID: "1", Name: "a"},
		{ID: "2", Name: "b"},
		{ID: "3", Name: "c"},
	}}
	store := setupStore(t, persistence)
	ctx := context.Background()
	if err := store.LoadAll(ctx); err != nil {
		t.Fatalf("load all: %v", err)
	}

	if err := store.Remove(ctx, "2"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	items := store.List()
	if len(items) != 2 || items[0].ID != "1" || items[1].ID != "3" {
		t.Fatalf("unexpected list after remove: %+v", items)
	}
}

func TestRemoveStaleIDIsNoOp(t *testing.T) {
	persistence := &memoryPersistence{saved: []entity{{ID: "1", Name: "a"}}}
	store := setupStore(t, persistence)
	ctx := context.Background()
	if err := store.LoadAll(ctx); err != nil {
		t.Fatalf("load all: %v", err)
	}

	if err := store.Remove(ctx, "404"); err != nil {
		t.Fatalf("remove stale id should be silent: %v", err)
	}
	if len(store.List()) != 1 {
		t.Fatalf("list changed on stale remove")
	}
}

func TestSaveFailureLeavesMemoryUntouched(t *testing.T) {
	persistence := &memoryPersistence{saved: []entity{{ID: "1", Name: "a"}}}
	store := setupStore(t, persistence)
	ctx := context.Background()
	if err := store.LoadAll(ctx); err != nil {
		t.Fatalf("load all: %v", err)
	}

	persistence.saveErr = errors.New("disk full")
	if _, err := store.Add(ctx, entity{Name: "b"}); err == nil {
		t.Fatalf("expected save failure to propagate")
	}
	if len(store.List()) != 1 {
		t.Fatalf("in-memory list diverged from persisted blob")
	}
}

func TestSelectionModes(t *testing.T) {
	store := setupStore(t, &memoryPersistence{})

	if store.Selection().Mode() != Creating {
		t.Fatalf("fresh store should be in create mode")
	}

	store.Select(entity{ID: "1", Name: "a"})
	sel := store.Selection()
	if sel.Mode() != Editing {
		t.Fatalf("expected edit mode after select")
	}
	picked, ok := sel.Entity()
	if !ok || picked.ID != "1" {
		t.Fatalf("expected selected entity, got %+v ok=%v", picked, ok)
	}

	store.ClearSelection()
	if store.Selection().Mode() != Creating {
		t.Fatalf("expected create mode after clear")
	}
	if _, ok := store.Selection().Entity(); ok {
		t.Fatalf("create mode must not expose an entity")
	}
}

package blobstore

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func setupBlobTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(
		`CREATE TABLE IF NOT EXISTS blobs (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	).Error; err != nil {
		t.Fatalf("create blobs: %v", err)
	}
	return db
}

func TestLoadMissingKeyReturnsEmpty(t *testing.T) {
	db := setupBlobTestDB(t)
	coll := NewCollection[record](db, zap.NewNop(), "customers")

	items, err := coll.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list, got %d items", len(items))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := setupBlobTestDB(t)
	coll := NewCollection[record](db, zap.NewNop(), "customers")
	ctx := context.Background()

	want := []record{
		{ID: "1", Name: "Customer 1"},
		{ID: "2", Name: "Customer 2"},
		{ID: "3", Name: "Customer 3"},
	}
	if err := coll.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := coll.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item %d mismatch: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestSaveReplacesWholeBlob(t *testing.T) {
	db := setupBlobTestDB(t)
	coll := NewCollection[record](db, zap.NewNop(), "products")
	ctx := context.Background()

	if err := coll.Save(ctx, []record{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := coll.Save(ctx, []record{{ID: "3", Name: "c"}}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := coll.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("expected only the replacement item, got %+v", got)
	}
}

func TestSaveNilPersistsEmptyArray(t *testing.T) {
	db := setupBlobTestDB(t)
	coll := NewCollection[record](db, zap.NewNop(), "invoices")
	ctx := context.Background()

	if err := coll.Save(ctx, nil); err != nil {
		t.Fatalf("save nil: %v", err)
	}

	var raw string
	if err := db.Table("blobs").Select("value").Where("key = ?", "invoices").Scan(&raw).Error; err != nil {
		t.Fatalf("read raw blob: %v", err)
	}
	if raw != "[]" {
		t.Fatalf("expected empty JSON array, got %q", raw)
	}
}

func TestLoadMalformedBlobFailsClosed(t *testing.T) {
	db := setupBlobTestDB(t)
	core, logs := observer.New(zapcore.WarnLevel)
	coll := NewCollection[record](db, zap.New(core), "customers")
	ctx := context.Background()

	if err := db.Exec(
		`INSERT INTO blobs (key, value) VALUES ('customers', '{not json')`,
	).Error; err != nil {
		t.Fatalf("insert garbage: %v", err)
	}

	items, err := coll.Load(ctx)
	if err != nil {
		t.Fatalf("load should not fail on garbage: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list, got %d items", len(items))
	}
	if logs.Len() != 1 {
		t.Fatalf("expected 1 warn entry, got %d", logs.Len())
	}
}

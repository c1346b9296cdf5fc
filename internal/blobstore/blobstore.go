// Package blobstore persists one JSON-encoded list per storage key in the
// blobs table. Each entity type owns a single key and every save fully
// replaces the stored value, so the persisted blob always mirrors the
// in-memory list.
package blobstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Blob is one storage key with its JSON payload.
type Blob struct {
	Key       string         `gorm:"primaryKey;column:key"`
	Value     datatypes.JSON `gorm:"column:value;not null"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Blob) TableName() string { return "blobs" }

// Collection reads and writes the list stored under a single key.
type Collection[T any] struct {
	db  *gorm.DB
	log *zap.Logger
	key string
}

// NewCollection binds a typed collection to its storage key.
func NewCollection[T any](db *gorm.DB, log *zap.Logger, key string) *Collection[T] {
	return &Collection[T]{
		db:  db,
		log: log.Named("blobstore").With(zap.String("key", key)),
		key: key,
	}
}

// Key returns the storage key the collection is bound to.
func (c *Collection[T]) Key() string { return c.key }

// Load returns the stored list. A missing key yields an empty list, and so
// does a malformed payload: stored garbage degrades to an empty working set
// rather than failing the caller.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	var blob Blob
	err := c.db.WithContext(ctx).First(&blob, "key = ?", c.key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}

	if len(blob.Value) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(blob.Value, &items); err != nil {
		c.log.Warn("malformed blob, treating as empty", zap.Error(err))
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save replaces the stored blob with the given list. A nil list persists as
// an empty JSON array.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	blob := Blob{
		Key:       c.key,
		Value:     datatypes.JSON(payload),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.Assignments(map[string]any{
				"value":      string(payload),
				"updated_at": now,
			}),
		}).
		Create(&blob).Error
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/namaaror/invoice-manage/internal/customer/domain"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCustomerService(t *testing.T) (customerdomain.Service, *gorm.DB) {
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
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new snowflake node: %v", err)
	}
	svc := NewService(ServiceParam{DB: db, Log: zap.NewNop(), GenID: node})
	if err := svc.LoadAll(context.Background()); err != nil {
		t.Fatalf("load all: %v", err)
	}
	return svc, db
}

func persistedBlob(t *testing.T, db *gorm.DB, key string) string {
	t.Helper()
	var raw string
	if err := db.Table("blobs").Select("value").Where("key = ?", key).Scan(&raw).Error; err != nil {
		t.Fatalf("read blob %s: %v", key, err)
	}
	return raw
}

func TestCreateEditDeleteCustomer(t *testing.T) {
	svc, db := setupCustomerService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, customerdomain.CreateRequest{
		Name:  "John Doe",
		Email: "john@example.com",
		Phone: "1234567890",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected a generated id")
	}

	list, err := svc.List(ctx, customerdomain.ListRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Customers) != 1 || list.Customers[0].Name != "John Doe" {
		t.Fatalf("unexpected list after create: %+v", list.Customers)
	}

	updated, err := svc.Update(ctx, customerdomain.UpdateRequest{
		ID:    created.ID,
		Name:  "Johnny Doe",
		Email: created.Email,
		Phone: created.Phone,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("update must preserve the id: %q vs %q", updated.ID, created.ID)
	}
	if updated.Email != "john@example.com" || updated.Phone != "1234567890" {
		t.Fatalf("other fields changed: %+v", updated)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil || got.Name != "Johnny Doe" {
		t.Fatalf("expected updated name, got %+v err=%v", got, err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, err = svc.List(ctx, customerdomain.ListRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Customers) != 0 {
		t.Fatalf("expected empty list after delete")
	}
	if raw := persistedBlob(t, db, customerdomain.StorageKey); raw != "[]" {
		t.Fatalf("expected persisted blob [] after delete, got %q", raw)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := setupCustomerService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  customerdomain.CreateRequest
		want error
	}{
		{"empty name", customerdomain.CreateRequest{Email: "a@b.c", Phone: "1234567"}, customerdomain.ErrInvalidName},
		{"bad email", customerdomain.CreateRequest{Name: "x", Email: "nope", Phone: "1234567"}, customerdomain.ErrInvalidEmail},
		{"bad phone", customerdomain.CreateRequest{Name: "x", Email: "a@b.c", Phone: "12ab"}, customerdomain.ErrInvalidPhone},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, tc.req); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	list, _ := svc.List(ctx, customerdomain.ListRequest{})
	if len(list.Customers) != 0 {
		t.Fatalf("rejected submissions must not mutate the list")
	}
}

func TestUpdateStaleIDReportsNotFound(t *testing.T) {
	svc, _ := setupCustomerService(t)

	_, err := svc.Update(context.Background(), customerdomain.UpdateRequest{
		ID:    "12345",
		Name:  "Ghost",
		Email: "ghost@example.com",
		Phone: "1234567890",
	})
	if !errors.Is(err, customerdomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListFiltersByName(t *testing.T) {
	svc, _ := setupCustomerService(t)
	ctx := context.Background()

	for _, name := range []string{"Customer 1", "Customer 2"} {
		if _, err := svc.Create(ctx, customerdomain.CreateRequest{
			Name:  name,
			Email: "c@example.com",
			Phone: "1234567890",
		}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	list, err := svc.List(ctx, customerdomain.ListRequest{Query: "Customer 1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Customers) != 1 || list.Customers[0].Name != "Customer 1" {
		t.Fatalf("expected exactly Customer 1, got %+v", list.Customers)
	}

	list, err = svc.List(ctx, customerdomain.ListRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Customers) != 2 {
		t.Fatalf("clearing the query should restore both customers")
	}
}

func TestSelectionDrivesEditMode(t *testing.T) {
	svc, _ := setupCustomerService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, customerdomain.CreateRequest{
		Name:  "Jane",
		Email: "jane@example.com",
		Phone: "1234567890",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	svc.Select(created.ID)
	selected, ok := svc.Selection().Entity()
	if !ok || selected.ID != created.ID {
		t.Fatalf("expected selection to point at the customer")
	}

	// A stale id falls back to create mode instead of dangling.
	svc.Select("999")
	if _, ok := svc.Selection().Entity(); ok {
		t.Fatalf("stale select must clear the selection")
	}
}

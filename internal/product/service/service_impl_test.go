package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	productdomain "github.com/namaaror/invoice-manage/internal/product/domain"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProductService(t *testing.T) productdomain.Service {
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
	return svc
}

func TestProductCRUD(t *testing.T) {
	svc := setupProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, productdomain.CreateRequest{Name: "Widget", Rate: 9.5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected a generated id")
	}

	updated, err := svc.Update(ctx, productdomain.UpdateRequest{ID: created.ID, Name: "Widget XL", Rate: 12})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Widget XL" || updated.Rate != 12 {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, productdomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestProductValidation(t *testing.T) {
	svc := setupProductService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, productdomain.CreateRequest{Name: "  ", Rate: 1}); !errors.Is(err, productdomain.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if _, err := svc.Create(ctx, productdomain.CreateRequest{Name: "x", Rate: -1}); !errors.Is(err, productdomain.ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
}

func TestGetByNameIsCaseInsensitive(t *testing.T) {
	svc := setupProductService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, productdomain.CreateRequest{Name: "Gadget", Rate: 3}); err != nil {
		t.Fatalf("create: %v", err)
	}

	product, err := svc.GetByName(ctx, "gadget")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if product.Rate != 3 {
		t.Fatalf("unexpected product: %+v", product)
	}

	if _, err := svc.GetByName(ctx, "no such product"); !errors.Is(err, productdomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListPaginatesSevenProducts(t *testing.T) {
	svc := setupProductService(t)
	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		if _, err := svc.Create(ctx, productdomain.CreateRequest{Name: fmt.Sprintf("Product %d", i), Rate: float64(i)}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	page1, err := svc.List(ctx, productdomain.ListRequest{Page: 1})
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(page1.Products) != 5 || page1.HasPrev || !page1.HasNext {
		t.Fatalf("unexpected page 1: %+v", page1)
	}

	page2, err := svc.List(ctx, productdomain.ListRequest{Page: 2})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(page2.Products) != 2 || !page2.HasPrev || page2.HasNext {
		t.Fatalf("unexpected page 2: %+v", page2)
	}
}

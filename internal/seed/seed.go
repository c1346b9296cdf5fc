package seed

import (
	"context"
	"errors"

	customerdomain "github.com/namaaror/invoice-manage/internal/customer/domain"
	invoicedomain "github.com/namaaror/invoice-manage/internal/invoice/domain"
	productdomain "github.com/namaaror/invoice-manage/internal/product/domain"
	"gorm.io/gorm"
)

// storageKeys are the blob keys the application owns.
var storageKeys = []string{
	customerdomain.StorageKey,
	productdomain.StorageKey,
	invoicedomain.StorageKey,
}

// EnsureStorageKeys initializes each entity's blob to an empty JSON array on
// first boot so every later read sees a well-formed list.
func EnsureStorageKeys(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, key := range storageKeys {
			var count int64
			if err := tx.Table("blobs").Where("key = ?", key).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := tx.Exec(`INSERT INTO blobs (key, value) VALUES (?, '[]')`, key).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// EnsureSampleData populates an empty database with a small demo data set.
// Existing data is never touched.
func EnsureSampleData(ctx context.Context, customerSvc customerdomain.Service, productSvc productdomain.Service, invoiceSvc invoicedomain.Service) error {
	if len(customerSvc.All(ctx)) > 0 || len(productSvc.All(ctx)) > 0 {
		return nil
	}

	customers := []customerdomain.CreateRequest{
		{Name: "Acme Corp", Email: "billing@acme.example", Phone: "5550100200"},
		{Name: "Globex", Email: "accounts@globex.example", Phone: "5550100300"},
	}
	for _, req := range customers {
		if _, err := customerSvc.Create(ctx, req); err != nil {
			return err
		}
	}

	products := []productdomain.CreateRequest{
		{Name: "Consulting hour", Rate: 120},
		{Name: "Support plan", Rate: 49.99},
	}
	for _, req := range products {
		if _, err := productSvc.Create(ctx, req); err != nil {
			return err
		}
	}

	_, err := invoiceSvc.Create(ctx, invoicedomain.CreateRequest{
		Customer: "Acme Corp",
		Status:   invoicedomain.StatusPending,
		Items: []invoicedomain.ItemInput{
			{Product: "Consulting hour", Description: "Onboarding workshop", Quantity: 4},
			{Product: "Support plan", Description: "Monthly support", Quantity: 1},
		},
	})
	return err
}

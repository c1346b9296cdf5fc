package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/namaaror/invoice-manage/internal/entitystore"
	"github.com/namaaror/invoice-manage/internal/listview"
)

// StorageKey is the blob key product records persist under.
const StorageKey = "products"

// Product is one product record. The unit price field is canonically named
// rate; invoice items copy it at selection time.
type Product struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

// SearchFields lists the text fields the list view's search matches on.
func (p Product) SearchFields() []string {
	return []string{p.Name}
}

type CreateRequest struct {
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

type UpdateRequest struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

type ListRequest struct {
	Query string `form:"q"`
	Page  int    `form:"page"`
}

type ListResponse struct {
	Products   []Product `json:"products"`
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	Total      int       `json:"total"`
	HasPrev    bool      `json:"has_prev"`
	HasNext    bool      `json:"has_next"`
}

// Service is the product entity store.
type Service interface {
	LoadAll(ctx context.Context) error
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	All(ctx context.Context) []Product
	GetByID(ctx context.Context, id string) (Product, error)
	GetByName(ctx context.Context, name string) (Product, error)
	Create(ctx context.Context, req CreateRequest) (Product, error)
	Update(ctx context.Context, req UpdateRequest) (Product, error)
	Delete(ctx context.Context, id string) error
	Select(id string)
	ClearSelection()
	Selection() entitystore.Selection[Product]
}

var (
	ErrInvalidID   = errors.New("invalid_id")
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidRate = errors.New("invalid_rate")
	ErrNotFound    = errors.New("product_not_found")
)

// Validate applies the form's rules: non-empty name, non-negative rate.
func Validate(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if p.Rate < 0 {
		return ErrInvalidRate
	}
	return nil
}

// PageOf derives the filtered, paginated view over a product list.
func PageOf(products []Product, req ListRequest) listview.Page[Product] {
	return listview.Build(products, listview.Query{Search: req.Query, Page: req.Page}, Product.SearchFields)
}

package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/namaaror/invoice-manage/internal/entitystore"
	"github.com/namaaror/invoice-manage/internal/listview"
)

// StorageKey is the blob key invoice records persist under.
const StorageKey = "invoices"

// DateLayout is the yyyy-mm-dd format invoice dates are stored in.
const DateLayout = "2006-01-02"

// Status is the invoice delivery status.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusDelivered  Status = "delivered"
	StatusFailed     Status = "failed"
)

// Statuses lists every valid status, in display order.
func Statuses() []Status {
	return []Status{StatusPending, StatusProcessing, StatusDelivered, StatusFailed}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusDelivered, StatusFailed:
		return true
	}
	return false
}

// InvoiceItem is one line of an invoice. Product is the denormalized product
// name and Rate the unit price copied from the product at selection time.
// Amount is derived: quantity times rate, recomputed on every mutation.
type InvoiceItem struct {
	Product     string  `json:"product"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// Invoice references its customer by name, not id; deleting the customer
// leaves the invoice untouched.
type Invoice struct {
	ID          string        `json:"id"`
	Customer    string        `json:"customer"`
	Items       []InvoiceItem `json:"items"`
	TotalAmount float64       `json:"totalAmount"`
	Date        string        `json:"date"`
	Status      Status        `json:"status"`
}

// SearchFields lists the text fields the list view's search matches on.
func (inv Invoice) SearchFields() []string {
	return []string{inv.Customer, string(inv.Status), inv.Date}
}

// ItemInput is one item as submitted by a form or API client. A nil Rate
// asks the service to source the rate from the named product.
type ItemInput struct {
	Product     string   `json:"product"`
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	Rate        *float64 `json:"rate"`
}

type CreateRequest struct {
	Customer string      `json:"customer"`
	Items    []ItemInput `json:"items"`
	Date     string      `json:"date"`
	Status   Status      `json:"status"`
}

type UpdateRequest struct {
	ID       string      `json:"id"`
	Customer string      `json:"customer"`
	Items    []ItemInput `json:"items"`
	Date     string      `json:"date"`
	Status   Status      `json:"status"`
}

type UpdateStatusRequest struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
}

type ListRequest struct {
	Query string `form:"q"`
	Page  int    `form:"page"`
}

type ListResponse struct {
	Invoices   []Invoice `json:"invoices"`
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	Total      int       `json:"total"`
	HasPrev    bool      `json:"has_prev"`
	HasNext    bool      `json:"has_next"`
}

// Service is the invoice entity store plus the derived-total composition
// rules.
type Service interface {
	LoadAll(ctx context.Context) error
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	All(ctx context.Context) []Invoice
	GetByID(ctx context.Context, id string) (Invoice, error)
	Create(ctx context.Context, req CreateRequest) (Invoice, error)
	Update(ctx context.Context, req UpdateRequest) (Invoice, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (Invoice, error)
	Delete(ctx context.Context, id string) error
	Select(id string)
	ClearSelection()
	Selection() entitystore.Selection[Invoice]
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidCustomer = errors.New("invalid_customer")
	ErrNoItems         = errors.New("no_items")
	ErrInvalidProduct  = errors.New("invalid_product")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrUnknownProduct  = errors.New("unknown_product")
	ErrInvalidDate     = errors.New("invalid_date")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrNotFound        = errors.New("invoice_not_found")
)

// NormalizeItems recomputes every item's amount as quantity times rate and
// returns the items with the invoice total. This runs after every item
// mutation so the stored amounts are always consistent with the inputs.
func NormalizeItems(items []InvoiceItem) ([]InvoiceItem, float64) {
	out := make([]InvoiceItem, len(items))
	total := 0.0
	for i, item := range items {
		item.Amount = item.Quantity * item.Rate
		out[i] = item
		total += item.Amount
	}
	return out, total
}

// ValidateDate checks the yyyy-mm-dd shape.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// Validate applies the form's submission rules.
func Validate(inv Invoice) error {
	if strings.TrimSpace(inv.Customer) == "" {
		return ErrInvalidCustomer
	}
	if len(inv.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range inv.Items {
		if strings.TrimSpace(item.Product) == "" {
			return ErrInvalidProduct
		}
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	if err := ValidateDate(inv.Date); err != nil {
		return err
	}
	if !inv.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// PageOf derives the filtered, paginated view over an invoice list.
func PageOf(invoices []Invoice, req ListRequest) listview.Page[Invoice] {
	return listview.Build(invoices, listview.Query{Search: req.Query, Page: req.Page}, Invoice.SearchFields)
}
